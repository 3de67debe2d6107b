package models

import (
	"strings"
	"time"

	"github.com/branch-locator/internal/normalizer"
)

// HolidaySchedule lịch nghỉ hiện tại của một chi nhánh
type HolidaySchedule struct {
	IsEnabled bool   `json:"is_enabled" bson:"is_enabled"` // Đang bật lịch nghỉ
	StartTime string `json:"start_time" bson:"start_time"` // ISO datetime bắt đầu nghỉ
	EndTime   string `json:"end_time" bson:"end_time"`     // ISO datetime mở lại
	Reason    string `json:"reason,omitempty" bson:"reason,omitempty"`
}

// HolidayRecord một lần nghỉ trong lịch sử
type HolidayRecord struct {
	StartTime  string    `json:"start_time" bson:"start_time"`
	EndTime    string    `json:"end_time" bson:"end_time"`
	Reason     string    `json:"reason,omitempty" bson:"reason,omitempty"`
	RecordedAt time.Time `json:"recorded_at" bson:"recorded_at"`
}

// Branch một chi nhánh / kho giao hàng
type Branch struct {
	ID              string          `json:"id" bson:"_id"`
	Name            string          `json:"name" bson:"name"`
	Manager         string          `json:"manager" bson:"manager"`
	Address         string          `json:"address" bson:"address"`
	PhoneNumber     string          `json:"phone_number" bson:"phone_number"`
	SearchStr       string          `json:"search_str" bson:"search_str"` // name+address+phone đã chuẩn hóa
	HolidaySchedule HolidaySchedule `json:"holiday_schedule" bson:"holiday_schedule"`
	HolidayHistory  []HolidayRecord `json:"holiday_history" bson:"holiday_history"`
	IsActive        bool            `json:"is_active" bson:"is_active"`
	Note            string          `json:"note,omitempty" bson:"note,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at" bson:"updated_at"`
}

// RefreshSearchStr tính lại chuỗi tìm kiếm chuẩn hóa từ name/address/phone.
// Gọi sau mỗi lần tạo hoặc sửa chi nhánh.
func (b *Branch) RefreshSearchStr() {
	b.SearchStr = normalizer.Normalize(strings.Join([]string{b.Name, b.Address, b.PhoneNumber}, " "))
}

// OnHoliday kiểm tra chi nhánh có đang trong lịch nghỉ tại thời điểm t không.
// Thời gian trong lịch lưu dạng RFC 3339; dữ liệu hỏng coi như không nghỉ.
func (b *Branch) OnHoliday(t time.Time) bool {
	hs := b.HolidaySchedule
	if !hs.IsEnabled || hs.StartTime == "" || hs.EndTime == "" {
		return false
	}
	start, err := time.Parse(time.RFC3339, hs.StartTime)
	if err != nil {
		return false
	}
	end, err := time.Parse(time.RFC3339, hs.EndTime)
	if err != nil {
		return false
	}
	return !t.Before(start) && !t.After(end)
}

// ActiveBranches lọc các chi nhánh đang hoạt động, giữ nguyên thứ tự input.
func ActiveBranches(branches []Branch) []Branch {
	out := make([]Branch, 0, len(branches))
	for _, b := range branches {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out
}
