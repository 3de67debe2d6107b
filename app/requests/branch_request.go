package requests

import "github.com/branch-locator/app/models"

// LocateBranchRequest request tìm kho gần nhất cho một địa chỉ tự do
type LocateBranchRequest struct {
	Address string `json:"address" binding:"required"` // Địa chỉ khách hàng cần tra cứu
}

// CreateBranchRequest request tạo kho mới
type CreateBranchRequest struct {
	Name        string `json:"name" binding:"required"`    // Tên kho
	Manager     string `json:"manager"`                    // Quản lý kho
	Address     string `json:"address" binding:"required"` // Địa chỉ kho
	PhoneNumber string `json:"phone_number"`               // Số điện thoại
	Note        string `json:"note"`                       // Ghi chú
}

// UpdateBranchRequest request cập nhật kho
type UpdateBranchRequest struct {
	Name        string `json:"name" binding:"required"`
	Manager     string `json:"manager"`
	Address     string `json:"address" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Note        string `json:"note"`
	IsActive    *bool  `json:"is_active,omitempty"` // nil giữ nguyên trạng thái hiện tại
}

// SetHolidayRequest request cập nhật lịch nghỉ của kho
type SetHolidayRequest struct {
	Schedule models.HolidaySchedule `json:"schedule"` // Lịch nghỉ mới, is_enabled=false để bỏ lịch
}
