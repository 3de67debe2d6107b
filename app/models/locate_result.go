package models

// SearchSource nguồn ra kết quả: engine deterministic hay AI fallback.
type SearchSource string

const (
	SourceInstant SearchSource = "INSTANT"
	SourceAI      SearchSource = "AI"
)

// LocateResult kết quả tra cứu kho gần nhất trả về cho client và lưu vào
// cache. Giữ nguyên snapshot thông tin chi nhánh tại thời điểm tra cứu,
// không tham chiếu ngược về danh sách branch đang quản lý.
type LocateResult struct {
	BranchID          string           `json:"branch_id" bson:"branch_id"`
	BranchName        string           `json:"branch_name" bson:"branch_name"`
	ManagerName       string           `json:"manager_name" bson:"manager_name"`
	BranchAddress     string           `json:"branch_address" bson:"branch_address"`
	PhoneNumber       string           `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Reasoning         string           `json:"reasoning" bson:"reasoning"`
	EstimatedDistance string           `json:"estimated_distance,omitempty" bson:"estimated_distance,omitempty"`
	CustomerAddress   string           `json:"customer_address" bson:"customer_address"`
	HolidaySchedule   *HolidaySchedule `json:"holiday_schedule,omitempty" bson:"holiday_schedule,omitempty"`
	Source            SearchSource     `json:"source" bson:"source"`
	Score             int              `json:"score,omitempty" bson:"score,omitempty"`
	Province          string           `json:"province,omitempty" bson:"province,omitempty"`
	Confidence        float64          `json:"confidence,omitempty" bson:"confidence,omitempty"`
}

// NewLocateResult snapshot một chi nhánh thành kết quả tra cứu.
func NewLocateResult(b *Branch, customerAddress string) *LocateResult {
	r := &LocateResult{
		BranchID:        b.ID,
		BranchName:      b.Name,
		ManagerName:     b.Manager,
		BranchAddress:   b.Address,
		PhoneNumber:     b.PhoneNumber,
		CustomerAddress: customerAddress,
	}
	if b.HolidaySchedule.IsEnabled {
		hs := b.HolidaySchedule
		r.HolidaySchedule = &hs
	}
	return r
}
