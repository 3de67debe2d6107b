package responses

import (
	"github.com/branch-locator/app/models"
	"github.com/branch-locator/app/services"
)

// LocateBranchResponse response tra cứu kho gần nhất
type LocateBranchResponse struct {
	Result           models.LocateResult `json:"result"`             // Kết quả tra cứu
	GazetteerVersion string              `json:"gazetteer_version"`  // Phiên bản gazetteer
	ProcessingTimeMs int64               `json:"processing_time_ms"` // Thời gian xử lý (ms)
	CacheHit         bool                `json:"cache_hit"`          // Có hit cache không
}

// BranchListResponse response danh sách kho
type BranchListResponse struct {
	Branches []models.Branch `json:"branches"` // Danh sách kho
	Total    int             `json:"total"`    // Tổng số kho
	Active   int             `json:"active"`   // Số kho đang hoạt động
}

// BranchSearchResponse response tìm kiếm kho (admin)
type BranchSearchResponse struct {
	Branches         []models.Branch `json:"branches"`           // Kho khớp truy vấn
	Query            string          `json:"query"`              // Truy vấn gốc
	ProcessingTimeMs int64           `json:"processing_time_ms"` // Thời gian xử lý (ms)
}

// StatsResponse response thống kê hệ thống
type StatsResponse struct {
	CacheStats       *services.CacheStats `json:"cache_stats,omitempty"` // Thống kê cache
	TotalBranches    int                  `json:"total_branches"`        // Tổng số kho
	ActiveBranches   int                  `json:"active_branches"`       // Số kho đang hoạt động
	GazetteerVersion string               `json:"gazetteer_version"`     // Phiên bản gazetteer
	ProvinceCount    int                  `json:"province_count"`        // Số tỉnh/thành trong gazetteer
	UptimeSeconds    int64                `json:"uptime_seconds"`        // Thời gian hoạt động (giây)
}

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error     string      `json:"error"`             // Mã lỗi
	Message   string      `json:"message"`           // Thông báo lỗi
	Details   interface{} `json:"details,omitempty"` // Chi tiết lỗi
	Timestamp string      `json:"timestamp"`         // Thời gian xảy ra lỗi
}

// SuccessResponse response thành công
type SuccessResponse struct {
	Success   bool        `json:"success"`        // Có thành công không
	Message   string      `json:"message"`        // Thông báo
	Data      interface{} `json:"data,omitempty"` // Dữ liệu
	Timestamp string      `json:"timestamp"`      // Thời gian
}

// HealthCheckResponse response kiểm tra sức khỏe
type HealthCheckResponse struct {
	Status    string            `json:"status"`    // Trạng thái sức khỏe
	Timestamp string            `json:"timestamp"` // Thời gian kiểm tra
	Uptime    string            `json:"uptime"`    // Thời gian hoạt động
	Version   string            `json:"version"`   // Phiên bản
	Services  map[string]string `json:"services"`  // Trạng thái các service
}
