package services

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/branch-locator/app/models"
)

// CacheStats thống kê cache
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ResultCache interface cache kết quả tra cứu kho theo fingerprint.
type ResultCache interface {
	// Get lấy kết quả từ cache
	Get(ctx context.Context, key string) (*models.LocateResult, bool, error)

	// Set lưu kết quả vào cache
	Set(ctx context.Context, key string, result *models.LocateResult) error

	// Delete xóa kết quả khỏi cache
	Delete(ctx context.Context, key string) error

	// Clear xóa tất cả cache
	Clear(ctx context.Context) error

	// InvalidateByGazetteerVersion dọn các record thuộc phiên bản dataset cũ
	InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error

	// GetStats lấy thống kê cache
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close đóng kết nối (nếu cần)
	Close() error
}

// CacheKey fingerprint ổn định cho một query: hash của query đã chuẩn hóa
// ghép với phiên bản gazetteer, ngăn kết quả cũ sống sót qua lần đổi dataset.
func CacheKey(normalizedQuery, gazetteerVersion string) string {
	hash := sha256.Sum256([]byte(normalizedQuery + "\x1f" + gazetteerVersion))
	return fmt.Sprintf("sha256:%x", hash)
}
