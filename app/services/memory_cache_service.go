package services

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/branch-locator/app/models"
)

// MemoryCacheService cache in-memory trên LRU có TTL. Dùng standalone khi
// chạy không có Redis/Mongo, hoặc làm tầng trong cùng của hybrid cache.
type MemoryCacheService struct {
	cache *expirable.LRU[string, *models.LocateResult]

	hits   int64
	misses int64
}

// NewMemoryCacheService tạo mới MemoryCacheService
func NewMemoryCacheService(size int, ttl time.Duration) *MemoryCacheService {
	return &MemoryCacheService{
		cache: expirable.NewLRU[string, *models.LocateResult](size, nil, ttl),
	}
}

// Get lấy kết quả từ cache
func (mcs *MemoryCacheService) Get(ctx context.Context, key string) (*models.LocateResult, bool, error) {
	if result, ok := mcs.cache.Get(key); ok {
		mcs.hits++
		return result, true, nil
	}
	mcs.misses++
	return nil, false, nil
}

// Set lưu kết quả vào cache
func (mcs *MemoryCacheService) Set(ctx context.Context, key string, result *models.LocateResult) error {
	mcs.cache.Add(key, result)
	return nil
}

// Delete xóa kết quả khỏi cache
func (mcs *MemoryCacheService) Delete(ctx context.Context, key string) error {
	mcs.cache.Remove(key)
	return nil
}

// Clear xóa toàn bộ cache
func (mcs *MemoryCacheService) Clear(ctx context.Context) error {
	mcs.cache.Purge()
	return nil
}

// InvalidateByGazetteerVersion key đã chứa phiên bản gazetteer nên record
// phiên bản cũ không bao giờ hit lại; purge cho gọn bộ nhớ.
func (mcs *MemoryCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	return mcs.Clear(ctx)
}

// GetStats lấy thống kê cache
func (mcs *MemoryCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	total := mcs.hits + mcs.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(mcs.hits) / float64(total)
	}
	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  mcs.hits,
		TotalMiss:  mcs.misses,
		TotalItems: int64(mcs.cache.Len()),
	}, nil
}

// Close không có kết nối nào để đóng với cache in-memory.
func (mcs *MemoryCacheService) Close() error {
	return nil
}
