package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/branch-locator/app/models"
)

// HybridCacheService kết hợp Redis (L1, nhanh) + MongoDB (L2, persistent).
type HybridCacheService struct {
	redisCache *RedisCacheService
	mongoCache *MongoCacheService
	logger     *zap.Logger
}

// NewHybridCacheService tạo mới hybrid cache service
func NewHybridCacheService(redisCache *RedisCacheService, mongoCache *MongoCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{
		redisCache: redisCache,
		mongoCache: mongoCache,
		logger:     logger,
	}
}

// Get lấy kết quả từ cache (Redis trước, MongoDB sau)
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.LocateResult, bool, error) {
	result, found, err := hcs.redisCache.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("Lỗi Redis cache, fallback MongoDB", zap.Error(err))
	} else if found {
		return result, true, nil
	}

	result, found, err = hcs.mongoCache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	// Hit ở L2: đồng bộ ngược lên Redis cho lần hỏi sau
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := hcs.redisCache.Set(bgCtx, key, result); err != nil {
			hcs.logger.Warn("Lỗi sync MongoDB->Redis", zap.Error(err), zap.String("key", key))
		}
	}()

	hcs.logger.Debug("L2 cache hit (MongoDB)", zap.String("key", key))
	return result, true, nil
}

// Set lưu kết quả vào cả hai tầng song song
func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.LocateResult) error {
	return hcs.fanOut(
		func() error { return hcs.redisCache.Set(ctx, key, result) },
		func() error { return hcs.mongoCache.Set(ctx, key, result) },
	)
}

// Delete xóa key khỏi cả hai tầng
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	return hcs.fanOut(
		func() error { return hcs.redisCache.Delete(ctx, key) },
		func() error { return hcs.mongoCache.Delete(ctx, key) },
	)
}

// Clear xóa toàn bộ cache
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	return hcs.fanOut(
		func() error { return hcs.redisCache.Clear(ctx) },
		func() error { return hcs.mongoCache.Clear(ctx) },
	)
}

// InvalidateByGazetteerVersion dọn record phiên bản dataset cũ ở cả hai tầng
func (hcs *HybridCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	err := hcs.fanOut(
		func() error { return hcs.redisCache.InvalidateByGazetteerVersion(ctx, gazetteerVersion) },
		func() error { return hcs.mongoCache.InvalidateByGazetteerVersion(ctx, gazetteerVersion) },
	)
	if err == nil {
		hcs.logger.Info("Invalidated hybrid cache", zap.String("gazetteer_version", gazetteerVersion))
	}
	return err
}

// GetStats kết hợp thống kê từ cả hai tầng
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	redisStats, redisErr := hcs.redisCache.GetStats(ctx)
	mongoStats, mongoErr := hcs.mongoCache.GetStats(ctx)

	if redisErr != nil && mongoErr != nil {
		return nil, fmt.Errorf("cả Redis và MongoDB đều lỗi: %v, %v", redisErr, mongoErr)
	}

	combined := &CacheStats{}
	switch {
	case redisErr == nil && mongoErr == nil:
		totalHits := redisStats.TotalHits + mongoStats.TotalHits
		totalMiss := redisStats.TotalMiss + mongoStats.TotalMiss
		if total := totalHits + totalMiss; total > 0 {
			combined.HitRate = float64(totalHits) / float64(total)
		}
		combined.TotalHits = totalHits
		combined.TotalMiss = totalMiss
		combined.TotalItems = redisStats.TotalItems + mongoStats.TotalItems
	case redisErr == nil:
		*combined = *redisStats
	default:
		*combined = *mongoStats
	}

	return combined, nil
}

// Close đóng kết nối cả hai tầng
func (hcs *HybridCacheService) Close() error {
	return hcs.fanOut(hcs.redisCache.Close, hcs.mongoCache.Close)
}

// WarmUpFromMongoDB làm nóng L1 trong Mongo cache từ các record hỏi nhiều.
func (hcs *HybridCacheService) WarmUpFromMongoDB(ctx context.Context, limit int) error {
	return hcs.mongoCache.WarmUp(ctx, limit)
}

// fanOut chạy hai thao tác song song, gom lỗi.
func (hcs *HybridCacheService) fanOut(fns ...func() error) error {
	errCh := make(chan error, len(fns))
	for _, fn := range fns {
		go func(f func() error) { errCh <- f() }(fn)
	}

	var errs []error
	for range fns {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cache errors: %v", errs)
	}
	return nil
}
