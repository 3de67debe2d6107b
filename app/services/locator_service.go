package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/branch-locator/app/models"
	"github.com/branch-locator/internal/external"
	"github.com/branch-locator/internal/normalizer"
	"github.com/branch-locator/internal/resolver"
)

// LocateError lỗi tra cứu có phân loại, để tầng HTTP map sang status code.
type LocateError struct {
	Kind    resolver.OutcomeKind
	Message string
}

func (e *LocateError) Error() string { return e.Message }

const genericNoMatchMessage = "Không tìm thấy kho phù hợp. Vui lòng nhập rõ Quận/Huyện, Tỉnh/Thành phố."

const instantDistance = "Gần nhất (Tra cứu nhanh)"

// LocatorService orchestrate một lượt tra cứu: cache → engine deterministic
// → AI fallback, rồi ghi cache và đẩy search log.
type LocatorService struct {
	engine   *resolver.Engine
	branches *BranchService
	cache    ResultCache            // nil = không cache
	ai       external.BranchLocator // nil = không có fallback
	store    *SheetStore            // nil = không log
	logger   *zap.Logger
}

// NewLocatorService tạo mới LocatorService
func NewLocatorService(engine *resolver.Engine, branches *BranchService, cache ResultCache, ai external.BranchLocator, store *SheetStore, logger *zap.Logger) *LocatorService {
	return &LocatorService{
		engine:   engine,
		branches: branches,
		cache:    cache,
		ai:       ai,
		store:    store,
		logger:   logger,
	}
}

// GazetteerVersion trả về phiên bản gazetteer đang dùng để resolve.
func (ls *LocatorService) GazetteerVersion() string {
	return ls.engine.Gazetteer().Version()
}

// Locate tìm kho gần nhất cho một địa chỉ tự do.
func (ls *LocatorService) Locate(ctx context.Context, address string) (*models.LocateResult, error) {
	result, _, err := ls.LocateDetailed(ctx, address)
	return result, err
}

// LocateDetailed như Locate nhưng báo thêm kết quả có đến từ cache hay không.
func (ls *LocatorService) LocateDetailed(ctx context.Context, address string) (*models.LocateResult, bool, error) {
	normalized := normalizer.Normalize(address)
	cacheKey := CacheKey(normalized, ls.engine.Gazetteer().Version())

	if ls.cache != nil && normalized != "" {
		if cached, found, err := ls.cache.Get(ctx, cacheKey); err == nil && found {
			ls.logger.Debug("Cache hit cho tra cứu", zap.String("address", address))
			return cached, true, nil
		}
	}

	active := ls.branches.Active()
	outcome := ls.engine.Resolve(address, active)

	switch outcome.Kind {
	case resolver.OutcomeResolved:
		result := models.NewLocateResult(outcome.Branch, address)
		result.Reasoning = outcome.Reason
		result.EstimatedDistance = instantDistance
		result.Source = models.SourceInstant
		result.Score = outcome.Score
		result.Province = outcome.Province
		result.Confidence = outcome.Confidence

		ls.finish(ctx, cacheKey, address, result)
		return result, false, nil

	case resolver.OutcomeMissingProvince, resolver.OutcomeRegionNotCovered:
		// Terminal: AI cũng không cứu được khi thiếu tỉnh hoặc chưa phủ vùng
		ls.logFailure(address, outcome)
		return nil, false, &LocateError{Kind: outcome.Kind, Message: outcome.Reason}

	default:
		return ls.locateWithAI(ctx, cacheKey, address, active, outcome)
	}
}

// locateWithAI gọi fallback đúng một lần khi engine không chấm được điểm.
func (ls *LocatorService) locateWithAI(ctx context.Context, cacheKey, address string, active []models.Branch, outcome resolver.Outcome) (*models.LocateResult, bool, error) {
	if ls.ai == nil {
		ls.logFailure(address, outcome)
		return nil, false, &LocateError{Kind: resolver.OutcomeNoDeterministicMatch, Message: genericNoMatchMessage}
	}

	suggestion, err := ls.ai.Locate(ctx, address, active)
	if err != nil {
		ls.logger.Warn("AI fallback thất bại", zap.Error(err), zap.String("address", address))
		ls.logFailure(address, outcome)
		return nil, false, &LocateError{Kind: resolver.OutcomeNoDeterministicMatch, Message: genericNoMatchMessage}
	}

	result := models.NewLocateResult(suggestion.Branch, address)
	result.Reasoning = suggestion.Reasoning
	result.EstimatedDistance = suggestion.EstimatedDistance
	result.Source = models.SourceAI
	result.Province = outcome.Province

	ls.finish(ctx, cacheKey, address, result)
	return result, false, nil
}

// finish ghi cache và đẩy search log cho một lượt tra cứu thành công.
func (ls *LocatorService) finish(ctx context.Context, cacheKey, address string, result *models.LocateResult) {
	if ls.cache != nil {
		if err := ls.cache.Set(ctx, cacheKey, result); err != nil {
			ls.logger.Warn("Lỗi ghi cache tra cứu", zap.Error(err))
		}
	}

	if ls.store != nil {
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			ls.store.LogSearch(bgCtx, models.SearchLog{
				Query:      address,
				BranchName: result.BranchName,
				Source:     result.Source,
				Province:   result.Province,
				Score:      result.Score,
				Success:    true,
				CreatedAt:  time.Now(),
			})
		}()
	}
}

// logFailure đẩy search log cho một lượt tra cứu thất bại.
func (ls *LocatorService) logFailure(address string, outcome resolver.Outcome) {
	if ls.store == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		ls.store.LogSearch(bgCtx, models.SearchLog{
			Query:     address,
			Province:  outcome.Province,
			Success:   false,
			CreatedAt: time.Now(),
		})
	}()
}

// CacheStatsSnapshot thống kê cache cho trang quản trị.
func (ls *LocatorService) CacheStatsSnapshot(ctx context.Context) (*CacheStats, error) {
	if ls.cache == nil {
		return &CacheStats{}, nil
	}
	return ls.cache.GetStats(ctx)
}

// InvalidateCache dọn cache theo phiên bản gazetteer hiện tại.
func (ls *LocatorService) InvalidateCache(ctx context.Context) error {
	if ls.cache == nil {
		return nil
	}
	return ls.cache.InvalidateByGazetteerVersion(ctx, ls.engine.Gazetteer().Version())
}
