package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/branch-locator/app/models"
	"github.com/branch-locator/internal/external"
	"github.com/branch-locator/internal/gazetteer"
	"github.com/branch-locator/internal/resolver"
)

type fakeAI struct {
	suggestion *external.AISuggestion
	err        error
	calls      int
}

func (f *fakeAI) Locate(ctx context.Context, query string, candidates []models.Branch) (*external.AISuggestion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestion, nil
}

func newTestLocator(t *testing.T, branches []models.Branch, cache ResultCache, ai external.BranchLocator) *LocatorService {
	t.Helper()

	gaz, err := gazetteer.Load()
	require.NoError(t, err)
	engine := resolver.NewEngine(gaz, gazetteer.BuildAliasTable(gaz), zap.NewNop())

	bs := NewBranchService(nil, nil, zap.NewNop())
	for i := range branches {
		require.NoError(t, bs.Create(context.Background(), &branches[i]))
	}

	return NewLocatorService(engine, bs, cache, ai, nil, zap.NewNop())
}

func TestLocate_InstantMatch(t *testing.T) {
	ls := newTestLocator(t, []models.Branch{
		{Name: "Kho Liên Chiểu", Address: "194 Kinh Dương Vương, Liên Chiểu, Đà Nẵng", IsActive: true},
	}, nil, nil)

	result, err := ls.Locate(context.Background(), "194 Kinh Dương Vương, Đà Nẵng")
	require.NoError(t, err)
	assert.Equal(t, models.SourceInstant, result.Source)
	assert.Equal(t, "Kho Liên Chiểu", result.BranchName)
	assert.Equal(t, "da nang", result.Province)
	assert.NotEmpty(t, result.Reasoning)
}

func TestLocate_CacheHitSkipsEngine(t *testing.T) {
	cache := NewMemoryCacheService(16, time.Minute)
	ls := newTestLocator(t, []models.Branch{
		{Name: "Kho Huế", Address: "10 Lê Lợi, Thừa Thiên Huế", IsActive: true},
	}, cache, nil)

	first, err := ls.Locate(context.Background(), "giao về Huế")
	require.NoError(t, err)

	second, err := ls.Locate(context.Background(), "giao về Huế")
	require.NoError(t, err)
	assert.Equal(t, first.BranchName, second.BranchName)

	stats, err := cache.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalHits)
}

func TestLocate_MissingProvinceIsTerminal(t *testing.T) {
	ai := &fakeAI{}
	ls := newTestLocator(t, []models.Branch{
		{Name: "Kho Huế", Address: "10 Lê Lợi, Thừa Thiên Huế", IsActive: true},
	}, nil, ai)

	_, err := ls.Locate(context.Background(), "xin giao hàng nhanh")
	require.Error(t, err)

	var locErr *LocateError
	require.True(t, errors.As(err, &locErr))
	assert.Equal(t, resolver.OutcomeMissingProvince, locErr.Kind)
	assert.Equal(t, 0, ai.calls, "AI không được gọi khi thiếu tỉnh")
}

func TestLocate_AIFallback(t *testing.T) {
	branches := []models.Branch{
		{Name: "Kho A", Address: "Quận 7, Hồ Chí Minh", IsActive: true},
		{Name: "Kho B", Address: "Thủ Đức, Hồ Chí Minh", IsActive: true},
	}
	ai := &fakeAI{suggestion: &external.AISuggestion{
		Branch:            &branches[1],
		EstimatedDistance: "khoảng 3km",
		Reasoning:         "Kho B gần vị trí khách nhất.",
	}}
	ls := newTestLocator(t, branches, nil, ai)

	// Alias nhận ra tỉnh nhưng query không có tín hiệu quận hay token nào
	result, err := ls.Locate(context.Background(), "hcm")
	require.NoError(t, err)
	assert.Equal(t, 1, ai.calls)
	assert.Equal(t, models.SourceAI, result.Source)
	assert.Equal(t, "Kho B", result.BranchName)
	assert.Equal(t, "khoảng 3km", result.EstimatedDistance)
}

func TestLocate_AIFailureCollapsesToGenericError(t *testing.T) {
	ai := &fakeAI{err: errors.New("upstream timeout")}
	ls := newTestLocator(t, []models.Branch{
		{Name: "Kho A", Address: "Quận 7, Hồ Chí Minh", IsActive: true},
		{Name: "Kho B", Address: "Thủ Đức, Hồ Chí Minh", IsActive: true},
	}, nil, ai)

	_, err := ls.Locate(context.Background(), "hcm")
	require.Error(t, err)

	var locErr *LocateError
	require.True(t, errors.As(err, &locErr))
	assert.Equal(t, resolver.OutcomeNoDeterministicMatch, locErr.Kind)
	assert.Equal(t, genericNoMatchMessage, locErr.Message)
}

func TestCacheKey_ChangesWithGazetteerVersion(t *testing.T) {
	k1 := CacheKey("giao ve hue", "2026.09")
	k2 := CacheKey("giao ve hue", "2026.10")
	k3 := CacheKey("giao ve hue", "2026.09")

	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, k3)
}
