package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/branch-locator/app/models"
)

func TestParseSeedBranchData(t *testing.T) {
	branches := parseSeedBranchData(seedBranchData)

	require.NotEmpty(t, branches)
	assert.GreaterOrEqual(t, len(branches), 60)

	first := branches[0]
	assert.Equal(t, "HÀ NỘI", first.Name)
	assert.Equal(t, "Chị Phượng", first.Manager)
	assert.True(t, first.IsActive)
	assert.Contains(t, first.SearchStr, "ha noi")
	assert.Contains(t, first.SearchStr, "cau giay")

	for _, b := range branches {
		assert.NotEmpty(t, b.ID)
		assert.NotEmpty(t, b.SearchStr)
		assert.NotNil(t, b.HolidayHistory)
	}
}

func TestParseSeedBranchData_SkipsMalformedLines(t *testing.T) {
	raw := "CN A\tChị Hoa\tĐịa chỉ A\n\nchỉ một cột\nCN B\tAnh Nam\tĐịa chỉ B\n"
	branches := parseSeedBranchData(raw)

	require.Len(t, branches, 2)
	assert.Equal(t, "CN A", branches[0].Name)
	assert.Equal(t, "CN B", branches[1].Name)
}

func TestBranchService_CRUD(t *testing.T) {
	bs := NewBranchService(nil, nil, zap.NewNop())
	ctx := context.Background()

	b := &models.Branch{Name: "CN Test", Manager: "Chị Hoa", Address: "1 Lê Lợi, Quận 1, Hồ Chí Minh"}
	require.NoError(t, bs.Create(ctx, b))
	assert.NotEmpty(t, b.ID)
	assert.Contains(t, b.SearchStr, "le loi")

	got, ok := bs.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, "CN Test", got.Name)

	got.Address = "2 Hai Bà Trưng, Quận 1, Hồ Chí Minh"
	require.NoError(t, bs.Update(ctx, &got))
	updated, _ := bs.Get(b.ID)
	assert.Contains(t, updated.SearchStr, "hai ba trung")

	require.NoError(t, bs.Delete(ctx, b.ID))
	_, ok = bs.Get(b.ID)
	assert.False(t, ok)

	assert.Error(t, bs.Delete(ctx, "khong-ton-tai"))
}

func TestBranchService_ActiveFiltersInactive(t *testing.T) {
	bs := NewBranchService(nil, nil, zap.NewNop())
	ctx := context.Background()

	active := &models.Branch{Name: "CN A", Address: "1 Lê Lợi, Đà Nẵng", IsActive: true}
	require.NoError(t, bs.Create(ctx, active))
	hidden := &models.Branch{Name: "CN B", Address: "2 Lê Lợi, Đà Nẵng", IsActive: false}
	require.NoError(t, bs.Create(ctx, hidden))

	assert.Len(t, bs.All(), 2)
	got := bs.Active()
	require.Len(t, got, 1)
	assert.Equal(t, "CN A", got[0].Name)
}

func TestBranchService_SetHolidayArchivesPrevious(t *testing.T) {
	bs := NewBranchService(nil, nil, zap.NewNop())
	ctx := context.Background()

	b := &models.Branch{Name: "CN Huế", Address: "10 Lê Lợi, Thừa Thiên Huế", IsActive: true}
	require.NoError(t, bs.Create(ctx, b))

	first := models.HolidaySchedule{
		IsEnabled: true,
		StartTime: "2026-01-01T00:00:00Z",
		EndTime:   "2026-01-05T00:00:00Z",
		Reason:    "Nghỉ Tết dương lịch",
	}
	require.NoError(t, bs.SetHoliday(ctx, b.ID, first))

	second := models.HolidaySchedule{
		IsEnabled: true,
		StartTime: "2026-02-14T00:00:00Z",
		EndTime:   "2026-02-22T00:00:00Z",
		Reason:    "Nghỉ Tết âm lịch",
	}
	require.NoError(t, bs.SetHoliday(ctx, b.ID, second))

	got, ok := bs.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, second, got.HolidaySchedule)
	require.Len(t, got.HolidayHistory, 1)
	assert.Equal(t, first.Reason, got.HolidayHistory[0].Reason)
}
