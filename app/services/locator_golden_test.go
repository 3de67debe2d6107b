package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branch-locator/internal/resolver"
)

// Bộ case vàng chạy trên toàn bộ seed data thật, khoá hành vi end-to-end
// của Locate trước khi chỉnh gazetteer hay bảng alias.
func TestLocate_GoldenSeedData(t *testing.T) {
	seed := parseSeedBranchData(seedBranchData)
	require.NotEmpty(t, seed)

	ls := newTestLocator(t, seed, nil, nil)

	cases := []struct {
		name       string
		address    string
		wantBranch string
	}{
		{
			name:       "Hanoi_SoleBranch",
			address:    "giao về 155 Nguyễn Ngọc Vũ, Cầu Giấy, Hà Nội",
			wantBranch: "HÀ NỘI",
		},
		{
			name:       "DaNang_DistrictWins",
			address:    "194 Kinh Dương Vương, Liên Chiểu, Đà Nẵng",
			wantBranch: "CN LIÊN CHIỂU - ĐÀ NẴNG",
		},
		{
			name:       "CanTho_SoleBranch",
			address:    "gửi hàng đến Ninh Kiều, Cần Thơ",
			wantBranch: "CN CẦN THƠ",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ls.Locate(context.Background(), tc.address)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBranch, result.BranchName)
			assert.Equal(t, tc.address, result.CustomerAddress)
		})
	}
}

func TestLocate_GoldenSeedData_Failures(t *testing.T) {
	seed := parseSeedBranchData(seedBranchData)
	ls := newTestLocator(t, seed, nil, nil)

	cases := []struct {
		name     string
		address  string
		wantKind resolver.OutcomeKind
	}{
		{
			name:     "Hue_RegionNotCovered",
			address:  "giao gấp về Huế",
			wantKind: resolver.OutcomeRegionNotCovered,
		},
		{
			name:     "MissingProvince",
			address:  "xin giao hàng nhanh",
			wantKind: resolver.OutcomeMissingProvince,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ls.Locate(context.Background(), tc.address)
			require.Error(t, err)

			var locErr *LocateError
			require.True(t, errors.As(err, &locErr))
			assert.Equal(t, tc.wantKind, locErr.Kind)
		})
	}
}
