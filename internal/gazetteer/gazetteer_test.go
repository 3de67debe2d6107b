package gazetteer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branch-locator/internal/normalizer"
)

func TestLoad(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.NotEmpty(t, g.Version())
	assert.Greater(t, len(g.ProvinceNames()), 40, "dataset should cover most provinces")
	assert.Greater(t, g.DistrictCount(), 80)

	// vài tỉnh chủ chốt phải có mặt
	for _, p := range []string{"ho chi minh", "ha noi", "da nang", "thua thien hue", "dak lak"} {
		assert.True(t, g.HasProvince(p), "missing province %q", p)
	}
}

func TestLoad_NamesAreNormalized(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)

	for _, prov := range g.ProvinceNames() {
		assert.Equal(t, normalizer.Normalize(prov), prov)

		pd, ok := g.Province(prov)
		require.True(t, ok)
		for dist, detail := range pd {
			assert.Equal(t, normalizer.Normalize(dist), dist)
			for _, kw := range detail.Keywords() {
				assert.Equal(t, normalizer.Normalize(kw), kw,
					"keyword %q in %s/%s not normalized", kw, prov, dist)
			}
		}
	}
}

func TestLoad_DistrictDetail(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)

	pd, ok := g.Province("da nang")
	require.True(t, ok)

	detail, ok := pd["lien chieu"]
	require.True(t, ok)
	assert.Contains(t, detail.Streets, "kinh duong vuong")
	assert.Contains(t, detail.NearbyDistricts, "thanh khe")

	// Keywords gộp đủ cả bốn danh sách
	kws := detail.Keywords()
	assert.Contains(t, kws, "benh vien ung buou da nang")
	assert.Contains(t, kws, "cho hoa khanh")
	assert.Contains(t, kws, "deo hai van")
}

func TestBuildAliasTable(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)
	table := BuildAliasTable(g)

	testCases := []struct {
		key      string
		province string
	}{
		{"hcm", "ho chi minh"},
		{"sai gon", "ho chi minh"},
		{"tphcm", "ho chi minh"},
		{"bmt", "dak lak"},
		{"hue", "thua thien hue"},
		{"vung tau", "ba ria vung tau"},
		{"ecopark", "hung yen"},
		{"sapa", "lao cai"},
		// key sinh tự động: tên tỉnh và tên quận/huyện
		{"da nang", "da nang"},
		{"da lat", "lam dong"},
		{"thu duc", "ho chi minh"},
		{"nha trang", "khanh hoa"},
		{"buon ma thuot", "dak lak"},
	}
	for _, tc := range testCases {
		got, ok := table.Province(tc.key)
		assert.True(t, ok, "alias %q not found", tc.key)
		assert.Equal(t, tc.province, got, "alias %q", tc.key)
	}
}

func TestBuildAliasTable_BaseWinsOverDerived(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)
	table := BuildAliasTable(g)

	// "hue" vừa là quận trong gazetteer vừa là base alias; base thắng
	// và cả hai cùng trỏ về thua thien hue.
	got, ok := table.Province("hue")
	require.True(t, ok)
	assert.Equal(t, "thua thien hue", got)
}

func TestBuildAliasTable_KeysSortedByLengthDesc(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)
	table := BuildAliasTable(g)

	keys := table.SortedKeys()
	require.Equal(t, table.Len(), len(keys))
	for i := 1; i < len(keys); i++ {
		assert.GreaterOrEqual(t, len(keys[i-1]), len(keys[i]),
			"keys not sorted by length at %d: %q before %q", i, keys[i-1], keys[i])
	}

	// mọi key phải đã chuẩn hóa và non-empty
	for _, k := range keys {
		require.NotEmpty(t, k)
		assert.False(t, strings.Contains(k, "  "))
		assert.Equal(t, normalizer.Normalize(k), k)
	}
}
