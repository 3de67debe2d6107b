package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/branch-locator/app/models"
	"github.com/branch-locator/internal/gazetteer"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	gaz, err := gazetteer.Load()
	require.NoError(t, err)
	return NewEngine(gaz, gazetteer.BuildAliasTable(gaz), zap.NewNop())
}

func mkBranch(id, name, address string) models.Branch {
	b := models.Branch{ID: id, Name: name, Address: address, IsActive: true}
	b.RefreshSearchStr()
	return b
}

// Scenario: địa chỉ đầy đủ có tỉnh + cung đường -> chốt theo quận.
func TestResolve_ExactAliasAndDistrictMatch(t *testing.T) {
	e := newTestEngine(t)
	branches := []models.Branch{
		mkBranch("b1", "Kho Hải Châu", "15 Bạch Đằng, Hải Châu, Đà Nẵng"),
		mkBranch("b2", "Kho Liên Chiểu", "194 Kinh Dương Vương, Liên Chiểu, Đà Nẵng"),
	}

	out := e.Resolve("194 Kinh Dương Vương, Đà Nẵng", branches)
	require.Equal(t, OutcomeResolved, out.Kind)
	assert.Equal(t, "da nang", out.Province)
	assert.Equal(t, MethodExact, out.Method)
	assert.Equal(t, "b2", out.Branch.ID)
	assert.Equal(t, ReasonSameDistrict, out.ReasonCode)
	assert.GreaterOrEqual(t, out.Score, 1000)
}

// Scenario: tỉnh gõ sai chính tả -> tầng fuzzy vẫn bắt được.
func TestResolve_FuzzyAlias(t *testing.T) {
	e := newTestEngine(t)
	branches := []models.Branch{
		mkBranch("b1", "Kho Đà Nẵng", "123 Điện Biên Phủ, Thanh Khê, Đà Nẵng"),
	}

	out := e.Resolve("giao toi Đà Nẵg", branches)
	require.Equal(t, OutcomeResolved, out.Kind)
	assert.Equal(t, "da nang", out.Province)
	assert.Equal(t, MethodFuzzy, out.Method)
	assert.Equal(t, "b1", out.Branch.ID)
	assert.Equal(t, ReasonSoleBranch, out.ReasonCode)
	assert.Greater(t, out.Confidence, 0.5)
	assert.Less(t, out.Confidence, 1.0)
}

// Scenario: không có địa danh nào nhận ra được.
func TestResolve_MissingProvince(t *testing.T) {
	e := newTestEngine(t)
	branches := []models.Branch{
		mkBranch("b1", "Kho Đà Nẵng", "123 Điện Biên Phủ, Thanh Khê, Đà Nẵng"),
	}

	out := e.Resolve("xin giao hang nhanh", branches)
	assert.Equal(t, OutcomeMissingProvince, out.Kind)
	assert.Nil(t, out.Branch)
	assert.NotEmpty(t, out.Reason)
}

// Scenario: tỉnh có trong gazetteer nhưng không kho nào phục vụ.
func TestResolve_RegionNotCovered(t *testing.T) {
	e := newTestEngine(t)
	branches := []models.Branch{
		mkBranch("b1", "Kho Đà Nẵng", "123 Điện Biên Phủ, Thanh Khê, Đà Nẵng"),
	}

	out := e.Resolve("giao den Trà Vinh gấp", branches)
	require.Equal(t, OutcomeRegionNotCovered, out.Kind)
	assert.Equal(t, "tra vinh", out.Province)
	assert.Nil(t, out.Branch)
}

// Alias dài phải thắng alias ngắn: "tra vinh" chứa "vinh" (nghe an)
// nhưng key dài hơn phải được chọn.
func TestResolve_LongestAliasWins(t *testing.T) {
	e := newTestEngine(t)
	branches := []models.Branch{
		mkBranch("b1", "Kho Vinh", "5 Quang Trung, Vinh, Nghệ An"),
		mkBranch("b2", "Kho Trà Vinh", "10 Lê Lợi, Trà Vinh"),
	}

	out := e.Resolve("phuong 5 tra vinh", branches)
	require.Equal(t, OutcomeResolved, out.Kind)
	assert.Equal(t, "tra vinh", out.Province)
	assert.Equal(t, "tra vinh", out.AliasKey)
	assert.Equal(t, "b2", out.Branch.ID)
}

// Scenario: địa danh xuất hiện ở hai tỉnh, chỉ một tỉnh có kho ->
// suy luận phải chọn tỉnh có coverage. "cho dam" có ở cả Quy Nhơn
// (Bình Định) và Nha Trang (Khánh Hòa).
func TestResolve_InferenceRespectsCoverage(t *testing.T) {
	e := newTestEngine(t)
	branches := []models.Branch{
		mkBranch("b1", "Kho Nha Trang", "88 Thái Nguyên, Nha Trang, Khánh Hòa"),
	}

	out := e.Resolve("gan cho dam", branches)
	require.Equal(t, OutcomeResolved, out.Kind)
	assert.Equal(t, "khanh hoa", out.Province)
	assert.Equal(t, "b1", out.Branch.ID)
}

// Suy luận từ cung đường exact phải ghi đè kết quả fuzzy alias:
// "vung tab" fuzzy ra bà rịa vũng tàu, nhưng "phan xich long" là đường
// Phú Nhuận (TP.HCM) và TP.HCM đang có kho.
func TestResolve_InferenceOverridesFuzzy(t *testing.T) {
	e := newTestEngine(t)
	branches := []models.Branch{
		mkBranch("b1", "Kho Phú Nhuận", "170 Phan Xích Long, Phú Nhuận, Hồ Chí Minh"),
		mkBranch("b2", "Kho Vũng Tàu", "25 Thùy Vân, Vũng Tàu, Bà Rịa Vũng Tàu"),
	}

	out := e.Resolve("phan xich long, vung tab", branches)
	require.Equal(t, OutcomeResolved, out.Kind)
	assert.Equal(t, "ho chi minh", out.Province)
	assert.Equal(t, MethodInference, out.Method)
	assert.Equal(t, "b1", out.Branch.ID)
}

// Exact alias thì không bị suy luận ghi đè, dù query nêu cả đường
// của tỉnh khác.
func TestResolve_ExactAliasNotOverridden(t *testing.T) {
	e := newTestEngine(t)
	branches := []models.Branch{
		mkBranch("b1", "Kho Phú Nhuận", "170 Phan Xích Long, Phú Nhuận, Hồ Chí Minh"),
		mkBranch("b2", "Kho Vũng Tàu", "25 Thùy Vân, Vũng Tàu, Bà Rịa Vũng Tàu"),
	}

	out := e.Resolve("phan xich long, vung tau", branches)
	require.Equal(t, OutcomeResolved, out.Kind)
	assert.Equal(t, MethodExact, out.Method)
	assert.Equal(t, "ba ria vung tau", out.Province)
	assert.Equal(t, "b2", out.Branch.ID)
}

// Một tỉnh chỉ có đúng một kho: trả ngay không cần chấm điểm,
// bất kể query có chi tiết đường phố hay không.
func TestResolve_SingleBranchShortcut(t *testing.T) {
	e := newTestEngine(t)
	branches := []models.Branch{
		mkBranch("b1", "Kho Huế", "10 Lê Lợi, Huế, Thừa Thiên Huế"),
		mkBranch("b2", "Kho Đà Nẵng", "123 Điện Biên Phủ, Đà Nẵng"),
	}

	out := e.Resolve("duong nao do khong ton tai, hue", branches)
	require.Equal(t, OutcomeResolved, out.Kind)
	assert.Equal(t, "thua thien hue", out.Province)
	assert.Equal(t, "b1", out.Branch.ID)
	assert.Equal(t, ReasonSoleBranch, out.ReasonCode)
}

// Quận lân cận: query nêu quận không có kho, kho ở quận kề được cộng
// điểm neighbor và thắng kho cùng tỉnh nhưng xa hơn.
func TestResolve_NeighborDistrictScoring(t *testing.T) {
	e := newTestEngine(t)
	branches := []models.Branch{
		// thanh khe nằm trong nearby_districts của lien chieu
		mkBranch("b1", "Kho Thanh Khê", "45 Hà Huy Tập, Thanh Khê, Đà Nẵng"),
		mkBranch("b2", "Kho Ngũ Hành Sơn", "12 Lê Văn Hiến, Ngũ Hành Sơn, Đà Nẵng"),
	}

	out := e.Resolve("khu cong nghiep hoa khanh, lien chieu, da nang", branches)
	require.Equal(t, OutcomeResolved, out.Kind)
	assert.Equal(t, "b1", out.Branch.ID)
	assert.Equal(t, ReasonNeighboringDistrict, out.ReasonCode)
}

// Hòa điểm thì giữ branch đứng trước trong input.
func TestResolve_TieBreakKeepsInputOrder(t *testing.T) {
	e := newTestEngine(t)
	branches := []models.Branch{
		mkBranch("b1", "Kho A", "Quận 7, Hồ Chí Minh"),
		mkBranch("b2", "Kho B", "Quận 7, Hồ Chí Minh"),
	}

	out := e.Resolve("nguyen thi thap quan 7 ho chi minh", branches)
	require.Equal(t, OutcomeResolved, out.Kind)
	assert.Equal(t, "b1", out.Branch.ID)
}

// Branch inactive phải bị loại dù caller quên lọc.
func TestResolve_IgnoresInactiveBranches(t *testing.T) {
	e := newTestEngine(t)
	inactive := mkBranch("b1", "Kho Đà Nẵng", "123 Điện Biên Phủ, Đà Nẵng")
	inactive.IsActive = false

	out := e.Resolve("giao ve da nang", []models.Branch{inactive})
	assert.Equal(t, OutcomeRegionNotCovered, out.Kind)
}

// Input rỗng / rác chảy về MissingProvince, không panic không error.
func TestResolve_EmptyQuery(t *testing.T) {
	e := newTestEngine(t)
	out := e.Resolve("", nil)
	assert.Equal(t, OutcomeMissingProvince, out.Kind)

	out = e.Resolve("!!! ??? ...", nil)
	assert.Equal(t, OutcomeMissingProvince, out.Kind)
}
