package resolver

import "testing"

func TestFuzzyContains(t *testing.T) {
	testCases := []struct {
		name    string
		text    string
		pattern string
		want    bool
	}{
		{"Exact_Substring", "giao hang da nang gap", "da nang", true},
		{"One_Typo_Short_Pattern", "194 kinh duong vuong da nag", "da nang", true},
		{"Short_Pattern_Requires_Exact", "hcn quan 1", "hcm", false},
		{"Short_Pattern_Exact_OK", "hcm quan 1", "hcm", true},
		{"Missing_Char_Alignment", "giao ve nha trng som", "nha trang", true},
		{"Extra_Char_Alignment", "ve buon ma thuuot ngay", "buon ma thuot", true},
		{"Two_Edits_Long_Pattern", "gan buon me thuat", "buon ma thuot", true},
		{"Far_Pattern_Rejected", "xin giao hang nhanh", "vincom plaza", false},
		{"Two_Edits_Medium_Pattern_Rejected", "cho gao tien giang", "cho dam", false},
		{"Empty_Pattern", "bat ky", "", false},
		{"Pattern_Longer_Than_Text", "ab", "abcdef", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FuzzyContains(tc.text, tc.pattern); got != tc.want {
				t.Errorf("FuzzyContains(%q, %q) = %v, want %v", tc.text, tc.pattern, got, tc.want)
			}
		})
	}
}

// Tolerance phải theo lớp độ dài: <4 exact, <8 tối đa 1 lỗi, >=8 tối đa 2.
func TestFuzzyTolerance(t *testing.T) {
	testCases := []struct {
		pattern string
		want    int
	}{
		{"abc", 0},
		{"abcd", 1},
		{"abcdefg", 1},
		{"abcdefgh", 2},
		{"buon ma thuot", 2},
	}
	for _, tc := range testCases {
		if got := fuzzyTolerance(tc.pattern); got != tc.want {
			t.Errorf("fuzzyTolerance(%q) = %d, want %d", tc.pattern, got, tc.want)
		}
	}
}

func TestWithinEditDistance_LengthPrecheck(t *testing.T) {
	// chênh lệch độ dài > 2 phải bị loại trước khi chạy DP
	if withinEditDistance("abc", "abcdef", 2) {
		t.Error("expected precheck to reject length diff > 2")
	}
	if !withinEditDistance("abcd", "abce", 1) {
		t.Error("expected single substitution within tolerance")
	}
}
