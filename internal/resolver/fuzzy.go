package resolver

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// fuzzyTolerance số lỗi chỉnh sửa cho phép theo độ dài pattern.
// Dưới 4 ký tự: 0 (bắt buộc exact). Dưới 8: 1. Từ 8 trở lên: 2.
func fuzzyTolerance(pattern string) int {
	switch {
	case len(pattern) < 4:
		return 0
	case len(pattern) < 8:
		return 1
	default:
		return 2
	}
}

// withinEditDistance so sánh hai chuỗi với precheck độ dài trước khi chạy
// Levenshtein O(n*m): chênh lệch độ dài quá 2 thì chắc chắn vượt tolerance.
func withinEditDistance(a, b string, max int) bool {
	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	if diff > 2 || diff > max {
		return false
	}
	return levenshtein.ComputeDistance(a, b) <= max
}

// FuzzyContains kiểm tra pattern có xuất hiện trong text với sai số giới
// hạn không. Pattern ngắn hơn 4 ký tự chỉ chấp nhận substring exact.
// Với pattern dài hơn, trượt cửa sổ theo độ dài pattern và ±1 ký tự
// (bắt lỗi thêm/bớt ký tự làm lệch alignment) rồi tính edit distance.
func FuzzyContains(text, pattern string) bool {
	_, ok := fuzzyFind(text, pattern)
	return ok
}

// fuzzyFind như FuzzyContains nhưng trả về luôn cửa sổ đã khớp để tầng
// trên tính confidence.
func fuzzyFind(text, pattern string) (string, bool) {
	if pattern == "" {
		return "", false
	}
	if strings.Contains(text, pattern) {
		return pattern, true
	}

	allowed := fuzzyTolerance(pattern)
	if allowed == 0 {
		return "", false
	}

	for _, width := range []int{len(pattern), len(pattern) - 1, len(pattern) + 1} {
		if width <= 0 || width > len(text) {
			continue
		}
		for i := 0; i+width <= len(text); i++ {
			if withinEditDistance(text[i:i+width], pattern, allowed) {
				return text[i : i+width], true
			}
		}
	}
	return "", false
}

// similarity độ tương đồng [0..1] giữa pattern và cửa sổ đã khớp, lấy max
// của Jaro-Winkler và tỉ lệ Levenshtein để không bị thiệt với chuỗi ngắn.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	jw := smetrics.JaroWinkler(a, b, 0.7, 4)
	lv := 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
	if jw > lv {
		return jw
	}
	return lv
}
