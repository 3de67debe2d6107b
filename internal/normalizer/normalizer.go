package normalizer

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var reSpaces = regexp.MustCompile(`\s+`)
var reNonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// Normalize chuẩn hóa chuỗi địa chỉ về dạng ascii lowercase:
// bỏ dấu tiếng Việt, đ -> d, ký tự không phải chữ/số thành space,
// gọn khoảng trắng. Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	// 1. NFD strip các combining marks (ă, ơ, ư, dấu thanh)
	s := StripDiacritics(raw)
	// 2. unidecode xử lý phần còn lại (đ, ký tự unicode lạ)
	s = strings.ToLower(unidecode.Unidecode(s))
	// 3. ký tự rác thành space, gọn khoảng trắng
	s = reNonAlnum.ReplaceAllString(s, " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// Tokens tách chuỗi đã normalize thành các token theo space.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

// RemoveStopWords loại bỏ các từ chỉ đơn vị hành chính (thanh pho, quan,
// huyen, phuong...) khỏi chuỗi đã normalize. Các stop phrase nhiều từ được
// xử lý trước phrase một từ để "thi tran" không bị cắt dở thành "tran".
func RemoveStopWords(normalized string) string {
	s := " " + normalized + " "
	for _, w := range stopPhrases() {
		s = strings.ReplaceAll(s, " "+w+" ", " ")
	}
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// IsStopWord kiểm tra một token đơn có nằm trong danh sách stop word không.
func IsStopWord(token string) bool {
	_, ok := stopWordSet()[token]
	return ok
}

// ScoringTokens trả về các token dùng cho chấm điểm candidate:
// dài hơn 2 ký tự và không phải stop word.
func ScoringTokens(normalized string) []string {
	var out []string
	for _, tok := range Tokens(normalized) {
		if len(tok) > 2 && !IsStopWord(tok) {
			out = append(out, tok)
		}
	}
	return out
}
