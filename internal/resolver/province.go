package resolver

import (
	"sort"
	"strings"

	"github.com/branch-locator/app/models"
	"github.com/branch-locator/internal/gazetteer"
)

// provinceDetection kết quả dò tỉnh từ query
type provinceDetection struct {
	province   string
	method     DetectionMethod
	aliasKey   string
	confidence float64
	found      bool
}

// Confidence cho tầng suy luận: keyword khớp exact nhưng bản thân dữ liệu
// gazetteer không phủ hết mọi cung đường nên không coi là chắc tuyệt đối.
const inferenceConfidence = 0.9

// detectProvince chạy cascade ba tầng trên query đã chuẩn hóa:
//
//  1. Exact alias: key dài nhất xuất hiện nguyên văn trong query thắng.
//  2. Fuzzy alias: cùng danh sách key (bỏ key < 4 ký tự), cho phép sai số
//     theo FuzzyContains. Kết quả tầng này chỉ là tạm thời.
//  3. Suy luận từ cung đường / địa danh: chỉ xét các tỉnh đang có chi nhánh
//     hoạt động. Một keyword cụ thể khớp exact đáng tin hơn fuzzy trên tên
//     địa danh ngắn, nên suy luận ghi đè kết quả fuzzy — nhưng không bao
//     giờ ghi đè exact alias.
func (e *Engine) detectProvince(normalizedQuery string, active []models.Branch) provinceDetection {
	// 1. Exact alias (longest match wins, keys đã sort sẵn)
	for _, key := range e.aliases.SortedKeys() {
		if strings.Contains(normalizedQuery, key) {
			prov, _ := e.aliases.Province(key)
			return provinceDetection{province: prov, method: MethodExact, aliasKey: key, confidence: 1, found: true}
		}
	}

	// 2. Fuzzy alias
	var fuzzy provinceDetection
	for _, key := range e.aliases.SortedKeys() {
		if len(key) < 4 {
			continue
		}
		if window, ok := fuzzyFind(normalizedQuery, key); ok {
			prov, _ := e.aliases.Province(key)
			fuzzy = provinceDetection{
				province:   prov,
				method:     MethodFuzzy,
				aliasKey:   key,
				confidence: similarity(key, window),
				found:      true,
			}
			break
		}
	}

	// 3. Suy luận — ghi đè fuzzy hoặc bổ sung khi cả hai tầng trên trượt
	if inferred, ok := e.inferProvince(normalizedQuery, active); ok {
		if !fuzzy.found || fuzzy.province != inferred {
			return provinceDetection{province: inferred, method: MethodInference, confidence: inferenceConfidence, found: true}
		}
	}

	return fuzzy
}

// inferProvince quét keyword (dài hơn 4 ký tự) của mọi quận/huyện thuộc
// các tỉnh có ít nhất một chi nhánh hoạt động; keyword đầu tiên xuất hiện
// nguyên văn trong query quyết định tỉnh.
func (e *Engine) inferProvince(normalizedQuery string, active []models.Branch) (string, bool) {
	for _, prov := range e.gaz.ProvinceNames() {
		if !provinceHasBranch(prov, active) {
			continue
		}
		pd, _ := e.gaz.Province(prov)
		for _, dist := range sortedDistricts(pd) {
			for _, kw := range pd[dist].Keywords() {
				if len(kw) <= 4 {
					continue
				}
				if strings.Contains(normalizedQuery, kw) {
					return prov, true
				}
			}
		}
	}
	return "", false
}

func provinceHasBranch(province string, branches []models.Branch) bool {
	for _, b := range branches {
		if strings.Contains(b.SearchStr, province) {
			return true
		}
	}
	return false
}

// sortedDistricts tên quận/huyện theo alphabet để kết quả deterministic
// khi iterate map.
func sortedDistricts(pd gazetteer.ProvinceData) []string {
	names := make([]string, 0, len(pd))
	for name := range pd {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
