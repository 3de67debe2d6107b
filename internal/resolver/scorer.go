package resolver

import (
	"fmt"
	"strings"

	"github.com/branch-locator/app/models"
	"github.com/branch-locator/internal/normalizer"
)

// Trọng số chấm điểm candidate. Quận trùng khớp là tín hiệu mạnh nhất,
// quận lân cận yếu hơn, trùng token từ vựng chỉ mang tính phụ trợ.
const (
	scoreSameDistrict  = 1000
	scoreNeighbor      = 500
	scoreTokenOverlap  = 10
	scoreSoleCandidate = scoreSameDistrict
)

// filterByProvince giữ lại các chi nhánh có search string chứa tên tỉnh,
// giữ nguyên thứ tự input.
func filterByProvince(branches []models.Branch, province string) []models.Branch {
	out := make([]models.Branch, 0, len(branches))
	for _, b := range branches {
		if strings.Contains(b.SearchStr, province) {
			out = append(out, b)
		}
	}
	return out
}

// inferDistricts tìm các quận/huyện của tỉnh được nhắc tới trong query:
// tên quận xuất hiện nguyên văn, hoặc bất kỳ keyword nào của quận xuất
// hiện nguyên văn. Một query có thể suy ra nhiều quận (đường chạy qua
// nhiều quận, hoặc khách ghi hai địa chỉ).
func (e *Engine) inferDistricts(normalizedQuery, province string) []string {
	pd, ok := e.gaz.Province(province)
	if !ok {
		return nil
	}

	var inferred []string
	for _, dist := range sortedDistricts(pd) {
		if strings.Contains(normalizedQuery, dist) {
			inferred = append(inferred, dist)
			continue
		}
		for _, kw := range pd[dist].Keywords() {
			if strings.Contains(normalizedQuery, kw) {
				inferred = append(inferred, dist)
				break
			}
		}
	}
	return inferred
}

// scoreCandidates chấm điểm từng candidate và trả về branch điểm cao nhất.
// Hòa điểm thì branch đứng trước trong input thắng (so sánh strict >).
// Trả về found=false khi không candidate nào có tín hiệu nào (điểm 0).
func (e *Engine) scoreCandidates(normalizedQuery, province string, candidates []models.Branch) (best *models.Branch, bestScore int, code ReasonCode, found bool) {
	inferred := e.inferDistricts(normalizedQuery, province)
	pd, _ := e.gaz.Province(province)
	tokens := normalizer.ScoringTokens(normalizedQuery)

	bestIdx := -1
	var bestCode ReasonCode

	for i := range candidates {
		score := 0
		sawDistrict := false
		sawNeighbor := false

		for _, dist := range inferred {
			if strings.Contains(candidates[i].SearchStr, dist) {
				score += scoreSameDistrict
				sawDistrict = true
				continue
			}
			for _, nb := range pd[dist].NearbyDistricts {
				if strings.Contains(candidates[i].SearchStr, nb) {
					score += scoreNeighbor
					sawNeighbor = true
					break
				}
			}
		}

		for _, tok := range tokens {
			if strings.Contains(candidates[i].SearchStr, tok) {
				score += scoreTokenOverlap
			}
		}

		if score > bestScore {
			bestScore = score
			bestIdx = i
			switch {
			case sawDistrict:
				bestCode = ReasonSameDistrict
			case sawNeighbor:
				bestCode = ReasonNeighboringDistrict
			default:
				bestCode = ReasonGenericMatch
			}
		}
	}

	if bestIdx < 0 {
		return nil, 0, "", false
	}
	return &candidates[bestIdx], bestScore, bestCode, true
}

// reasonText diễn giải tiếng Việt theo reason code.
func reasonText(code ReasonCode, province string) string {
	switch code {
	case ReasonSoleBranch:
		return fmt.Sprintf("Kho duy nhất phục vụ khu vực %s.", strings.ToUpper(province))
	case ReasonSameDistrict:
		return fmt.Sprintf("Đã tìm thấy kho cùng quận/huyện với địa chỉ của bạn tại khu vực %s.", strings.ToUpper(province))
	case ReasonNeighboringDistrict:
		return fmt.Sprintf("Đã tìm thấy kho ở quận/huyện lân cận trong khu vực %s.", strings.ToUpper(province))
	default:
		return "Tìm thấy kho có địa chỉ trùng khớp với từ khóa bạn nhập."
	}
}
