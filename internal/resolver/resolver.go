package resolver

import (
	"time"

	"go.uber.org/zap"

	"github.com/branch-locator/app/models"
	"github.com/branch-locator/internal/gazetteer"
	"github.com/branch-locator/internal/normalizer"
)

// Engine resolve địa chỉ tự do về chi nhánh gần nhất. Gazetteer và alias
// table build một lần lúc khởi động và read-only sau đó, nên Resolve an
// toàn khi gọi song song từ nhiều goroutine.
type Engine struct {
	gaz     *gazetteer.Gazetteer
	aliases *gazetteer.AliasTable
	logger  *zap.Logger
}

// NewEngine tạo mới Engine
func NewEngine(gaz *gazetteer.Gazetteer, aliases *gazetteer.AliasTable, logger *zap.Logger) *Engine {
	return &Engine{gaz: gaz, aliases: aliases, logger: logger}
}

// Gazetteer expose dataset cho các tầng ngoài (cache key theo version).
func (e *Engine) Gazetteer() *gazetteer.Gazetteer { return e.gaz }

// Resolve xác định chi nhánh gần nhất cho một địa chỉ tự do.
// Không bao giờ trả lỗi: input rác chuẩn hóa về chuỗi rỗng và chảy xuống
// OutcomeMissingProvince. Branch list được lọc active phòng thủ lần nữa
// dù caller đã lọc trước.
func (e *Engine) Resolve(query string, branches []models.Branch) Outcome {
	start := time.Now()
	normalized := normalizer.Normalize(query)
	active := models.ActiveBranches(branches)

	outcome := e.resolve(normalized, active)

	e.logger.Debug("Resolve địa chỉ hoàn tất",
		zap.String("query", query),
		zap.String("normalized", normalized),
		zap.String("kind", string(outcome.Kind)),
		zap.String("province", outcome.Province),
		zap.String("method", string(outcome.Method)),
		zap.Int("score", outcome.Score),
		zap.Duration("duration", time.Since(start)))

	return outcome
}

func (e *Engine) resolve(normalized string, active []models.Branch) Outcome {
	// 1. Dò tỉnh (cascade ba tầng)
	det := e.detectProvince(normalized, active)
	if !det.found {
		return Outcome{
			Kind:   OutcomeMissingProvince,
			Reason: "Không nhận ra Tỉnh/Thành phố trong địa chỉ. Vui lòng ghi rõ Quận/Huyện, Tỉnh/Thành phố.",
		}
	}

	// 2. Lọc candidate theo tỉnh
	candidates := filterByProvince(active, det.province)
	if len(candidates) == 0 {
		return Outcome{
			Kind:       OutcomeRegionNotCovered,
			Province:   det.province,
			Method:     det.method,
			AliasKey:   det.aliasKey,
			Confidence: det.confidence,
			Reason:   "Khu vực " + det.province + " hiện chưa có kho phục vụ.",
		}
	}

	// 3. Một candidate duy nhất: chốt luôn, khỏi chấm điểm
	if len(candidates) == 1 {
		return Outcome{
			Kind:       OutcomeResolved,
			Branch:     &candidates[0],
			Score:      scoreSoleCandidate,
			Province:   det.province,
			Method:     det.method,
			AliasKey:   det.aliasKey,
			Confidence: det.confidence,
			ReasonCode: ReasonSoleBranch,
			Reason:     reasonText(ReasonSoleBranch, det.province),
		}
	}

	// 4. Chấm điểm và chọn
	best, score, code, found := e.scoreCandidates(normalized, det.province, candidates)
	if !found {
		// Không candidate nào có tín hiệu gì: nhường cho AI fallback
		return Outcome{
			Kind:       OutcomeNoDeterministicMatch,
			Province:   det.province,
			Method:     det.method,
			AliasKey:   det.aliasKey,
			Confidence: det.confidence,
		}
	}

	return Outcome{
		Kind:       OutcomeResolved,
		Branch:     best,
		Score:      score,
		Province:   det.province,
		Method:     det.method,
		AliasKey:   det.aliasKey,
		Confidence: det.confidence,
		ReasonCode: code,
		Reason:     reasonText(code, det.province),
	}
}
