package resolver

import "github.com/branch-locator/app/models"

// OutcomeKind enum cho kết quả resolve
type OutcomeKind string

const (
	OutcomeResolved             OutcomeKind = "resolved"
	OutcomeMissingProvince      OutcomeKind = "missing_province"
	OutcomeRegionNotCovered     OutcomeKind = "region_not_covered"
	OutcomeNoDeterministicMatch OutcomeKind = "no_deterministic_match"
)

// DetectionMethod enum cho cách xác định được tỉnh
type DetectionMethod string

const (
	MethodExact     DetectionMethod = "exact"
	MethodFuzzy     DetectionMethod = "fuzzy"
	MethodInference DetectionMethod = "inference"
)

// ReasonCode enum lý do chọn chi nhánh
type ReasonCode string

const (
	ReasonSameDistrict        ReasonCode = "same_district"
	ReasonNeighboringDistrict ReasonCode = "neighboring_district"
	ReasonGenericMatch        ReasonCode = "generic_match"
	ReasonSoleBranch          ReasonCode = "sole_branch_in_province"
)

// Outcome kết quả resolve một địa chỉ. Tạo mới mỗi lần gọi, không mutate.
// Branch/Score/ReasonCode chỉ có nghĩa khi Kind == OutcomeResolved;
// Province và Method có nghĩa với mọi Kind trừ OutcomeMissingProvince.
type Outcome struct {
	Kind       OutcomeKind     `json:"kind"`
	Branch     *models.Branch  `json:"branch,omitempty"`
	Score      int             `json:"score,omitempty"`
	Province   string          `json:"province,omitempty"`
	Method     DetectionMethod `json:"method,omitempty"`
	AliasKey   string          `json:"alias_key,omitempty"` // từ khóa alias đã khớp (nếu có)
	Confidence float64         `json:"confidence,omitempty"`
	ReasonCode ReasonCode      `json:"reason_code,omitempty"`
	Reason     string          `json:"reason,omitempty"` // diễn giải tiếng Việt cho người dùng
}

// IsResolved tiện kiểm tra nhanh.
func (o Outcome) IsResolved() bool { return o.Kind == OutcomeResolved }
