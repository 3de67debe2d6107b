package external

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/branch-locator/app/models"
)

// AISuggestion kết quả chọn kho từ model khi local matching bất lực.
type AISuggestion struct {
	Branch            *models.Branch
	EstimatedDistance string
	Reasoning         string
}

// BranchLocator fallback chọn kho gần nhất cho một địa chỉ khi engine
// deterministic không chấm được điểm. Candidates đã được lọc active.
type BranchLocator interface {
	Locate(ctx context.Context, query string, candidates []models.Branch) (*AISuggestion, error)
}

// OpenAIConfig cấu hình cho OpenAILocator
type OpenAIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

const defaultModel = "gpt-4o-mini"

const defaultTimeout = 12 * time.Second

// OpenAILocator triển khai BranchLocator trên Chat Completions, bọc circuit
// breaker để một đợt lỗi upstream không kéo sập latency của toàn bộ lookup.
type OpenAILocator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewOpenAILocator tạo mới OpenAILocator
func NewOpenAILocator(cfg OpenAIConfig, logger *zap.Logger) *OpenAILocator {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	settings := gobreaker.Settings{
		Name:     "ai-branch-locator",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker đổi trạng thái",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &OpenAILocator{
		client:  openai.NewClient(cfg.APIKey),
		model:   model,
		timeout: timeout,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// aiResponse schema JSON model phải trả về.
type aiResponse struct {
	SelectedBranchID  string `json:"selectedBranchId"`
	EstimatedDistance string `json:"estimatedDistance"`
	Reasoning         string `json:"reasoning"`
}

// Locate hỏi model chọn kho gần nhất. Chi nhánh được đánh số thứ tự ngắn
// (1, 2, 3...) thay vì ID gốc để model không chép sai ID dài.
func (l *OpenAILocator) Locate(ctx context.Context, query string, candidates []models.Branch) (*AISuggestion, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("không có chi nhánh nào để đề xuất")
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	prompt := l.buildPrompt(query, candidates)

	start := time.Now()
	raw, err := l.breaker.Execute(func() (interface{}, error) {
		resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: l.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("model không trả về lựa chọn nào")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return nil, fmt.Errorf("gọi AI fallback thất bại: %w", err)
	}

	var parsed aiResponse
	if err := json.Unmarshal([]byte(cleanJSONString(raw.(string))), &parsed); err != nil {
		return nil, fmt.Errorf("parse JSON từ model thất bại: %w", err)
	}

	idx, err := strconv.Atoi(strings.TrimSpace(parsed.SelectedBranchID))
	if err != nil || idx < 1 || idx > len(candidates) {
		return nil, fmt.Errorf("model trả về ID không hợp lệ: %q", parsed.SelectedBranchID)
	}

	l.logger.Debug("AI fallback chọn xong chi nhánh",
		zap.String("query", query),
		zap.String("branch", candidates[idx-1].Name),
		zap.Duration("duration", time.Since(start)))

	reasoning := parsed.Reasoning
	if reasoning == "" {
		reasoning = "Đề xuất bởi AI."
	}
	return &AISuggestion{
		Branch:            &candidates[idx-1],
		EstimatedDistance: parsed.EstimatedDistance,
		Reasoning:         reasoning,
	}, nil
}

func (l *OpenAILocator) buildPrompt(query string, candidates []models.Branch) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Find the closest warehouse for: %q\n", query)

	// Khi build với libpostal, bổ sung các thành phần đã parse để model đỡ
	// phải tự đoán cấu trúc địa chỉ tiếng Việt.
	if comps := ParsePostal(query); comps.Road != "" || comps.City != "" {
		fmt.Fprintf(&sb, "Parsed components: house=%q road=%q ward=%q city=%q province=%q\n",
			comps.House, comps.Road, comps.Ward, comps.City, comps.Province)
	}

	sb.WriteString("List:\n")
	for i, b := range candidates {
		fmt.Fprintf(&sb, "ID: %d | Name: %s | Address: %s\n", i+1, b.Name, b.Address)
	}
	sb.WriteString(`
Instructions:
1. Identify the location of the user address.
2. Identify the location of each warehouse.
3. Calculate approximated driving distance.
4. Select the warehouse with the SHORTEST distance.
5. VERY IMPORTANT: If the user provides a specific street address, prioritize physical proximity over name matching.

Return JSON:
{
  "selectedBranchId": "string (MUST be the exact ID number from the list above, e.g. '1', '10')",
  "estimatedDistance": "string",
  "reasoning": "string (Vietnamese)"
}
`)
	return sb.String()
}

// cleanJSONString gỡ code fence markdown và phần text thừa quanh object
// JSON. Model thỉnh thoảng vẫn bọc ```json dù đã yêu cầu JSON mode.
func cleanJSONString(s string) string {
	if s == "" {
		return "{}"
	}
	cleaned := strings.ReplaceAll(s, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	if first >= 0 && last > first {
		cleaned = cleaned[first : last+1]
	}
	return cleaned
}
