package external

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/branch-locator/app/models"
)

func TestCleanJSONString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty", "", "{}"},
		{"Plain_JSON", `{"selectedBranchId":"1"}`, `{"selectedBranchId":"1"}`},
		{"Markdown_Fence", "```json\n{\"selectedBranchId\":\"2\"}\n```", `{"selectedBranchId":"2"}`},
		{"Surrounding_Text", "Here is the result: {\"a\":1} hope it helps", `{"a":1}`},
		{"Fence_Without_Lang", "```\n{\"a\":1}\n```", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSONString(tt.input))
		})
	}
}

func TestBuildPrompt_ShortIDs(t *testing.T) {
	l := NewOpenAILocator(OpenAIConfig{APIKey: "test"}, zap.NewNop())
	candidates := []models.Branch{
		{ID: "branch-abc-123", Name: "Kho Quận 7", Address: "Nguyễn Thị Thập, Quận 7, TP.HCM"},
		{ID: "branch-def-456", Name: "Kho Thủ Đức", Address: "Võ Văn Ngân, Thủ Đức, TP.HCM"},
	}

	prompt := l.buildPrompt("giao về quận 7", candidates)

	assert.Contains(t, prompt, "ID: 1 | Name: Kho Quận 7")
	assert.Contains(t, prompt, "ID: 2 | Name: Kho Thủ Đức")
	// ID gốc không được lộ ra prompt, model chỉ thấy số thứ tự
	assert.NotContains(t, prompt, "branch-abc-123")
	assert.True(t, strings.Contains(prompt, "selectedBranchId"))
}

func TestLocate_NoCandidates(t *testing.T) {
	l := NewOpenAILocator(OpenAIConfig{APIKey: "test"}, zap.NewNop())
	_, err := l.Locate(context.Background(), "giao về quận 7", nil)
	assert.Error(t, err)
}
