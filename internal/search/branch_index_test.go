package search

import (
	"testing"

	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"

	"github.com/branch-locator/app/models"
)

func TestBranchDocFrom(t *testing.T) {
	b := models.Branch{
		ID:          "cn-q7",
		Name:        "CN Quận 7",
		Manager:     "Chị Hoa",
		Address:     "Nguyễn Thị Thập, Quận 7, TP.HCM",
		PhoneNumber: "0901234567",
		Note:        "kho chính",
		IsActive:    true,
	}

	doc := BranchDocFrom(b)

	assert.Equal(t, "cn-q7", doc.ID)
	assert.Equal(t, "CN Quận 7", doc.Name)
	assert.Equal(t, "Chị Hoa", doc.Manager)
	assert.True(t, doc.IsActive)
}

func TestParseSearchResults(t *testing.T) {
	resp := &meilisearch.SearchResponse{
		Hits: []interface{}{
			map[string]interface{}{
				"id":        "b1",
				"name":      "CN Huế",
				"manager":   "Chị Hoàng Lan",
				"address":   "12/1 Kiệt 245 Phan Bội Châu, TP. Huế",
				"is_active": true,
			},
			"garbage entry",
			map[string]interface{}{
				"id":        "b2",
				"name":      "CN Vinh",
				"is_active": false,
			},
		},
	}

	docs := parseSearchResults(resp)

	assert.Len(t, docs, 2)
	assert.Equal(t, "b1", docs[0].ID)
	assert.True(t, docs[0].IsActive)
	assert.Equal(t, "CN Vinh", docs[1].Name)
	assert.False(t, docs[1].IsActive)
}
