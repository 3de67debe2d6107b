package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"github.com/branch-locator/app/models"
)

// BranchIndex index Meilisearch phục vụ tìm kiếm text cho trang quản trị
// chi nhánh. Engine resolve không đi qua đây: nó chạy thuần in-memory.
type BranchIndex struct {
	client    meilisearch.ServiceManager
	logger    *zap.Logger
	indexName string
	timeout   time.Duration
}

// IndexConfig cấu hình cho Meilisearch
type IndexConfig struct {
	Host      string
	APIKey    string
	IndexName string
	Timeout   time.Duration
}

// BranchDoc document trong index, phẳng hóa từ models.Branch.
type BranchDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Manager     string `json:"manager"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Note        string `json:"note"`
	IsActive    bool   `json:"is_active"`
}

// NewBranchIndex tạo mới BranchIndex với Meilisearch client
func NewBranchIndex(config IndexConfig, logger *zap.Logger) (*BranchIndex, error) {
	client := meilisearch.New(config.Host, meilisearch.WithAPIKey(config.APIKey))

	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Meilisearch: %w", err)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &BranchIndex{
		client:    client,
		logger:    logger,
		indexName: config.IndexName,
		timeout:   timeout,
	}, nil
}

// EnsureSettings khai báo searchable/filterable attributes cho index.
func (bi *BranchIndex) EnsureSettings() error {
	index := bi.client.Index(bi.indexName)

	_, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"name", "manager", "address", "phone_number", "note"},
		FilterableAttributes: []string{"is_active"},
	})
	if err != nil {
		return fmt.Errorf("lỗi cập nhật settings index: %w", err)
	}
	return nil
}

// IndexBranches đẩy danh sách chi nhánh vào index (upsert theo id).
func (bi *BranchIndex) IndexBranches(branches []models.Branch) error {
	docs := make([]BranchDoc, 0, len(branches))
	for _, b := range branches {
		docs = append(docs, BranchDocFrom(b))
	}

	index := bi.client.Index(bi.indexName)
	if _, err := index.AddDocuments(docs, "id"); err != nil {
		return fmt.Errorf("lỗi index chi nhánh: %w", err)
	}

	bi.logger.Debug("Đã đẩy chi nhánh vào Meilisearch", zap.Int("count", len(docs)))
	return nil
}

// RemoveBranch gỡ một chi nhánh khỏi index.
func (bi *BranchIndex) RemoveBranch(id string) error {
	index := bi.client.Index(bi.indexName)
	if _, err := index.DeleteDocument(id); err != nil {
		return fmt.Errorf("lỗi xóa chi nhánh khỏi index: %w", err)
	}
	return nil
}

// Search tìm chi nhánh theo text tự do, tùy chọn chỉ lấy chi nhánh active.
func (bi *BranchIndex) Search(ctx context.Context, query string, limit int64, onlyActive bool) ([]BranchDoc, error) {
	if query == "" {
		return nil, errors.New("query không được để trống")
	}

	_, cancel := context.WithTimeout(ctx, bi.timeout)
	defer cancel()

	searchReq := &meilisearch.SearchRequest{
		Limit: limit,
	}
	if onlyActive {
		searchReq.Filter = "is_active = true"
	}

	index := bi.client.Index(bi.indexName)
	result, err := index.Search(query, searchReq)
	if err != nil {
		return nil, fmt.Errorf("lỗi tìm kiếm Meilisearch: %w", err)
	}

	return parseSearchResults(result), nil
}

// BranchDocFrom phẳng hóa một Branch thành document.
func BranchDocFrom(b models.Branch) BranchDoc {
	return BranchDoc{
		ID:          b.ID,
		Name:        b.Name,
		Manager:     b.Manager,
		Address:     b.Address,
		PhoneNumber: b.PhoneNumber,
		Note:        b.Note,
		IsActive:    b.IsActive,
	}
}

// parseSearchResults parse kết quả từ Meilisearch thành BranchDoc
func parseSearchResults(result *meilisearch.SearchResponse) []BranchDoc {
	var docs []BranchDoc

	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}

		doc := BranchDoc{}
		if id, ok := hitMap["id"].(string); ok {
			doc.ID = id
		}
		if name, ok := hitMap["name"].(string); ok {
			doc.Name = name
		}
		if manager, ok := hitMap["manager"].(string); ok {
			doc.Manager = manager
		}
		if address, ok := hitMap["address"].(string); ok {
			doc.Address = address
		}
		if phone, ok := hitMap["phone_number"].(string); ok {
			doc.PhoneNumber = phone
		}
		if note, ok := hitMap["note"].(string); ok {
			doc.Note = note
		}
		if active, ok := hitMap["is_active"].(bool); ok {
			doc.IsActive = active
		}

		docs = append(docs, doc)
	}

	return docs
}
