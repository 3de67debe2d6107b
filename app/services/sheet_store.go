package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/branch-locator/app/models"
)

// Action của store từ xa. Store là một webhook kiểu Apps Script: GET trả
// toàn bộ danh sách chi nhánh, POST nhận {action, data}.
const (
	actionCreate    = "create"
	actionUpdate    = "update"
	actionDelete    = "delete"
	actionLogSearch = "log_search"
	actionGetLogs   = "get_logs"
)

// SheetStore client HTTP cho store chi nhánh từ xa.
type SheetStore struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewSheetStore tạo mới SheetStore
func NewSheetStore(baseURL string, timeout time.Duration, logger *zap.Logger) *SheetStore {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &SheetStore{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type sheetPayload struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

type sheetResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// FetchBranches lấy toàn bộ danh sách chi nhánh từ store.
// Store có thể trả mảng trực tiếp hoặc bọc trong {data: [...]}.
func (ss *SheetStore) FetchBranches(ctx context.Context) ([]models.Branch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ss.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("lỗi tạo request: %w", err)
	}

	resp, err := ss.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("không thể kết nối store chi nhánh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store chi nhánh trả về HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("lỗi đọc response: %w", err)
	}

	var branches []models.Branch
	if err := json.Unmarshal(body, &branches); err == nil {
		return branches, nil
	}

	var wrapped struct {
		Data []models.Branch `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("lỗi parse danh sách chi nhánh: %w", err)
	}
	return wrapped.Data, nil
}

// CreateBranch đồng bộ một chi nhánh mới lên store.
func (ss *SheetStore) CreateBranch(ctx context.Context, branch *models.Branch) error {
	_, err := ss.post(ctx, actionCreate, branch)
	return err
}

// UpdateBranch đồng bộ thay đổi của một chi nhánh lên store.
func (ss *SheetStore) UpdateBranch(ctx context.Context, branch *models.Branch) error {
	if branch.ID == "" {
		return fmt.Errorf("update thiếu branch ID")
	}
	_, err := ss.post(ctx, actionUpdate, branch)
	return err
}

// DeleteBranch xóa một chi nhánh trên store theo ID.
func (ss *SheetStore) DeleteBranch(ctx context.Context, id string) error {
	_, err := ss.post(ctx, actionDelete, map[string]string{"id": id})
	return err
}

// LogSearch đẩy một lượt tra cứu lên store. Lỗi chỉ log, không chặn flow.
func (ss *SheetStore) LogSearch(ctx context.Context, log models.SearchLog) {
	if _, err := ss.post(ctx, actionLogSearch, log); err != nil {
		ss.logger.Warn("Lỗi gửi search log lên store", zap.Error(err))
	}
}

// GetLogs lấy các lượt tra cứu gần nhất từ store.
func (ss *SheetStore) GetLogs(ctx context.Context, limit int) ([]models.SearchLog, error) {
	resp, err := ss.post(ctx, actionGetLogs, map[string]int{"limit": limit})
	if err != nil {
		return nil, err
	}

	var logs []models.SearchLog
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &logs); err != nil {
			return nil, fmt.Errorf("lỗi parse search logs: %w", err)
		}
	}
	return logs, nil
}

// post gửi một action lên store và kiểm tra status của response.
func (ss *SheetStore) post(ctx context.Context, action string, data interface{}) (*sheetResponse, error) {
	payload, err := json.Marshal(sheetPayload{Action: action, Data: data})
	if err != nil {
		return nil, fmt.Errorf("lỗi marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ss.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("lỗi tạo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ss.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("không thể kết nối store chi nhánh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store chi nhánh trả về HTTP %d cho action %s", resp.StatusCode, action)
	}

	var parsed sheetResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("lỗi parse response: %w", err)
	}
	if parsed.Status == "error" {
		return nil, fmt.Errorf("store trả lỗi cho action %s: %s", action, parsed.Message)
	}

	ss.logger.Debug("Đồng bộ store thành công", zap.String("action", action))
	return &parsed, nil
}
