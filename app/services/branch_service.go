package services

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/branch-locator/app/models"
	"github.com/branch-locator/helpers/utils"
	"github.com/branch-locator/internal/search"
)

//go:embed data/branches.txt
var seedBranchData string

// Dòng seed thiếu tab thì tách bằng heuristic: cột quản lý bắt đầu bằng
// danh xưng hoặc vài tên riêng quen thuộc trong dữ liệu gốc.
var reSeedLine = regexp.MustCompile(`^(.+?)\s+((?:Chị|Anh|Cô|Chú|Thúy|Thu|Linh|Hoàng|Tổ|Kho|Nhà xe).+?)\s+(.+)$`)

// BranchService danh sách chi nhánh authoritative in-memory. Khởi động từ
// seed nhúng trong binary, sau đó refresh nền từ store từ xa; mọi thay đổi
// ghi xuyên qua store và search index.
type BranchService struct {
	mu       sync.RWMutex
	branches []models.Branch

	store  *SheetStore         // nil = chạy local, không đồng bộ
	index  *search.BranchIndex // nil = không có search index
	logger *zap.Logger
}

// NewBranchService tạo mới BranchService
func NewBranchService(store *SheetStore, index *search.BranchIndex, logger *zap.Logger) *BranchService {
	return &BranchService{
		store:  store,
		index:  index,
		logger: logger,
	}
}

// LoadSeed nạp danh sách chi nhánh từ dataset nhúng. Gọi một lần lúc khởi
// động để service phục vụ được ngay cả khi store từ xa không kết nối được.
func (bs *BranchService) LoadSeed() error {
	branches := parseSeedBranchData(seedBranchData)
	if len(branches) == 0 {
		return fmt.Errorf("seed chi nhánh rỗng")
	}

	bs.mu.Lock()
	bs.branches = branches
	bs.mu.Unlock()

	bs.logger.Info("Đã nạp seed chi nhánh", zap.Int("count", len(branches)))
	return nil
}

// parseSeedBranchData parse dữ liệu seed dạng tab-separated:
// tên <tab> quản lý <tab> địa chỉ, mỗi dòng một chi nhánh.
func parseSeedBranchData(raw string) []models.Branch {
	var branches []models.Branch

	for i, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			m := reSeedLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			parts = m[1:]
		}

		name := strings.TrimSpace(parts[0])
		manager := strings.TrimSpace(parts[1])
		address := strings.TrimSpace(parts[2])
		address = strings.TrimPrefix(strings.TrimSuffix(address, `"`), `"`)

		if name == "" || address == "" {
			continue
		}
		if manager == "" {
			manager = "Quản lý kho"
		}

		b := models.Branch{
			ID:             fmt.Sprintf("init-%d", i),
			Name:           name,
			Manager:        manager,
			Address:        address,
			HolidayHistory: []models.HolidayRecord{},
			IsActive:       true,
			UpdatedAt:      time.Now(),
		}
		b.RefreshSearchStr()
		branches = append(branches, b)
	}

	return branches
}

// RefreshFromStore thay danh sách in-memory bằng bản mới nhất từ store.
// Store trả danh sách rỗng thì giữ nguyên bản đang có.
func (bs *BranchService) RefreshFromStore(ctx context.Context) error {
	if bs.store == nil {
		return nil
	}

	fetched, err := bs.store.FetchBranches(ctx)
	if err != nil {
		return fmt.Errorf("refresh chi nhánh từ store thất bại: %w", err)
	}
	if len(fetched) == 0 {
		bs.logger.Warn("Store trả danh sách chi nhánh rỗng, giữ bản hiện tại")
		return nil
	}

	// Record cũ trên store có thể chưa có searchStr
	for i := range fetched {
		if fetched[i].SearchStr == "" {
			fetched[i].RefreshSearchStr()
		}
	}

	bs.mu.Lock()
	bs.branches = fetched
	bs.mu.Unlock()

	bs.logger.Info("Đã refresh chi nhánh từ store", zap.Int("count", len(fetched)))
	return nil
}

// StartBackgroundRefresh refresh định kỳ từ store cho tới khi ctx hủy.
func (bs *BranchService) StartBackgroundRefresh(ctx context.Context, interval time.Duration) {
	if bs.store == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := bs.RefreshFromStore(ctx); err != nil {
					bs.logger.Warn("Background refresh lỗi", zap.Error(err))
				}
			}
		}
	}()
}

// All trả về copy danh sách chi nhánh.
func (bs *BranchService) All() []models.Branch {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	out := make([]models.Branch, len(bs.branches))
	copy(out, bs.branches)
	return out
}

// Active trả về copy các chi nhánh đang hoạt động.
func (bs *BranchService) Active() []models.Branch {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	return models.ActiveBranches(bs.branches)
}

// Get tìm chi nhánh theo ID.
func (bs *BranchService) Get(id string) (models.Branch, bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	for _, b := range bs.branches {
		if b.ID == id {
			return b, true
		}
	}
	return models.Branch{}, false
}

// Create thêm chi nhánh mới, đồng bộ store và search index.
func (bs *BranchService) Create(ctx context.Context, branch *models.Branch) error {
	if branch.Name == "" || branch.Address == "" {
		return fmt.Errorf("chi nhánh thiếu tên hoặc địa chỉ")
	}

	if branch.ID == "" {
		branch.ID = utils.GenerateUUID()
	}
	if branch.HolidayHistory == nil {
		branch.HolidayHistory = []models.HolidayRecord{}
	}
	branch.UpdatedAt = time.Now()
	branch.RefreshSearchStr()

	bs.mu.Lock()
	bs.branches = append(bs.branches, *branch)
	bs.mu.Unlock()

	bs.syncUpsert(ctx, branch, true)
	return nil
}

// Update sửa chi nhánh, tính lại search string, đồng bộ store và index.
func (bs *BranchService) Update(ctx context.Context, branch *models.Branch) error {
	branch.UpdatedAt = time.Now()
	branch.RefreshSearchStr()

	bs.mu.Lock()
	found := false
	for i := range bs.branches {
		if bs.branches[i].ID == branch.ID {
			bs.branches[i] = *branch
			found = true
			break
		}
	}
	bs.mu.Unlock()

	if !found {
		return fmt.Errorf("không tìm thấy chi nhánh %s", branch.ID)
	}

	bs.syncUpsert(ctx, branch, false)
	return nil
}

// Delete xóa chi nhánh khỏi danh sách, store và index.
func (bs *BranchService) Delete(ctx context.Context, id string) error {
	bs.mu.Lock()
	found := false
	for i := range bs.branches {
		if bs.branches[i].ID == id {
			bs.branches = append(bs.branches[:i], bs.branches[i+1:]...)
			found = true
			break
		}
	}
	bs.mu.Unlock()

	if !found {
		return fmt.Errorf("không tìm thấy chi nhánh %s", id)
	}

	if bs.store != nil {
		if err := bs.store.DeleteBranch(ctx, id); err != nil {
			bs.logger.Warn("Lỗi xóa chi nhánh trên store", zap.Error(err), zap.String("id", id))
		}
	}
	if bs.index != nil {
		if err := bs.index.RemoveBranch(id); err != nil {
			bs.logger.Warn("Lỗi gỡ chi nhánh khỏi index", zap.Error(err), zap.String("id", id))
		}
	}
	return nil
}

// SetHoliday cập nhật lịch nghỉ của chi nhánh. Lịch đang bật bị thay thế
// được đẩy vào lịch sử để thống kê.
func (bs *BranchService) SetHoliday(ctx context.Context, id string, schedule models.HolidaySchedule) error {
	bs.mu.Lock()
	var updated *models.Branch
	for i := range bs.branches {
		if bs.branches[i].ID != id {
			continue
		}

		prev := bs.branches[i].HolidaySchedule
		if prev.IsEnabled {
			bs.branches[i].HolidayHistory = append(bs.branches[i].HolidayHistory, models.HolidayRecord{
				StartTime:  prev.StartTime,
				EndTime:    prev.EndTime,
				Reason:     prev.Reason,
				RecordedAt: time.Now(),
			})
		}
		bs.branches[i].HolidaySchedule = schedule
		bs.branches[i].UpdatedAt = time.Now()
		clone := bs.branches[i]
		updated = &clone
		break
	}
	bs.mu.Unlock()

	if updated == nil {
		return fmt.Errorf("không tìm thấy chi nhánh %s", id)
	}

	bs.syncUpsert(ctx, updated, false)
	return nil
}

// ReindexAll đẩy lại toàn bộ danh sách vào search index.
func (bs *BranchService) ReindexAll() error {
	if bs.index == nil {
		return nil
	}
	return bs.index.IndexBranches(bs.All())
}

// syncUpsert ghi xuyên một chi nhánh qua store và index. Lỗi đồng bộ chỉ
// log: danh sách in-memory vẫn là nguồn chân lý cho tra cứu.
func (bs *BranchService) syncUpsert(ctx context.Context, branch *models.Branch, created bool) {
	if bs.store != nil {
		var err error
		if created {
			err = bs.store.CreateBranch(ctx, branch)
		} else {
			err = bs.store.UpdateBranch(ctx, branch)
		}
		if err != nil {
			bs.logger.Warn("Lỗi đồng bộ chi nhánh lên store",
				zap.Error(err), zap.String("id", branch.ID))
		}
	}

	if bs.index != nil {
		if err := bs.index.IndexBranches([]models.Branch{*branch}); err != nil {
			bs.logger.Warn("Lỗi index chi nhánh", zap.Error(err), zap.String("id", branch.ID))
		}
	}
}
