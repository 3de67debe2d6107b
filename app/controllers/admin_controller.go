package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/branch-locator/app/models"
	"github.com/branch-locator/app/requests"
	"github.com/branch-locator/app/responses"
	"github.com/branch-locator/app/services"
	"github.com/branch-locator/internal/gazetteer"
	"github.com/branch-locator/internal/search"
	"go.uber.org/zap"
)

// AdminController controller xử lý các request quản trị kho
type AdminController struct {
	branchService  *services.BranchService
	locatorService *services.LocatorService
	index          *search.BranchIndex // nil khi không bật Meilisearch
	store          *services.SheetStore
	gaz            *gazetteer.Gazetteer
	startTime      time.Time
	logger         *zap.Logger
}

// NewAdminController tạo mới AdminController
func NewAdminController(branchService *services.BranchService, locatorService *services.LocatorService, index *search.BranchIndex, store *services.SheetStore, gaz *gazetteer.Gazetteer, logger *zap.Logger) *AdminController {
	return &AdminController{
		branchService:  branchService,
		locatorService: locatorService,
		index:          index,
		store:          store,
		gaz:            gaz,
		startTime:      time.Now(),
		logger:         logger,
	}
}

// ListBranches lấy toàn bộ danh sách kho
func (ac *AdminController) ListBranches(c *gin.Context) {
	branches := ac.branchService.All()
	active := 0
	for _, b := range branches {
		if b.IsActive {
			active++
		}
	}

	c.JSON(http.StatusOK, responses.BranchListResponse{
		Branches: branches,
		Total:    len(branches),
		Active:   active,
	})
}

// CreateBranch tạo kho mới
func (ac *AdminController) CreateBranch(c *gin.Context) {
	var req requests.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ac.badRequest(c, err)
		return
	}

	branch := models.Branch{
		Name:        req.Name,
		Manager:     req.Manager,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Note:        req.Note,
		IsActive:    true,
	}

	if err := ac.branchService.Create(c.Request.Context(), &branch); err != nil {
		ac.logger.Error("Lỗi tạo kho", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "CREATE_ERROR",
			Message:   "Lỗi tạo kho: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusCreated, responses.SuccessResponse{
		Success:   true,
		Message:   "Tạo kho thành công",
		Data:      branch,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// UpdateBranch cập nhật thông tin kho
func (ac *AdminController) UpdateBranch(c *gin.Context) {
	id := c.Param("id")

	current, ok := ac.branchService.Get(id)
	if !ok {
		ac.notFound(c, id)
		return
	}

	var req requests.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ac.badRequest(c, err)
		return
	}

	current.Name = req.Name
	current.Manager = req.Manager
	current.Address = req.Address
	current.PhoneNumber = req.PhoneNumber
	current.Note = req.Note
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	if err := ac.branchService.Update(c.Request.Context(), &current); err != nil {
		ac.logger.Error("Lỗi cập nhật kho", zap.Error(err), zap.String("id", id))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "UPDATE_ERROR",
			Message:   "Lỗi cập nhật kho: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "Cập nhật kho thành công",
		Data:      current,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// DeleteBranch xoá kho
func (ac *AdminController) DeleteBranch(c *gin.Context) {
	id := c.Param("id")

	if err := ac.branchService.Delete(c.Request.Context(), id); err != nil {
		ac.notFound(c, id)
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "Xoá kho thành công",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// SetHoliday cập nhật lịch nghỉ của kho
func (ac *AdminController) SetHoliday(c *gin.Context) {
	id := c.Param("id")

	var req requests.SetHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ac.badRequest(c, err)
		return
	}

	if err := ac.branchService.SetHoliday(c.Request.Context(), id, req.Schedule); err != nil {
		ac.notFound(c, id)
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "Cập nhật lịch nghỉ thành công",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// SearchBranches tìm kiếm kho theo từ khoá qua Meilisearch
func (ac *AdminController) SearchBranches(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "MISSING_QUERY",
			Message:   "Thiếu tham số q",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	if ac.index == nil {
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Error:     "SEARCH_UNAVAILABLE",
			Message:   "Tìm kiếm kho chưa được bật",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	limit := int64(20)
	if l, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && l > 0 {
		limit = l
	}

	startTime := time.Now()

	docs, err := ac.index.Search(c.Request.Context(), query, limit, false)
	if err != nil {
		ac.logger.Error("Lỗi tìm kiếm kho", zap.Error(err), zap.String("query", query))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "SEARCH_ERROR",
			Message:   "Lỗi tìm kiếm kho: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	// Index chỉ giữ bản chiếu, bản ghi đầy đủ lấy từ danh sách trong bộ nhớ
	branches := make([]models.Branch, 0, len(docs))
	for _, doc := range docs {
		if b, ok := ac.branchService.Get(doc.ID); ok {
			branches = append(branches, b)
		}
	}

	c.JSON(http.StatusOK, responses.BranchSearchResponse{
		Branches:         branches,
		Query:            query,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// ReindexBranches đẩy lại toàn bộ kho vào Meilisearch
func (ac *AdminController) ReindexBranches(c *gin.Context) {
	startTime := time.Now()

	if err := ac.branchService.ReindexAll(); err != nil {
		ac.logger.Error("Lỗi reindex kho", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "REINDEX_ERROR",
			Message:   "Lỗi reindex kho: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	processingTime := time.Since(startTime)
	ac.logger.Info("Reindex kho thành công", zap.Duration("duration", processingTime))

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Reindex kho thành công",
		Data: map[string]interface{}{
			"processing_time_ms": processingTime.Milliseconds(),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// InvalidateCache dọn cache tra cứu theo phiên bản gazetteer hiện tại
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	startTime := time.Now()

	if err := ac.locatorService.InvalidateCache(c.Request.Context()); err != nil {
		ac.logger.Error("Lỗi invalidate cache", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "INVALIDATE_ERROR",
			Message:   "Lỗi invalidate cache: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	processingTime := time.Since(startTime)
	ac.logger.Info("Invalidate cache thành công",
		zap.String("version", ac.gaz.Version()),
		zap.Duration("duration", processingTime))

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Invalidate cache thành công",
		Data: map[string]interface{}{
			"gazetteer_version":  ac.gaz.Version(),
			"processing_time_ms": processingTime.Milliseconds(),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// GetStats lấy thống kê hệ thống
func (ac *AdminController) GetStats(c *gin.Context) {
	cacheStats, err := ac.locatorService.CacheStatsSnapshot(c.Request.Context())
	if err != nil {
		ac.logger.Warn("Lỗi lấy cache stats", zap.Error(err))
		cacheStats = &services.CacheStats{}
	}

	branches := ac.branchService.All()
	active := 0
	for _, b := range branches {
		if b.IsActive {
			active++
		}
	}

	c.JSON(http.StatusOK, responses.StatsResponse{
		CacheStats:       cacheStats,
		TotalBranches:    len(branches),
		ActiveBranches:   active,
		GazetteerVersion: ac.gaz.Version(),
		ProvinceCount:    len(ac.gaz.ProvinceNames()),
		UptimeSeconds:    int64(time.Since(ac.startTime).Seconds()),
	})
}

// GetLogs lấy lịch sử tra cứu từ sheet store
func (ac *AdminController) GetLogs(c *gin.Context) {
	if ac.store == nil {
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Error:     "LOGS_UNAVAILABLE",
			Message:   "Lịch sử tra cứu chưa được bật",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	limit := 100
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}

	logs, err := ac.store.GetLogs(c.Request.Context(), limit)
	if err != nil {
		ac.logger.Error("Lỗi lấy lịch sử tra cứu", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "LOGS_ERROR",
			Message:   "Lỗi lấy lịch sử tra cứu: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "Lấy lịch sử thành công",
		Data:      logs,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (ac *AdminController) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, responses.ErrorResponse{
		Error:     "INVALID_REQUEST",
		Message:   "Request không hợp lệ: " + err.Error(),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (ac *AdminController) notFound(c *gin.Context, id string) {
	c.JSON(http.StatusNotFound, responses.ErrorResponse{
		Error:     "BRANCH_NOT_FOUND",
		Message:   "Không tìm thấy kho: " + id,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
