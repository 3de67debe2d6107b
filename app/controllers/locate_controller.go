package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/branch-locator/app/requests"
	"github.com/branch-locator/app/responses"
	"github.com/branch-locator/app/services"
	"github.com/branch-locator/internal/resolver"
	"go.uber.org/zap"
)

// LocateController controller xử lý các request tra cứu kho
type LocateController struct {
	locatorService *services.LocatorService
	branchService  *services.BranchService
	startTime      time.Time
	logger         *zap.Logger
}

// NewLocateController tạo mới LocateController
func NewLocateController(locatorService *services.LocatorService, branchService *services.BranchService, logger *zap.Logger) *LocateController {
	return &LocateController{
		locatorService: locatorService,
		branchService:  branchService,
		startTime:      time.Now(),
		logger:         logger,
	}
}

// LocateBranch tra cứu kho gần nhất cho một địa chỉ tự do
func (lc *LocateController) LocateBranch(c *gin.Context) {
	var req requests.LocateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   "Request không hợp lệ: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	startTime := time.Now()

	result, cacheHit, err := lc.locatorService.LocateDetailed(c.Request.Context(), req.Address)
	if err != nil {
		lc.respondLocateError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.LocateBranchResponse{
		Result:           *result,
		GazetteerVersion: lc.locatorService.GazetteerVersion(),
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		CacheHit:         cacheHit,
	})
}

// ListBranches trả về danh sách kho hiện tại
func (lc *LocateController) ListBranches(c *gin.Context) {
	branches := lc.branchService.All()
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

// HealthCheck kiểm tra sức khỏe service
func (lc *LocateController) HealthCheck(c *gin.Context) {
	uptime := time.Since(lc.startTime)

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    uptime.String(),
		Version:   "1.0.0",
		Services: map[string]string{
			"locator":  "healthy",
			"branches": "healthy",
			"cache":    "healthy",
		},
	})
}

// respondLocateError ánh xạ lỗi tra cứu sang HTTP status tương ứng
func (lc *LocateController) respondLocateError(c *gin.Context, err error) {
	var locErr *services.LocateError
	if !errors.As(err, &locErr) {
		lc.logger.Error("Lỗi tra cứu kho", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "LOCATE_ERROR",
			Message:   "Lỗi tra cứu kho: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	status := http.StatusNotFound
	code := "NO_MATCH"
	switch locErr.Kind {
	case resolver.OutcomeMissingProvince:
		status = http.StatusUnprocessableEntity
		code = "MISSING_PROVINCE"
	case resolver.OutcomeRegionNotCovered:
		status = http.StatusNotFound
		code = "REGION_NOT_COVERED"
	}

	c.JSON(status, responses.ErrorResponse{
		Error:     code,
		Message:   locErr.Message,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
