package routes

import (
	"github.com/branch-locator/app/controllers"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, locateController *controllers.LocateController, adminController *controllers.AdminController) {
	// API v1 group
	v1 := router.Group("/v1")
	{
		// Branch lookup routes
		branches := v1.Group("/branches")
		{
			branches.POST("/locate", locateController.LocateBranch)
			branches.GET("", locateController.ListBranches)
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.GET("/branches", adminController.ListBranches)
			admin.POST("/branches", adminController.CreateBranch)
			admin.PUT("/branches/:id", adminController.UpdateBranch)
			admin.DELETE("/branches/:id", adminController.DeleteBranch)
			admin.POST("/branches/:id/holiday", adminController.SetHoliday)
			admin.GET("/branches/search", adminController.SearchBranches)
			admin.POST("/branches/reindex", adminController.ReindexBranches)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
			admin.GET("/stats", adminController.GetStats)
			admin.GET("/logs", adminController.GetLogs)
		}

		// Health check route
		v1.GET("/health", locateController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, locateController *controllers.LocateController) {
	// Root health check
	router.GET("/health", locateController.HealthCheck)

	// Readiness check
	router.GET("/ready", locateController.HealthCheck)

	// Liveness check
	router.GET("/live", locateController.HealthCheck)
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, locateController *controllers.LocateController, adminController *controllers.AdminController) {
	// Thiết lập middleware
	setupMiddleware(router)

	// Thiết lập các loại routes
	SetupWebRoutes(router)
	SetupHealthRoutes(router, locateController)
	SetupAPIRoutes(router, locateController, adminController)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware thiết lập middleware cho router
func setupMiddleware(router *gin.Engine) {
	// Recovery middleware
	router.Use(gin.Recovery())

	// Logger middleware
	router.Use(gin.Logger())
}
