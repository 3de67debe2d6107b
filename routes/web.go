package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	// Web routes group
	web := router.Group("/")
	{
		// Home page
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Branch Locator Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		// API documentation
		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Branch Locator API v1",
				"endpoints": map[string]string{
					"locate":   "POST /v1/branches/locate",
					"branches": "GET /v1/branches",
					"admin":    "GET|POST|PUT|DELETE /v1/admin/branches",
					"search":   "GET /v1/admin/branches/search",
					"stats":    "GET /v1/admin/stats",
					"health":   "GET /v1/health",
				},
			})
		})

		// Status page
		web.GET("/status", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "running",
				"service": "Branch Locator",
			})
		})
	}
}
