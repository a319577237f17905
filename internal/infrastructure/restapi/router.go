package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(dashboardHandler *DashboardHandler, zapLogger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	// Группа для API v1
	v1 := router.Group("/api/v1")
	{
		// Статический маршрут имеет приоритет над :walletAddress.
		v1.GET("/dashboard/failed", dashboardHandler.GetFailedWalletsHandler)
		v1.GET("/dashboard/:walletAddress", dashboardHandler.GetDashboardHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
