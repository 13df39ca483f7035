package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.InventoryHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/status", handler.Status)
		api.GET("/items", handler.Items)
		api.GET("/stock", handler.Stock)
		api.GET("/resources", handler.Resources)
		api.GET("/locations", handler.Locations)

		api.GET("/selection", handler.Selection)
		api.POST("/selection/toggle", handler.ToggleSelection)
		api.POST("/selection/quantity", handler.SetQuantity)
		api.DELETE("/selection", handler.ClearSelection)

		api.GET("/validate", handler.Validate)
		api.POST("/transfer", handler.SubmitTransfer)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
