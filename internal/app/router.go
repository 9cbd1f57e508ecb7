// internal/app/router.go
package app

import (
	assistantHandler "tedtam-service/internal/handlers/assistant"
	authHandler "tedtam-service/internal/handlers/auth"
	customerHandler "tedtam-service/internal/handlers/customer"
	insightsHandler "tedtam-service/internal/handlers/insights"
	wsHandler "tedtam-service/internal/handlers/websocket"
	"tedtam-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	CustomerHandler  *customerHandler.CustomerHandler
	InsightsHandler  *insightsHandler.InsightsHandler
	AssistantHandler *assistantHandler.AssistantHandler
	WSHandler        *wsHandler.WebSocketHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "ok",
			"version":    "1.0.0",
			"ws_clients": h.WSHandler.ClientCount(),
		})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.AuthMiddleware.Auth(), h.WSHandler.HandleConnection)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/register", h.AuthHandler.Register)
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.GET("/me", h.AuthHandler.GetMe)
	}

	// ==================== Customers ====================
	customers := api.Group("/customers")
	customers.Use(h.AuthMiddleware.Auth())
	{
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/:uid", h.CustomerHandler.GetCustomer)
		customers.POST("", h.CustomerHandler.CreateCustomer)
		customers.PUT("/:uid", h.CustomerHandler.UpdateCustomer)
		customers.DELETE("/:uid", h.CustomerHandler.DeleteCustomer)

		customers.POST("/import", h.CustomerHandler.ImportCustomers)
		customers.GET("/export", h.CustomerHandler.ExportCustomers)
		customers.GET("/template", h.CustomerHandler.DownloadTemplate)
	}

	// ==================== Derived Views ====================
	insights := api.Group("")
	insights.Use(h.AuthMiddleware.Auth())
	{
		insights.GET("/dashboard/stats", h.InsightsHandler.GetDashboard)
		insights.GET("/performance", h.InsightsHandler.GetPerformance)
		insights.GET("/wallet/summary", h.InsightsHandler.GetWallet)
		insights.POST("/mirror/refresh", h.InsightsHandler.RefreshMirror)
	}

	// ==================== Assistant ====================
	assistant := api.Group("/assistant")
	assistant.Use(h.AuthMiddleware.Auth())
	{
		assistant.POST("/message", h.AssistantHandler.SendMessage)
	}
}
