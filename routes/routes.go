package routes

import (
	"net/http"

	"restaurant-order-api/handlers"
	"restaurant-order-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, tokens *middleware.JWTIssuer) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Restaurant Order API",
			"version": "1.0.0",
		})
	})

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.GET("/menu", h.GetMenu)
		public.GET("/state-machine", h.GetStateMachineInfo)

		public.POST("/orders", h.PlaceOrder)
		public.GET("/orders/:id", h.GetOrderStatus)
		public.GET("/orders/:id/qrcode", h.GetOrderQRCode)

		public.POST("/admin/login", h.Login)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminRequired(tokens))
	{
		admin.GET("/orders", h.AdminGetAllOrders)
		admin.GET("/orders/:id", h.AdminGetOrder)
		admin.PATCH("/orders/:id/status", h.AdminSetOrderStatus)

		admin.GET("/menu", h.AdminGetMenu)
		admin.POST("/menu", h.AddMenuItem)
		admin.PUT("/menu/:id", h.UpdateMenuItem)

		admin.GET("/feed", h.AdminOrderFeed)
	}
}
