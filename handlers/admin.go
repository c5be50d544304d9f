package handlers

import (
	"log/slog"
	"net/http"

	"restaurant-order-api/feed"
	"restaurant-order-api/middleware"
	"restaurant-order-api/models"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns every order newest first, plus a dashboard summary
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	orders, err := h.Orders.ListOrders(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch orders")
		return
	}

	summary := map[string]int{}
	var revenue int64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			revenue += o.TotalAmount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": revenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminGetOrder returns one order with its lines
func (h *Handler) AdminGetOrder(c *gin.Context) {
	order, err := h.Orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, order)
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// AdminSetOrderStatus overwrites an order's status
func (h *Handler) AdminSetOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID := c.Param("id")
	if err := h.Orders.SetOrderStatus(c.Request.Context(), orderID, req.Status); err != nil {
		h.respondError(c, err, "Failed to update status")
		return
	}

	h.Log.Info("order status updated by admin",
		slog.String("order_id", orderID),
		slog.String("status", string(req.Status)),
		slog.String("admin", middleware.GetUsername(c)),
	)
	h.publish(feed.Event{
		Type:    feed.EventOrderStatusChanged,
		OrderID: orderID,
		Status:  req.Status,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminOrderFeed streams order events over a websocket
func (h *Handler) AdminOrderFeed(c *gin.Context) {
	if h.Feed == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live feed disabled"})
		return
	}
	h.Feed.ServeWS(c.Writer, c.Request)
}
