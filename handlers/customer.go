package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"restaurant-order-api/feed"
	"restaurant-order-api/models"
	"restaurant-order-api/service"

	"github.com/gin-gonic/gin"
)

// PlaceOrder prices the cart server-side and records the order
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req service.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, h.decodeError(req, err), "Invalid request body")
		return
	}

	receipt, err := h.Orders.SubmitOrder(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Internal server error processing order")
		return
	}

	h.publish(feed.Event{
		Type:        feed.EventOrderCreated,
		OrderID:     receipt.OrderID,
		Status:      models.StatusPending,
		TotalAmount: receipt.TotalAmount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"orderId":     receipt.OrderID,
		"totalAmount": receipt.TotalAmount,
	})
}

// decodeError turns a body decode failure into a ValidationError. A mistyped
// field leaves the rest of req decoded, so the schema still reports the first
// failing field in declaration order.
func (h *Handler) decodeError(req service.OrderRequest, err error) error {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return &service.ValidationError{Field: "body", Message: "Invalid request body"}
	}
	if verr := h.Orders.ValidateOrder(req); verr != nil {
		return verr
	}
	field := typeErr.Field
	if field == "" {
		field = "body"
	}
	return &service.ValidationError{Field: field, Message: "Invalid value type"}
}
