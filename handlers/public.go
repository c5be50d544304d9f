package handlers

import (
	"net/http"

	"restaurant-order-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetMenu returns the items customers can order from
func (h *Handler) GetMenu(c *gin.Context) {
	items, err := h.Catalog.ListAvailable(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch menu")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetOrderStatus is the customer polling endpoint. It only ever exposes status,
// total and creation time.
func (h *Handler) GetOrderStatus(c *gin.Context) {
	view, err := h.Orders.GetOrderStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch order status")
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetOrderQRCode returns a PNG linking to the order's tracking page
func (h *Handler) GetOrderQRCode(c *gin.Context) {
	view, err := h.Orders.GetOrderStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch order")
		return
	}
	png, err := h.QR.Generate(view.ID)
	if err != nil {
		h.respondError(c, err, "Failed to generate QR code")
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

// GetStateMachineInfo returns the order lifecycle for documentation
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": statemachine.TerminalStates(),
		"description":     "Delivery order lifecycle. Cancellation is allowed from any non-terminal state.",
	})
}
