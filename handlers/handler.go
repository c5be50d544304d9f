package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"restaurant-order-api/feed"
	"restaurant-order-api/middleware"
	"restaurant-order-api/service"

	"github.com/gin-gonic/gin"
)

// Handler wires HTTP requests to the order engine, catalog and admin gate.
type Handler struct {
	Orders  *service.OrderEngine
	Catalog *service.CatalogService
	Gate    *service.AdminGate
	QR      service.QRGenerator
	Feed    *feed.Hub
	Log     *slog.Logger
}

// respondError maps service errors to status codes. Store failures are logged
// in full and reported to the caller without detail.
func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	var (
		validationErr *service.ValidationError
		referenceErr  *service.ReferenceError
		notFoundErr   *service.NotFoundError
		transitionErr *service.TransitionError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.As(err, &referenceErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": referenceErr.Error(), "menu_item_id": referenceErr.MenuItemID})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(notFoundErr)})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Invalid state transition",
			"current_status": transitionErr.From,
			"requested":      transitionErr.To,
			"reason":         transitionErr.Reason,
		})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	default:
		h.Log.Error(fallback,
			slog.String("request_id", middleware.RequestID(c)),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func notFoundMessage(err *service.NotFoundError) string {
	switch err.Entity {
	case "order":
		return "Order not found"
	case "menu item":
		return "Item not found"
	default:
		return "Not found"
	}
}

func (h *Handler) publish(ev feed.Event) {
	if h.Feed != nil {
		h.Feed.Publish(ev)
	}
}
