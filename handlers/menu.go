package handlers

import (
	"net/http"
	"strconv"

	"restaurant-order-api/service"

	"github.com/gin-gonic/gin"
)

// AdminGetMenu returns every menu item, including hidden ones
func (h *Handler) AdminGetMenu(c *gin.Context) {
	items, err := h.Catalog.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to fetch menu")
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddMenuItem adds a new item to the menu
func (h *Handler) AddMenuItem(c *gin.Context) {
	var req service.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.Catalog.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create menu item")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": item.ID, "item": item})
}

// UpdateMenuItem replaces every field of a menu item
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var req service.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.Catalog.Replace(c.Request.Context(), uint(id), req)
	if err != nil {
		h.respondError(c, err, "Failed to update menu item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}
