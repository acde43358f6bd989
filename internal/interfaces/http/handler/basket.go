package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	basketapp "github.com/appleshop/backend/internal/application/basket"
)

// BasketHandler handles basket API endpoints.
// All operations act on the authenticated user's own basket.
type BasketHandler struct {
	BaseHandler
	basketService *basketapp.Service
}

// NewBasketHandler creates a new BasketHandler
func NewBasketHandler(basketService *basketapp.Service) *BasketHandler {
	return &BasketHandler{basketService: basketService}
}

// Get handles GET /basket
func (h *BasketHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	basket, err := h.basketService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, basket)
}

// AddItem handles POST /basket/items
func (h *BasketHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req basketapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	basket, err := h.basketService.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, basket)
}

// UpdateItem handles PUT /basket/items/:id.
// Quantity zero removes the item.
func (h *BasketHandler) UpdateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req basketapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	basket, err := h.basketService.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, basket)
}

// RemoveItem handles DELETE /basket/items/:id
func (h *BasketHandler) RemoveItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	basket, err := h.basketService.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, basket)
}

// Clear handles DELETE /basket
func (h *BasketHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.basketService.Clear(c.Request.Context(), userID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
