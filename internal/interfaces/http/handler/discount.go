package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/appleshop/backend/internal/application/catalog"
)

// DiscountHandler handles discount API endpoints
type DiscountHandler struct {
	BaseHandler
	discountService *catalogapp.DiscountService
}

// NewDiscountHandler creates a new DiscountHandler
func NewDiscountHandler(discountService *catalogapp.DiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

// Create handles POST /catalog/discounts
func (h *DiscountHandler) Create(c *gin.Context) {
	var req catalogapp.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	discount, err := h.discountService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, discount)
}

// GetByID handles GET /catalog/discounts/:id
func (h *DiscountHandler) GetByID(c *gin.Context) {
	discountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid discount ID format")
		return
	}

	discount, err := h.discountService.GetByID(c.Request.Context(), discountID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, discount)
}

// List handles GET /catalog/discounts
func (h *DiscountHandler) List(c *gin.Context) {
	var filter catalogapp.DiscountListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	discounts, total, err := h.discountService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, discounts, total, filter.Page, filter.PageSize)
}

// ListByProduct handles GET /catalog/products/:id/discounts
func (h *DiscountHandler) ListByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	discounts, err := h.discountService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, discounts)
}

// Active handles GET /catalog/products/:id/discount. An optional
// date query parameter (YYYY-MM-DD) overrides today.
func (h *DiscountHandler) Active(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
	}

	discount, err := h.discountService.ActiveForProduct(c.Request.Context(), productID, date)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, discount)
}

// Update handles PUT /catalog/discounts/:id
func (h *DiscountHandler) Update(c *gin.Context) {
	discountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid discount ID format")
		return
	}

	var req catalogapp.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	discount, err := h.discountService.Update(c.Request.Context(), discountID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, discount)
}

// Delete handles DELETE /catalog/discounts/:id
func (h *DiscountHandler) Delete(c *gin.Context) {
	discountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid discount ID format")
		return
	}

	if err := h.discountService.Delete(c.Request.Context(), discountID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
