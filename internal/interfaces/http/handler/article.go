package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	contentapp "github.com/appleshop/backend/internal/application/content"
)

// ArticleHandler handles article API endpoints
type ArticleHandler struct {
	BaseHandler
	articleService *contentapp.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleService *contentapp.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// Create handles POST /content/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req contentapp.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, article)
}

// GetByID handles GET /content/articles/:id
func (h *ArticleHandler) GetByID(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := h.articleService.GetByID(c.Request.Context(), articleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, article)
}

// List handles GET /content/articles
func (h *ArticleHandler) List(c *gin.Context) {
	var filter contentapp.ArticleListFilter
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

	articles, total, err := h.articleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, articles, total, filter.Page, filter.PageSize)
}

// Recent handles GET /content/articles/recent
func (h *ArticleHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	articles, err := h.articleService.Recent(c.Request.Context(), limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, articles)
}

// ByCategory handles GET /content/categories/:id/articles
func (h *ArticleHandler) ByCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var filter contentapp.ArticleListFilter
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

	articles, total, err := h.articleService.ByCategory(c.Request.Context(), categoryID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, articles, total, filter.Page, filter.PageSize)
}

// Update handles PUT /content/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	var req contentapp.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), articleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, article)
}

// LinkCategory handles POST /content/articles/:id/categories
func (h *ArticleHandler) LinkCategory(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	var req contentapp.LinkCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.LinkCategory(c.Request.Context(), articleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, article)
}

// UnlinkCategory handles DELETE /content/articles/:id/categories/:category_id
func (h *ArticleHandler) UnlinkCategory(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	categoryID, err := uuid.Parse(c.Param("category_id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	article, err := h.articleService.UnlinkCategory(c.Request.Context(), articleID, categoryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, article)
}

// Delete handles DELETE /content/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), articleID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
