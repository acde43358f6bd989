package content

import (
	"time"

	"github.com/appleshop/backend/internal/domain/content"
	"github.com/google/uuid"
)

// CreateArticleRequest represents a request to publish an article
type CreateArticleRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=255"`
	Teaser      string     `json:"teaser" binding:"max=2000"`
	Body        string     `json:"body" binding:"required"`
	SourceURL   string     `json:"source_url" binding:"omitempty,url,max=512"`
	Featured    bool       `json:"featured"`
	PublishedAt *time.Time `json:"published_at"`
}

// UpdateArticleRequest represents a request to edit an article
type UpdateArticleRequest struct {
	Title     string `json:"title" binding:"required,min=1,max=255"`
	Teaser    string `json:"teaser" binding:"max=2000"`
	Body      string `json:"body" binding:"required"`
	SourceURL string `json:"source_url" binding:"omitempty,url,max=512"`
	Featured  bool   `json:"featured"`
}

// LinkCategoryRequest attaches an article to a category
type LinkCategoryRequest struct {
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	Weight     int       `json:"weight" binding:"omitempty,min=1"`
}

// ArticleCategoryResponse represents one category link
type ArticleCategoryResponse struct {
	CategoryID uuid.UUID `json:"category_id"`
	Weight     int       `json:"weight"`
}

// ArticleResponse represents an article in API responses
type ArticleResponse struct {
	ID          uuid.UUID                 `json:"id"`
	Title       string                    `json:"title"`
	Teaser      string                    `json:"teaser"`
	Body        string                    `json:"body"`
	SourceURL   string                    `json:"source_url"`
	ImageKey    string                    `json:"image_key"`
	Featured    bool                      `json:"featured"`
	PublishedAt time.Time                 `json:"published_at"`
	Categories  []ArticleCategoryResponse `json:"categories"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// ArticleListFilter represents filter options for article list
type ArticleListFilter struct {
	Search   string `form:"search"`
	Featured *bool  `form:"featured"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToArticleResponse converts a domain Article to ArticleResponse
func ToArticleResponse(a *content.Article) *ArticleResponse {
	categories := make([]ArticleCategoryResponse, len(a.Categories))
	for i, link := range a.Categories {
		categories[i] = ArticleCategoryResponse{
			CategoryID: link.CategoryID,
			Weight:     link.Weight,
		}
	}

	return &ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Teaser:      a.Teaser,
		Body:        a.Body,
		SourceURL:   a.SourceURL,
		ImageKey:    a.ImageKey,
		Featured:    a.Featured,
		PublishedAt: a.PublishedAt,
		Categories:  categories,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
