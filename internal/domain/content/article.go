package content

import (
	"strings"
	"time"

	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Article is an editorial piece shown on the storefront
type Article struct {
	shared.BaseAggregateRoot
	Title       string            `gorm:"type:varchar(255);not null"`
	Teaser      string            `gorm:"type:text"`
	Body        string            `gorm:"type:text;not null"`
	SourceURL   string            `gorm:"type:varchar(512)"`
	ImageKey    string            `gorm:"type:varchar(512)"`
	Featured    bool              `gorm:"not null;default:false"`
	PublishedAt time.Time         `gorm:"not null;index"`
	Categories  []ArticleCategory `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
}

// ArticleCategory links an article to a catalog category with a display weight
type ArticleCategory struct {
	shared.BaseEntity
	ArticleID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_article_category,priority:1"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_article_category,priority:2"`
	Weight     int       `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (Article) TableName() string {
	return "articles"
}

// TableName returns the table name for GORM
func (ArticleCategory) TableName() string {
	return "article_categories"
}

// NewArticle creates a published article
func NewArticle(title, teaser, body, sourceURL string, featured bool, publishedAt time.Time) (*Article, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Article title is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Article body is required")
	}
	if publishedAt.IsZero() {
		publishedAt = time.Now()
	}

	return &Article{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		Teaser:            teaser,
		Body:              body,
		SourceURL:         sourceURL,
		Featured:          featured,
		PublishedAt:       publishedAt,
		Categories:        make([]ArticleCategory, 0),
	}, nil
}

// Update changes the article content
func (a *Article) Update(title, teaser, body, sourceURL string, featured bool) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Article title is required")
	}
	if strings.TrimSpace(body) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Article body is required")
	}

	a.Title = strings.TrimSpace(title)
	a.Teaser = teaser
	a.Body = body
	a.SourceURL = sourceURL
	a.Featured = featured
	a.Touch()
	a.IncrementVersion()
	return nil
}

// LinkCategory attaches the article to a category. Linking the same
// category again updates the weight instead of duplicating the pair.
func (a *Article) LinkCategory(categoryID uuid.UUID, weight int) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Category is required")
	}
	if weight < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Weight must be at least 1")
	}

	for i := range a.Categories {
		if a.Categories[i].CategoryID == categoryID {
			a.Categories[i].Weight = weight
			a.Categories[i].Touch()
			return nil
		}
	}

	a.Categories = append(a.Categories, ArticleCategory{
		BaseEntity: shared.NewBaseEntity(),
		ArticleID:  a.ID,
		CategoryID: categoryID,
		Weight:     weight,
	})
	return nil
}

// UnlinkCategory removes the link to a category
func (a *Article) UnlinkCategory(categoryID uuid.UUID) error {
	for i := range a.Categories {
		if a.Categories[i].CategoryID == categoryID {
			a.Categories = append(a.Categories[:i], a.Categories[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// SetImage stores the key of an uploaded cover image
func (a *Article) SetImage(key string) {
	a.ImageKey = key
	a.Touch()
}
