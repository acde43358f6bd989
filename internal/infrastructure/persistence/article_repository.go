package persistence

import (
	"context"
	"errors"

	"github.com/appleshop/backend/internal/domain/content"
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormArticleRepository implements content.Repository using GORM
type GormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository creates a new GormArticleRepository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// FindByID finds an article by its ID with category links preloaded
func (r *GormArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Article, error) {
	var article content.Article
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// FindAll finds all articles matching the filter
func (r *GormArticleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.Article, error) {
	var articles []content.Article
	query := r.applyFilter(r.db.WithContext(ctx).Model(&content.Article{}), filter)
	query = applyPagination(query, filter).Preload("Categories")

	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// FindRecent returns articles ordered by publication date descending
func (r *GormArticleRepository) FindRecent(ctx context.Context, limit int) ([]content.Article, error) {
	var articles []content.Article
	if err := r.db.WithContext(ctx).
		Preload("Categories").
		Order("published_at DESC").
		Limit(limit).
		Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// FindByCategory finds articles linked to a category, heaviest link first
func (r *GormArticleRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]content.Article, error) {
	var articles []content.Article
	query := r.db.WithContext(ctx).
		Model(&content.Article{}).
		Joins("JOIN article_categories ON article_categories.article_id = articles.id").
		Where("article_categories.category_id = ?", categoryID).
		Order("article_categories.weight DESC, articles.published_at DESC").
		Preload("Categories")

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// CountByCategory counts articles linked to a category
func (r *GormArticleRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&content.ArticleCategory{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the article and its category links in one transaction
func (r *GormArticleRepository) Save(ctx context.Context, article *content.Article) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, 0, len(article.Categories))
		for _, link := range article.Categories {
			keep = append(keep, link.ID)
		}
		del := tx.Where("article_id = ?", article.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&content.ArticleCategory{}).Error; err != nil {
			return err
		}

		for i := range article.Categories {
			if err := tx.Save(&article.Categories[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the article and cascades to its category links
func (r *GormArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&content.ArticleCategory{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&content.Article{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts articles matching the filter
func (r *GormArticleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&content.Article{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormArticleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR teaser ILIKE ?", searchPattern, searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "featured":
			query = query.Where("featured = ?", value)
		}
	}
	return query
}

var _ content.Repository = (*GormArticleRepository)(nil)
