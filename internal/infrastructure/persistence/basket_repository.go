package persistence

import (
	"context"
	"errors"

	"github.com/appleshop/backend/internal/domain/basket"
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBasketRepository implements basket.Repository using GORM
type GormBasketRepository struct {
	db *gorm.DB
}

// NewGormBasketRepository creates a new GormBasketRepository
func NewGormBasketRepository(db *gorm.DB) *GormBasketRepository {
	return &GormBasketRepository{db: db}
}

// FindByUser returns the user's basket with items preloaded
func (r *GormBasketRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*basket.Basket, error) {
	var b basket.Basket
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&b, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Save persists the basket and its items in one transaction. Items removed
// from the aggregate are deleted from the database.
func (r *GormBasketRepository) Save(ctx context.Context, b *basket.Basket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(b).Error; err != nil {
			return err
		}

		// Delete rows no longer present on the aggregate
		keep := make([]uuid.UUID, 0, len(b.Items))
		for _, item := range b.Items {
			keep = append(keep, item.ID)
		}
		del := tx.Where("basket_id = ?", b.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&basket.BasketItem{}).Error; err != nil {
			return err
		}

		for i := range b.Items {
			if err := tx.Save(&b.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the basket and cascades to its items
func (r *GormBasketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("basket_id = ?", id).Delete(&basket.BasketItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&basket.Basket{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ basket.Repository = (*GormBasketRepository)(nil)
