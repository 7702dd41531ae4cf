package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parcelcart/backend/internal/domain/cart"
	"github.com/parcelcart/backend/internal/domain/shared"
	"github.com/parcelcart/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCartRepository implements cart.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart by its ID with its lines in insertion order
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	var model models.CartModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates the cart or updates it with optimistic locking (version check).
// Lines are replaced wholesale. On success the cart's version is advanced.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	var model models.CartModel
	model.FromDomain(c)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		lookup := tx.Model(&models.CartModel{}).
			Where("id = ?", c.ID).
			Select("version").
			Scan(&currentVersion)
		if lookup.Error != nil {
			return lookup.Error
		}
		if lookup.RowsAffected == 0 {
			return tx.Create(&model).Error
		}

		if err := c.CheckVersion(currentVersion); err != nil {
			return err
		}

		next := c.NextVersion()
		result := tx.Model(&models.CartModel{}).
			Where("id = ? AND version = ?", c.ID, currentVersion).
			Updates(map[string]any{
				"currency":   model.Currency,
				"version":    next,
				"updated_at": model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := tx.Where("cart_id = ?", c.ID).Delete(&models.CartLineModel{}).Error; err != nil {
			return err
		}
		if len(model.Lines) > 0 {
			if err := tx.Create(&model.Lines).Error; err != nil {
				return err
			}
		}

		c.Version = next
		return nil
	})
}
