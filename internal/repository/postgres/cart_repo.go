package postgres

import (
	"context"

	"github.com/campusbay/backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *cartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, entry *domain.CartEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *cartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CartLine, error) {
	var lines []*domain.CartLine
	// Inner join drops entries whose product has been deleted.
	err := r.db.WithContext(ctx).
		Table("cart_entries").
		Select("cart_entries.id, cart_entries.quantity, products.title, products.price, products.image_url, products.campus").
		Joins("JOIN products ON products.id = cart_entries.product_id").
		Where("cart_entries.user_id = ?", userID).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *cartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CartEntry{}, "id = ?", id).Error
}
