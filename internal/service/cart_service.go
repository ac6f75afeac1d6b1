package service

import (
	"context"

	"github.com/campusbay/backend/internal/domain"
	"github.com/campusbay/backend/internal/repository"
	"github.com/google/uuid"
)

type CartService struct {
	cartRepo repository.CartRepository
}

func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// Add always inserts a fresh entry with quantity 1; repeated additions of the
// same product produce separate lines.
func (s *CartService) Add(ctx context.Context, userID, productID uuid.UUID) (*domain.CartEntry, error) {
	entry := &domain.CartEntry{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	}
	if err := s.cartRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *CartService) List(ctx context.Context, userID uuid.UUID) ([]*domain.CartLine, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

// Remove deletes a cart entry unconditionally; removing an absent entry is
// not an error.
func (s *CartService) Remove(ctx context.Context, id uuid.UUID) error {
	return s.cartRepo.Delete(ctx, id)
}
