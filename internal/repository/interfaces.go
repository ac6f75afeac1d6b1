package repository

import (
	"context"

	"github.com/campusbay/backend/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	// GetByID loads the product with its seller regardless of sold state.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	// List returns unsold products matching the filter, newest first.
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	// ListByOwner returns all of a user's products, any sold state, newest first.
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	MarkSold(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CartRepository interface {
	Create(ctx context.Context, entry *domain.CartEntry) error
	// ListByUser returns cart entries joined with their product.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CartLine, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User    UserRepository
	Product ProductRepository
	Cart    CartRepository
}
