package service

import (
	"context"
	"errors"
	"time"

	"github.com/campusbay/backend/internal/assets"
	"github.com/campusbay/backend/internal/domain"
	"github.com/campusbay/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrNotOwner means the caller is authenticated but does not own the
	// product it is trying to mutate. The record is left untouched.
	ErrNotOwner = errors.New("only the owner may modify this product")
)

type ProductService struct {
	productRepo repository.ProductRepository
	assets      *assets.Manager
}

func NewProductService(productRepo repository.ProductRepository, assetManager *assets.Manager) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		assets:      assetManager,
	}
}

type ProductInput struct {
	Title       string
	Price       int64
	PriceValid  bool
	Category    string
	Description string
	Condition   string
	Campus      string
}

// Create validates the listing fields, stores the image (if any) and then the
// record. The asset is accepted before the row is written so a caller never
// sees a product referencing a file that was not persisted.
func (s *ProductService) Create(ctx context.Context, ownerID uuid.UUID, input ProductInput, image *assets.Upload) (*domain.Product, error) {
	var missing []string
	if input.Title == "" {
		missing = append(missing, "title")
	}
	if !input.PriceValid || input.Price < 0 {
		missing = append(missing, "price")
	}
	if input.Category == "" {
		missing = append(missing, "category")
	}
	if input.Campus == "" {
		missing = append(missing, "campus")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}

	var imageURL *string
	if image != nil {
		ref, err := s.assets.Accept(image)
		if err != nil {
			return nil, err
		}
		imageURL = &ref
	}

	product := &domain.Product{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       input.Title,
		Price:       input.Price,
		Category:    input.Category,
		Description: input.Description,
		Condition:   input.Condition,
		Campus:      input.Campus,
		ImageURL:    imageURL,
		CreatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// List returns unsold products, newest first. The wildcard category is
// treated as no filter.
func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	if filter.Category == domain.CategoryAll {
		filter.Category = ""
	}
	return s.productRepo.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]*domain.Product, error) {
	return s.productRepo.ListByOwner(ctx, ownerID)
}

// Update mutates a product's fields and swaps its image. The ownership check
// happens before any side effect; a new image is stored before the old file
// is removed.
func (s *ProductService) Update(ctx context.Context, ownerID, id uuid.UUID, input ProductInput, image *assets.Upload) (*domain.Product, error) {
	product, err := s.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	oldRef := ""
	if product.ImageURL != nil {
		oldRef = *product.ImageURL
	}
	newRef, err := s.assets.Replace(oldRef, image)
	if err != nil {
		return nil, err
	}

	product.Title = input.Title
	if input.PriceValid && input.Price >= 0 {
		product.Price = input.Price
	}
	product.Category = input.Category
	product.Description = input.Description
	product.Condition = input.Condition
	if newRef != "" {
		product.ImageURL = &newRef
	}
	product.Seller = nil

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product and its image. Asset removal is best effort and
// never blocks the record deletion.
func (s *ProductService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	product, err := s.loadOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if product.ImageURL != nil {
		s.assets.Delete(*product.ImageURL)
	}

	return s.productRepo.Delete(ctx, id)
}

// MarkSold is a one-way transition; there is no path back to unsold.
func (s *ProductService) MarkSold(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.loadOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.productRepo.MarkSold(ctx, id)
}

func (s *ProductService) loadOwned(ctx context.Context, ownerID, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if product.UserID != ownerID {
		return nil, ErrNotOwner
	}
	return product, nil
}
