package service

import (
	"github.com/campusbay/backend/internal/assets"
	"github.com/campusbay/backend/internal/config"
	"github.com/campusbay/backend/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Product *ProductService
	Cart    *CartService
}

func NewServices(repos *repository.Repositories, assetManager *assets.Manager, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, cfg.EmailDomain),
		Product: NewProductService(repos.Product, assetManager),
		Cart:    NewCartService(repos.Cart),
	}
}
