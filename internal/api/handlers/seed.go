package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/campusbay/backend/internal/config"
	"github.com/campusbay/backend/internal/domain"
	"github.com/campusbay/backend/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedHandler fills the store with demo accounts and listings. It only
// responds in the development environment.
type SeedHandler struct {
	repos *repository.Repositories
	cfg   *config.Config
}

func NewSeedHandler(repos *repository.Repositories, cfg *config.Config) *SeedHandler {
	return &SeedHandler{repos: repos, cfg: cfg}
}

func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.IsDevelopment() {
		jsonError(w, http.StatusNotFound, "not found")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		serviceError(w, err)
		return
	}

	users := []*domain.User{
		{
			ID: uuid.New(), Email: "budi@ui.ac.id", PasswordHash: string(hash),
			Name: "Budi Santoso", Campus: "Universitas Indonesia",
			Major: "Teknik Informatika", Year: "2021", CreatedAt: time.Now(),
		},
		{
			ID: uuid.New(), Email: "siti@ugm.ac.id", PasswordHash: string(hash),
			Name: "Siti Nurhaliza", Campus: "Universitas Gadjah Mada",
			Major: "Sistem Informasi", Year: "2022", CreatedAt: time.Now(),
		},
	}

	for i, u := range users {
		existing, err := h.repos.User.GetByEmail(r.Context(), u.Email)
		if err == nil {
			users[i] = existing
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("ERROR [handlers.Seed] looking up %s: %v", u.Email, err)
		}
		if err := h.repos.User.Create(r.Context(), u); err != nil {
			serviceError(w, err)
			return
		}
	}

	products := []*domain.Product{
		{
			ID: uuid.New(), UserID: users[0].ID, Title: "Macbook Air M1 2020",
			Price: 10500000, Category: "Elektronik",
			Description: "Fullset lengkap box, battery 90%", Condition: "Bekas - Mulus",
			Campus: "Universitas Indonesia", CreatedAt: time.Now(),
		},
		{
			ID: uuid.New(), UserID: users[0].ID, Title: "Buku Algoritma dan Pemrograman",
			Price: 75000, Category: "Buku",
			Description: "Buku kuliah semester 1, kondisi bagus", Condition: "Bekas",
			Campus: "Universitas Indonesia", CreatedAt: time.Now(),
		},
		{
			ID: uuid.New(), UserID: users[1].ID, Title: "Kemeja Formal Biru",
			Price: 50000, Category: "Fashion",
			Description: "Baru pakai 2x, masih mulus", Condition: "Bekas - Mulus",
			Campus: "Universitas Gadjah Mada", CreatedAt: time.Now(),
		},
	}

	for _, p := range products {
		if err := h.repos.Product.Create(r.Context(), p); err != nil {
			serviceError(w, err)
			return
		}
	}

	jsonResponse(w, http.StatusOK, map[string]string{
		"message": "database seeded: budi@ui.ac.id / siti@ugm.ac.id, password \"password123\"",
	})
}
