package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campusbay/backend/internal/domain"
	"github.com/campusbay/backend/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotInstitutional   = errors.New("an institutional campus email is required")
	ErrUserNotFound       = errors.New("user not found")
)

// bcryptCost balances brute-force resistance against login latency.
const bcryptCost = 10

type AuthService struct {
	userRepo    repository.UserRepository
	emailDomain string
}

func NewAuthService(userRepo repository.UserRepository, emailDomain string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		emailDomain: emailDomain,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Campus   string
	Major    string
	Year     string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	var missing []string
	if input.Email == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if input.Name == "" {
		missing = append(missing, "name")
	}
	if input.Campus == "" {
		missing = append(missing, "campus")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}

	if !strings.HasSuffix(input.Email, s.emailDomain) {
		return nil, ErrNotInstitutional
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Campus:       input.Campus,
		Major:        input.Major,
		Year:         input.Year,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
