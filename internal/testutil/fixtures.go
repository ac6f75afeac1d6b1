package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/campusbay/backend/internal/domain"
	"github.com/campusbay/backend/internal/session"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	password string
	name     string
	campus   string
	major    string
	year     string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:    fmt.Sprintf("student_%s@kampus.ac.id", uuid.New().String()[:8]),
		password: "testpassword123",
		name:     "Test Student",
		campus:   "Universitas Indonesia",
		major:    "Teknik Informatika",
		year:     "2023",
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithCampus(campus string) *UserBuilder {
	b.campus = campus
	return b
}

// Build creates the user in the database and returns it with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Name:         b.name,
		Campus:       b.campus,
		Major:        b.major,
		Year:         b.year,
		CreatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndLogin creates a user via the register endpoint and returns the user
// together with its session cookie.
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, *http.Cookie) {
	t.Helper()

	reqBody := map[string]string{
		"email":    b.email,
		"password": b.password,
		"name":     b.name,
		"campus":   b.campus,
		"major":    b.major,
		"year":     b.year,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected register status code: %d", resp.StatusCode)
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}

	cookie := SessionCookie(resp)
	if cookie == nil {
		t.Fatal("register response did not set a session cookie")
	}

	return &user, cookie
}

// SessionCookie extracts the session cookie from a response, or nil.
func SessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

// ProductBuilder creates test products with a builder pattern
type ProductBuilder struct {
	owner       *domain.User
	title       string
	price       int64
	category    string
	description string
	condition   string
	campus      string
	imageURL    *string
	isSold      bool
	createdAt   *time.Time
}

func NewProductBuilder(owner *domain.User) *ProductBuilder {
	return &ProductBuilder{
		owner:       owner,
		title:       fmt.Sprintf("Listing %s", uuid.New().String()[:8]),
		price:       50000,
		category:    "Buku",
		description: "Kondisi bagus",
		condition:   "Bekas",
		campus:      owner.Campus,
	}
}

func (b *ProductBuilder) WithTitle(title string) *ProductBuilder {
	b.title = title
	return b
}

func (b *ProductBuilder) WithPrice(price int64) *ProductBuilder {
	b.price = price
	return b
}

func (b *ProductBuilder) WithCategory(category string) *ProductBuilder {
	b.category = category
	return b
}

func (b *ProductBuilder) WithCampus(campus string) *ProductBuilder {
	b.campus = campus
	return b
}

func (b *ProductBuilder) WithImageURL(ref string) *ProductBuilder {
	b.imageURL = &ref
	return b
}

func (b *ProductBuilder) Sold() *ProductBuilder {
	b.isSold = true
	return b
}

func (b *ProductBuilder) WithCreatedAt(at time.Time) *ProductBuilder {
	b.createdAt = &at
	return b
}

// Build creates the product in the database
func (b *ProductBuilder) Build(t *testing.T, db *gorm.DB) *domain.Product {
	t.Helper()

	product := &domain.Product{
		ID:          uuid.New(),
		UserID:      b.owner.ID,
		Title:       b.title,
		Price:       b.price,
		Category:    b.category,
		Description: b.description,
		Condition:   b.condition,
		Campus:      b.campus,
		ImageURL:    b.imageURL,
		IsSold:      b.isSold,
		CreatedAt:   time.Now(),
	}
	if b.createdAt != nil {
		product.CreatedAt = *b.createdAt
	}

	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	return product
}
