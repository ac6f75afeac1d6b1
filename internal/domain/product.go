package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategoryAll is the wildcard category sent by the listing filter UI.
// It means "no category filter".
const CategoryAll = "Semua"

type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Price       int64     `json:"price" gorm:"not null"` // smallest currency unit
	Category    string    `json:"category" gorm:"not null"`
	Description string    `json:"description"`
	Condition   string    `json:"condition"`
	Campus      string    `json:"campus" gorm:"not null"`
	ImageURL    *string   `json:"imageUrl"`
	IsSold      bool      `json:"isSold" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`

	Seller *User `json:"seller,omitempty" gorm:"foreignKey:UserID"`
}

// ProductFilter narrows the public listing query. Zero values mean no filter.
type ProductFilter struct {
	Category string
	Campus   string
	Search   string // substring match on title or description
}
