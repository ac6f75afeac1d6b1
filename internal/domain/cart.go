package domain

import "github.com/google/uuid"

// CartEntry is one line in a user's cart. Adding the same product twice
// creates two entries; there is no merge or quantity update.
type CartEntry struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
}

// CartLine is a cart entry joined with the listing it references.
// Entries whose product has been deleted do not produce a line.
type CartLine struct {
	ID       uuid.UUID `json:"id"`
	Quantity int       `json:"quantity"`
	Title    string    `json:"title"`
	Price    int64     `json:"price"`
	ImageURL *string   `json:"imageUrl"`
	Campus   string    `json:"campus"`
}
