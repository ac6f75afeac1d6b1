package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Campus       string    `json:"campus" gorm:"not null"`
	Major        string    `json:"major,omitempty"`
	Year         string    `json:"year,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
