package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is a precious-metal inventory entry that invoice lines reference.
type Item struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	ItemType  string    `json:"item_type" db:"item_type"`
	Purity    string    `json:"purity" db:"purity"`
	Weight    float64   `json:"weight" db:"weight"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
