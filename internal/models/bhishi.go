package models

import (
	"time"

	"github.com/google/uuid"
)

// Bhishi transaction types.
const (
	BhishiDeposit = "deposit"
	BhishiRedeem  = "redeem"
)

// BhishiTransaction is one entry in a customer's savings ledger.
type BhishiTransaction struct {
	Date   time.Time `json:"date"`
	Type   string    `json:"type"`
	Amount float64   `json:"amount"`
	Notes  string    `json:"notes,omitempty"`
}

// Bhishi is a one-per-customer recurring savings account. Balance is
// maintained incrementally alongside the append-only transaction log.
type Bhishi struct {
	ID           uuid.UUID           `json:"id" db:"id"`
	CustomerID   uuid.UUID           `json:"customer_id" db:"customer_id"`
	Balance      float64             `json:"balance" db:"balance"`
	Transactions []BhishiTransaction `json:"transactions" db:"transactions"`
	CreatedAt    time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" db:"updated_at"`
}

// BhishiListEntry is the listing shape with the customer name resolved
// and a derived activity status.
type BhishiListEntry struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Balance      float64   `json:"balance"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
