package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseRecord is one entry in a customer's purchase history. Entries
// are appended when an invoice is created and amended in place (matched
// by InvoiceID) when the invoice is edited.
type PurchaseRecord struct {
	InvoiceID   uuid.UUID `json:"invoiceId"`
	Date        time.Time `json:"date"`
	TotalAmount float64   `json:"totalAmount"`
	PaidAmount  float64   `json:"paidAmount"`
	DueAmount   float64   `json:"dueAmount"`
}

type Customer struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	Name          string           `json:"name" db:"name"`
	Mobile        string           `json:"mobile" db:"mobile"`
	Email         *string          `json:"email" db:"email"`
	Address       *string          `json:"address" db:"address"`
	DateOfBirth   *time.Time       `json:"date_of_birth" db:"date_of_birth"`
	Notes         *string          `json:"notes" db:"notes"`
	TotalDue      float64          `json:"total_due" db:"total_due"`
	LoyaltyPoints int              `json:"loyalty_points" db:"loyalty_points"`
	History       []PurchaseRecord `json:"history" db:"history"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

// CustomerSummary is the display shape embedded in invoice and loan
// responses in place of the full record.
type CustomerSummary struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
}

// DeletedCustomerPlaceholder is substituted when an invoice or loan
// references a customer that no longer exists, so listings keep
// rendering instead of erroring.
func DeletedCustomerPlaceholder() CustomerSummary {
	return CustomerSummary{
		Name:   "Deleted User",
		Mobile: "Deleted User",
		Email:  "Deleted User",
	}
}

// Summary converts a customer into its display shape.
func (c *Customer) Summary() CustomerSummary {
	email := ""
	if c.Email != nil {
		email = *c.Email
	}
	return CustomerSummary{
		ID:     c.ID.String(),
		Name:   c.Name,
		Mobile: c.Mobile,
		Email:  email,
	}
}
