package models

import (
	"time"

	"github.com/google/uuid"
)

// Invoice payment statuses.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
)

// Accepted payment methods.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodUPI    = "upi"
	PaymentMethodBank   = "bank"
	PaymentMethodCheque = "cheque"
)

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI, PaymentMethodBank, PaymentMethodCheque:
		return true
	}
	return false
}

// InvoiceItem is a billed line. TotalPrice is always computed
// server-side as quantity * (weight * pricePerGram + makingCharge).
type InvoiceItem struct {
	ItemID       uuid.UUID `json:"itemId"`
	Quantity     int       `json:"quantity"`
	Weight       float64   `json:"weight"`
	PricePerGram float64   `json:"pricePerGram"`
	MakingCharge float64   `json:"makingCharge"`
	TotalPrice   float64   `json:"totalPrice"`
}

type Invoice struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	InvoiceNumber int64         `json:"invoice_number" db:"invoice_number"`
	Date          time.Time     `json:"date" db:"date"`
	DueDate       time.Time     `json:"due_date" db:"due_date"`
	CustomerID    uuid.UUID     `json:"customer_id" db:"customer_id"`
	Items         []InvoiceItem `json:"items" db:"items"`
	Subtotal      float64       `json:"subtotal" db:"subtotal"`
	GST           float64       `json:"gst" db:"gst"`
	GSTAmount     float64       `json:"gst_amount" db:"gst_amount"`
	TotalAmount   float64       `json:"total_amount" db:"total_amount"`
	PaidAmount    float64       `json:"paid_amount" db:"paid_amount"`
	DueAmount     float64       `json:"due_amount" db:"due_amount"`
	PaymentMethod string        `json:"payment_method" db:"payment_method"`
	Notes         string        `json:"notes" db:"notes"`
	Status        string        `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// InvoiceItemView is a line item with display fields resolved from the
// inventory collection.
type InvoiceItemView struct {
	InvoiceItem
	Name     string `json:"name"`
	Category string `json:"category"`
	Purity   string `json:"purity,omitempty"`
}

// InvoiceView is the populated response shape: the invoice plus the
// customer summary and resolved item display fields.
type InvoiceView struct {
	Invoice
	Customer  CustomerSummary   `json:"customer"`
	ItemViews []InvoiceItemView `json:"item_details"`
}
