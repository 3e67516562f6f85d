package models

import (
	"time"

	"github.com/google/uuid"
)

// Gold loan statuses. The state machine is deliberately permissive:
// SetStatus may move a loan between any two statuses, and only
// repayments are restricted to active loans.
const (
	LoanStatusActive    = "active"
	LoanStatusClosed    = "closed"
	LoanStatusDefaulted = "defaulted"
	LoanStatusRenewed   = "renewed"
)

// ValidLoanStatus reports whether s is a known loan status.
func ValidLoanStatus(s string) bool {
	switch s {
	case LoanStatusActive, LoanStatusClosed, LoanStatusDefaulted, LoanStatusRenewed:
		return true
	}
	return false
}

// CollateralDetails describes the pledged gold backing a loan.
type CollateralDetails struct {
	CollateralType string  `json:"collateralType"`
	Purity         string  `json:"purity"`
	Weight         float64 `json:"weight"`
	MarketValue    float64 `json:"marketValue"`
}

// Repayment is one payment applied against a loan's outstanding
// balance. The interest/principal split is not tracked, so the paid
// fields are carried as zero; the running balance is what matters.
type Repayment struct {
	Date             time.Time `json:"date"`
	Amount           float64   `json:"amount"`
	InterestPaid     float64   `json:"interestPaid"`
	PrincipalPaid    float64   `json:"principalPaid"`
	RemainingBalance float64   `json:"remainingBalance"`
}

type GoldLoan struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	LoanNumber      string            `json:"loan_number" db:"loan_number"`
	CustomerID      uuid.UUID         `json:"customer_id" db:"customer_id"`
	LoanAmount      float64           `json:"loan_amount" db:"loan_amount"`
	InterestRate    float64           `json:"interest_rate" db:"interest_rate"`
	StartDate       time.Time         `json:"start_date" db:"start_date"`
	Tenure          int               `json:"tenure" db:"tenure"`
	EndDate         time.Time         `json:"end_date" db:"end_date"`
	Collateral      CollateralDetails `json:"collateral_details" db:"collateral"`
	EMI             float64           `json:"emi" db:"emi"`
	RemainingAmount float64           `json:"remaining_amount" db:"remaining_amount"`
	NextPaymentDue  time.Time         `json:"next_payment_due" db:"next_payment_due"`
	Status          string            `json:"status" db:"status"`
	Repayments      []Repayment       `json:"repayments" db:"repayments"`
	Notes           string            `json:"notes" db:"notes"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

// TotalRepaid sums all repayment amounts applied to the loan.
func (l *GoldLoan) TotalRepaid() float64 {
	var total float64
	for _, r := range l.Repayments {
		total += r.Amount
	}
	return total
}

// GoldLoanView is the populated response shape with the customer
// summary resolved (or the deleted-customer placeholder).
type GoldLoanView struct {
	GoldLoan
	Customer    CustomerSummary `json:"customer"`
	TotalRepaid float64         `json:"total_repaid"`
}
