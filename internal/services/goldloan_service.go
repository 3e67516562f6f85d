package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"jewelmart/internal/common"
	"jewelmart/internal/models"
	"jewelmart/internal/repositories"

	"github.com/google/uuid"
)

// MaxLoanToValueRatio caps how much can be lent against pledged gold.
const MaxLoanToValueRatio = 0.80

type CreateGoldLoanInput struct {
	CustomerID   uuid.UUID
	LoanAmount   float64
	InterestRate float64
	Tenure       int
	StartDate    time.Time
	Collateral   models.CollateralDetails
	EMI          float64
	Notes        string
}

type RepaymentInput struct {
	Amount float64
	Date   time.Time
}

// GoldLoanServiceInterface defines the interface for gold loan operations
type GoldLoanServiceInterface interface {
	CreateLoan(ctx context.Context, input *CreateGoldLoanInput) (*models.GoldLoanView, error)
	GetLoanByID(ctx context.Context, loanID uuid.UUID) (*models.GoldLoanView, error)
	ListLoans(ctx context.Context, filter *repositories.LoanFilter) ([]*models.GoldLoanView, error)
	AddRepayment(ctx context.Context, loanID uuid.UUID, input *RepaymentInput) (*models.GoldLoanView, error)
	SetStatus(ctx context.Context, loanID uuid.UUID, status string) (*models.GoldLoanView, error)
	DeleteLoan(ctx context.Context, loanID uuid.UUID) error
}

type goldLoanService struct {
	loanRepo     repositories.GoldLoanRepository
	customerRepo repositories.CustomerRepository
	sequenceRepo repositories.SequenceRepository
}

// NewGoldLoanService creates a new gold loan service
func NewGoldLoanService(loanRepo repositories.GoldLoanRepository, customerRepo repositories.CustomerRepository, sequenceRepo repositories.SequenceRepository) GoldLoanServiceInterface {
	return &goldLoanService{
		loanRepo:     loanRepo,
		customerRepo: customerRepo,
		sequenceRepo: sequenceRepo,
	}
}

// TotalPayable is the simple-interest payoff for the whole tenure:
// principal plus principal*rate*(tenure/12)/100. Not amortizing; the
// full tenure's interest is owed from day one.
func TotalPayable(principal, annualRate float64, tenureMonths int) float64 {
	return principal + principal*annualRate*(float64(tenureMonths)/12)/100
}

func validateLoanInput(input *CreateGoldLoanInput) error {
	if input.LoanAmount <= 0 {
		return common.NewValidationError("loan amount must be positive")
	}
	if input.InterestRate < 0 {
		return common.NewValidationError("interest rate cannot be negative")
	}
	if input.Tenure <= 0 {
		return common.NewValidationError("tenure must be a positive number of months")
	}
	if input.Collateral.Weight <= 0 {
		return common.NewValidationError("collateral weight must be positive")
	}
	if input.Collateral.MarketValue <= 0 {
		return common.NewValidationError("collateral market value must be positive")
	}
	return nil
}

// CreateLoan opens a loan against pledged gold. The principal is capped
// at 80% of the collateral's market value; the rejection message names
// the computed maximum so staff can quote it back to the customer.
func (s *goldLoanService) CreateLoan(ctx context.Context, input *CreateGoldLoanInput) (*models.GoldLoanView, error) {
	if err := validateLoanInput(input); err != nil {
		return nil, err
	}

	maxLoan := input.Collateral.MarketValue * MaxLoanToValueRatio
	if input.LoanAmount > maxLoan {
		return nil, common.NewValidationError("Loan amount exceeds maximum allowed (%s based on collateral value)", common.FormatINR(maxLoan))
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, common.SecureErrorMessage("look up customer", err)
	}
	if customer == nil {
		return nil, common.NotFoundf("customer %s", input.CustomerID)
	}

	seq, err := s.sequenceRepo.Next(ctx, repositories.SequenceGoldLoan)
	if err != nil {
		return nil, common.SecureErrorMessage("generate loan number", err)
	}

	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = time.Now()
	}
	totalPayable := TotalPayable(input.LoanAmount, input.InterestRate, input.Tenure)

	// EMI comes from the front office; it is quoted to the customer
	// before the loan is entered. Derive one only when it is missing.
	emi := input.EMI
	if emi <= 0 {
		emi = common.Round2(totalPayable / float64(input.Tenure))
	}

	loan := &models.GoldLoan{
		ID:              uuid.New(),
		LoanNumber:      fmt.Sprintf("GL%06d", seq),
		CustomerID:      input.CustomerID,
		LoanAmount:      input.LoanAmount,
		InterestRate:    input.InterestRate,
		StartDate:       startDate,
		Tenure:          input.Tenure,
		EndDate:         startDate.AddDate(0, input.Tenure, 0),
		Collateral:      input.Collateral,
		EMI:             emi,
		RemainingAmount: totalPayable,
		NextPaymentDue:  startDate.AddDate(0, 1, 0),
		Status:          models.LoanStatusActive,
		Repayments:      []models.Repayment{},
		Notes:           input.Notes,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, common.SecureErrorMessage("create gold loan", err)
	}
	return s.populate(ctx, loan), nil
}

func (s *goldLoanService) GetLoanByID(ctx context.Context, loanID uuid.UUID) (*models.GoldLoanView, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, common.SecureErrorMessage("fetch gold loan", err)
	}
	if loan == nil {
		return nil, common.NotFoundf("gold loan %s", loanID)
	}
	return s.populate(ctx, loan), nil
}

func (s *goldLoanService) ListLoans(ctx context.Context, filter *repositories.LoanFilter) ([]*models.GoldLoanView, error) {
	if filter != nil && filter.Status != nil && !models.ValidLoanStatus(*filter.Status) {
		return nil, common.NewValidationError("status must be one of: active, closed, defaulted, renewed")
	}
	loans, err := s.loanRepo.List(ctx, filter)
	if err != nil {
		return nil, common.SecureErrorMessage("list gold loans", err)
	}
	views := make([]*models.GoldLoanView, 0, len(loans))
	for _, loan := range loans {
		views = append(views, s.populate(ctx, loan))
	}
	return views, nil
}

// AddRepayment applies a payment against the outstanding balance.
// The balance is rounded to paise and clamped at zero; a zero balance
// closes the loan. The next payment falls due one month after the
// repayment date either way.
func (s *goldLoanService) AddRepayment(ctx context.Context, loanID uuid.UUID, input *RepaymentInput) (*models.GoldLoanView, error) {
	if input.Amount <= 0 {
		return nil, common.NewValidationError("repayment amount must be positive")
	}

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, common.SecureErrorMessage("fetch gold loan", err)
	}
	if loan == nil {
		return nil, common.NotFoundf("gold loan %s", loanID)
	}
	if loan.Status != models.LoanStatusActive {
		return nil, common.NewValidationError("Cannot add repayment to %s loan", loan.Status)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	remaining := common.Round2(loan.RemainingAmount - input.Amount)
	if remaining < 0 {
		remaining = 0
	}

	// The interest/principal split per payment is not tracked; both
	// fields stay zero and only the running balance is authoritative.
	loan.Repayments = append(loan.Repayments, models.Repayment{
		Date:             date,
		Amount:           common.Round2(input.Amount),
		InterestPaid:     0,
		PrincipalPaid:    0,
		RemainingBalance: remaining,
	})
	loan.RemainingAmount = remaining
	loan.NextPaymentDue = date.AddDate(0, 1, 0)
	if remaining == 0 {
		loan.Status = models.LoanStatusClosed
	}
	loan.UpdatedAt = time.Now()

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, common.SecureErrorMessage("record repayment", err)
	}
	return s.populate(ctx, loan), nil
}

// SetStatus changes the loan status. Any transition between the known
// statuses is allowed, including reopening a closed loan; branch staff
// correct mistakes this way.
func (s *goldLoanService) SetStatus(ctx context.Context, loanID uuid.UUID, status string) (*models.GoldLoanView, error) {
	if !models.ValidLoanStatus(status) {
		return nil, common.NewValidationError("status must be one of: active, closed, defaulted, renewed")
	}

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, common.SecureErrorMessage("fetch gold loan", err)
	}
	if loan == nil {
		return nil, common.NotFoundf("gold loan %s", loanID)
	}

	loan.Status = status
	loan.UpdatedAt = time.Now()
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, common.SecureErrorMessage("update loan status", err)
	}
	return s.populate(ctx, loan), nil
}

func (s *goldLoanService) DeleteLoan(ctx context.Context, loanID uuid.UUID) error {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return common.SecureErrorMessage("fetch gold loan", err)
	}
	if loan == nil {
		return common.NotFoundf("gold loan %s", loanID)
	}
	if err := s.loanRepo.Delete(ctx, loanID); err != nil {
		return common.SecureErrorMessage("delete gold loan", err)
	}
	return nil
}

func (s *goldLoanService) populate(ctx context.Context, loan *models.GoldLoan) *models.GoldLoanView {
	view := &models.GoldLoanView{GoldLoan: *loan, TotalRepaid: loan.TotalRepaid()}
	customer, err := s.customerRepo.GetByID(ctx, loan.CustomerID)
	if err != nil || customer == nil {
		if err != nil {
			log.Printf("Failed to resolve customer %s for loan %s: %v", loan.CustomerID, loan.ID, err)
		}
		view.Customer = models.DeletedCustomerPlaceholder()
	} else {
		view.Customer = customer.Summary()
	}
	return view
}
