package services

import (
	"context"
	"log"
	"time"

	"jewelmart/internal/common"
	"jewelmart/internal/models"
	"jewelmart/internal/repositories"

	"github.com/google/uuid"
)

type BhishiTransactionInput struct {
	Amount float64
	Date   time.Time
	Notes  string
}

// BhishiPage is one page of a bhishi account listing.
type BhishiPage struct {
	Accounts   []models.BhishiListEntry `json:"accounts"`
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	TotalPages int                      `json:"totalPages"`
}

// BhishiServiceInterface defines the interface for bhishi savings operations
type BhishiServiceInterface interface {
	OpenAccount(ctx context.Context, customerID uuid.UUID, initialDeposit float64) (*models.Bhishi, error)
	Deposit(ctx context.Context, customerID uuid.UUID, input *BhishiTransactionInput) (*models.Bhishi, error)
	Redeem(ctx context.Context, customerID uuid.UUID, input *BhishiTransactionInput) (*models.Bhishi, error)
	GetByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Bhishi, error)
	ListAccounts(ctx context.Context, search string, page, limit int) (*BhishiPage, error)
}

type bhishiService struct {
	bhishiRepo   repositories.BhishiRepository
	customerRepo repositories.CustomerRepository
}

// NewBhishiService creates a new bhishi service
func NewBhishiService(bhishiRepo repositories.BhishiRepository, customerRepo repositories.CustomerRepository) BhishiServiceInterface {
	return &bhishiService{bhishiRepo: bhishiRepo, customerRepo: customerRepo}
}

// OpenAccount creates a customer's savings account, at most one per
// customer. An opening deposit is optional.
func (s *bhishiService) OpenAccount(ctx context.Context, customerID uuid.UUID, initialDeposit float64) (*models.Bhishi, error) {
	if initialDeposit < 0 {
		return nil, common.NewValidationError("initial deposit cannot be negative")
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, common.SecureErrorMessage("look up customer", err)
	}
	if customer == nil {
		return nil, common.NotFoundf("customer %s", customerID)
	}

	existing, err := s.bhishiRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, common.SecureErrorMessage("look up bhishi account", err)
	}
	if existing != nil {
		return nil, common.NewValidationError("customer already has a bhishi account")
	}

	bhishi := &models.Bhishi{
		ID:           uuid.New(),
		CustomerID:   customerID,
		Balance:      initialDeposit,
		Transactions: []models.BhishiTransaction{},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if initialDeposit > 0 {
		bhishi.Transactions = append(bhishi.Transactions, models.BhishiTransaction{
			Date:   time.Now(),
			Type:   models.BhishiDeposit,
			Amount: initialDeposit,
			Notes:  "Opening deposit",
		})
	}

	if err := s.bhishiRepo.Create(ctx, bhishi); err != nil {
		return nil, common.SecureErrorMessage("create bhishi account", err)
	}
	return bhishi, nil
}

// Deposit appends a deposit entry and grows the balance.
func (s *bhishiService) Deposit(ctx context.Context, customerID uuid.UUID, input *BhishiTransactionInput) (*models.Bhishi, error) {
	if input.Amount <= 0 {
		return nil, common.NewValidationError("deposit amount must be positive")
	}
	return s.apply(ctx, customerID, models.BhishiDeposit, input)
}

// Redeem withdraws from the balance. Overdrawing is rejected.
func (s *bhishiService) Redeem(ctx context.Context, customerID uuid.UUID, input *BhishiTransactionInput) (*models.Bhishi, error) {
	if input.Amount <= 0 {
		return nil, common.NewValidationError("redeem amount must be positive")
	}
	return s.apply(ctx, customerID, models.BhishiRedeem, input)
}

func (s *bhishiService) apply(ctx context.Context, customerID uuid.UUID, txType string, input *BhishiTransactionInput) (*models.Bhishi, error) {
	bhishi, err := s.bhishiRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, common.SecureErrorMessage("fetch bhishi account", err)
	}
	if bhishi == nil {
		return nil, common.NotFoundf("bhishi account for customer %s", customerID)
	}

	if txType == models.BhishiRedeem && input.Amount > bhishi.Balance {
		return nil, common.NewValidationError("Insufficient balance. Available: %s", common.FormatINR(bhishi.Balance))
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	bhishi.Transactions = append(bhishi.Transactions, models.BhishiTransaction{
		Date:   date,
		Type:   txType,
		Amount: input.Amount,
		Notes:  input.Notes,
	})
	if txType == models.BhishiDeposit {
		bhishi.Balance += input.Amount
	} else {
		bhishi.Balance -= input.Amount
	}
	bhishi.UpdatedAt = time.Now()

	if err := s.bhishiRepo.Update(ctx, bhishi); err != nil {
		return nil, common.SecureErrorMessage("update bhishi account", err)
	}
	return bhishi, nil
}

func (s *bhishiService) GetByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Bhishi, error) {
	bhishi, err := s.bhishiRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, common.SecureErrorMessage("fetch bhishi account", err)
	}
	if bhishi == nil {
		return nil, common.NotFoundf("bhishi account for customer %s", customerID)
	}
	return bhishi, nil
}

// ListAccounts pages through accounts with the customer name resolved.
// A search term narrows to matching customers. An account with no
// transaction in the last 60 days shows as inactive.
func (s *bhishiService) ListAccounts(ctx context.Context, search string, page, limit int) (*BhishiPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var customerIDs []uuid.UUID
	if search != "" {
		customers, err := s.customerRepo.Search(ctx, search)
		if err != nil {
			return nil, common.SecureErrorMessage("search customers", err)
		}
		if len(customers) == 0 {
			return &BhishiPage{Accounts: []models.BhishiListEntry{}, Page: page}, nil
		}
		for _, c := range customers {
			customerIDs = append(customerIDs, c.ID)
		}
	}

	total, err := s.bhishiRepo.Count(ctx, customerIDs)
	if err != nil {
		return nil, common.SecureErrorMessage("count bhishi accounts", err)
	}
	accounts, err := s.bhishiRepo.List(ctx, customerIDs, limit, (page-1)*limit)
	if err != nil {
		return nil, common.SecureErrorMessage("list bhishi accounts", err)
	}

	entries := make([]models.BhishiListEntry, 0, len(accounts))
	for _, bhishi := range accounts {
		entry := models.BhishiListEntry{
			ID:         bhishi.ID,
			CustomerID: bhishi.CustomerID,
			Balance:    bhishi.Balance,
			Status:     bhishiStatus(bhishi),
			CreatedAt:  bhishi.CreatedAt,
		}
		customer, err := s.customerRepo.GetByID(ctx, bhishi.CustomerID)
		if err != nil || customer == nil {
			if err != nil {
				log.Printf("Failed to resolve customer %s for bhishi %s: %v", bhishi.CustomerID, bhishi.ID, err)
			}
			entry.CustomerName = "Deleted User"
		} else {
			entry.CustomerName = customer.Name
		}
		entries = append(entries, entry)
	}

	totalPages := (total + limit - 1) / limit
	return &BhishiPage{Accounts: entries, Total: total, Page: page, TotalPages: totalPages}, nil
}

func bhishiStatus(bhishi *models.Bhishi) string {
	cutoff := time.Now().AddDate(0, 0, -60)
	for _, tx := range bhishi.Transactions {
		if tx.Date.After(cutoff) {
			return "active"
		}
	}
	return "inactive"
}
