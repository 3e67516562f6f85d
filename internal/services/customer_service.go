package services

import (
	"context"
	"log"
	"time"

	"jewelmart/internal/caching"
	"jewelmart/internal/common"
	"jewelmart/internal/models"
	"jewelmart/internal/repositories"

	"github.com/google/uuid"
)

const customerCacheTTL = 5 * time.Minute

type CustomerInput struct {
	Name        string
	Mobile      string
	Email       *string
	Address     *string
	DateOfBirth *time.Time
	Notes       *string
}

// CustomerPage is one page of a customer listing.
type CustomerPage struct {
	Customers  []*models.Customer `json:"customers"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

// CustomerServiceInterface defines the interface for customer operations
type CustomerServiceInterface interface {
	CreateCustomer(ctx context.Context, input *CustomerInput) (*models.Customer, error)
	GetCustomerByID(ctx context.Context, customerID uuid.UUID) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customerID uuid.UUID, input *CustomerInput) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, customerID uuid.UUID) error
	ListCustomers(ctx context.Context, search string, page, limit int) (*CustomerPage, error)
	Reconcile(ctx context.Context, customerID uuid.UUID) (*models.Customer, error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
	cache        caching.CacheService
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repositories.CustomerRepository, cache caching.CacheService) CustomerServiceInterface {
	return &customerService{customerRepo: customerRepo, cache: cache}
}

func validateCustomerInput(input *CustomerInput) error {
	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return err
	}
	return common.ValidateMobile(input.Mobile, "mobile")
}

// CreateCustomer registers a customer. Mobile numbers are unique across
// the shop; a duplicate is rejected before insert.
func (s *customerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*models.Customer, error) {
	if err := validateCustomerInput(input); err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.GetByMobile(ctx, input.Mobile)
	if err != nil {
		return nil, common.SecureErrorMessage("check mobile uniqueness", err)
	}
	if existing != nil {
		return nil, common.NewValidationError("a customer with mobile %s already exists", input.Mobile)
	}

	customer := &models.Customer{
		ID:          uuid.New(),
		Name:        input.Name,
		Mobile:      input.Mobile,
		Email:       input.Email,
		Address:     input.Address,
		DateOfBirth: input.DateOfBirth,
		Notes:       input.Notes,
		History:     []models.PurchaseRecord{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, common.SecureErrorMessage("create customer", err)
	}
	return customer, nil
}

// GetCustomerByID reads through the cache. A miss falls back to the
// database and repopulates the cache best-effort.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCustomer(ctx, customerID); err == nil && cached != nil {
			return cached, nil
		}
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, common.SecureErrorMessage("fetch customer", err)
	}
	if customer == nil {
		return nil, common.NotFoundf("customer %s", customerID)
	}

	if s.cache != nil {
		if err := s.cache.SetCustomer(ctx, customer, customerCacheTTL); err != nil {
			log.Printf("Failed to cache customer %s: %v", customerID, err)
		}
	}
	return customer, nil
}

// UpdateCustomer edits contact fields only. The rollup accumulators and
// purchase history move through invoice operations, never through here.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID uuid.UUID, input *CustomerInput) (*models.Customer, error) {
	if err := validateCustomerInput(input); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, common.SecureErrorMessage("fetch customer", err)
	}
	if customer == nil {
		return nil, common.NotFoundf("customer %s", customerID)
	}

	if input.Mobile != customer.Mobile {
		existing, err := s.customerRepo.GetByMobile(ctx, input.Mobile)
		if err != nil {
			return nil, common.SecureErrorMessage("check mobile uniqueness", err)
		}
		if existing != nil && existing.ID != customerID {
			return nil, common.NewValidationError("a customer with mobile %s already exists", input.Mobile)
		}
	}

	customer.Name = input.Name
	customer.Mobile = input.Mobile
	customer.Email = input.Email
	customer.Address = input.Address
	customer.DateOfBirth = input.DateOfBirth
	customer.Notes = input.Notes
	customer.UpdatedAt = time.Now()

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, common.SecureErrorMessage("update customer", err)
	}
	s.invalidate(ctx, customerID)
	return customer, nil
}

// DeleteCustomer hard-deletes the record. Invoices and loans that
// reference it keep working and render the deleted-customer
// placeholder.
func (s *customerService) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return common.SecureErrorMessage("fetch customer", err)
	}
	if customer == nil {
		return common.NotFoundf("customer %s", customerID)
	}
	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		return common.SecureErrorMessage("delete customer", err)
	}
	s.invalidate(ctx, customerID)
	return nil
}

func (s *customerService) ListCustomers(ctx context.Context, search string, page, limit int) (*CustomerPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	if search != "" {
		customers, err := s.customerRepo.Search(ctx, search)
		if err != nil {
			return nil, common.SecureErrorMessage("search customers", err)
		}
		total := len(customers)
		start := (page - 1) * limit
		if start > total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}
		totalPages := (total + limit - 1) / limit
		return &CustomerPage{Customers: customers[start:end], Total: total, Page: page, TotalPages: totalPages}, nil
	}

	total, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, common.SecureErrorMessage("count customers", err)
	}
	customers, err := s.customerRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, common.SecureErrorMessage("list customers", err)
	}
	totalPages := (total + limit - 1) / limit
	return &CustomerPage{Customers: customers, Total: total, Page: page, TotalPages: totalPages}, nil
}

// Reconcile recomputes totalDue and loyaltyPoints by folding over the
// purchase history and overwrites the stored accumulators. This is the
// repair path for drift left behind by invoice deletion or a partially
// applied update.
func (s *customerService) Reconcile(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, common.SecureErrorMessage("fetch customer", err)
	}
	if customer == nil {
		return nil, common.NotFoundf("customer %s", customerID)
	}

	var totalDue float64
	var loyaltyPoints int
	for _, record := range customer.History {
		totalDue += record.DueAmount
		loyaltyPoints += common.LoyaltyPoints(record.PaidAmount)
	}

	if err := s.customerRepo.SetRollup(ctx, customerID, totalDue, loyaltyPoints); err != nil {
		return nil, common.SecureErrorMessage("reconcile customer", err)
	}
	customer.TotalDue = totalDue
	customer.LoyaltyPoints = loyaltyPoints
	s.invalidate(ctx, customerID)
	return customer, nil
}

func (s *customerService) invalidate(ctx context.Context, customerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteCustomer(ctx, customerID); err != nil {
		log.Printf("Failed to invalidate customer cache %s: %v", customerID, err)
	}
}
