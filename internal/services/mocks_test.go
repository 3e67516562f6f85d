package services

import (
	"context"
	"time"

	"jewelmart/internal/models"
	"jewelmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByMobile(ctx context.Context, mobile string) (*models.Customer, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Search(ctx context.Context, query string) ([]*models.Customer, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCustomerRepository) ApplyInvoiceCreated(ctx context.Context, customerID uuid.UUID, entry models.PurchaseRecord, dueDelta float64, loyaltyDelta int) error {
	args := m.Called(ctx, customerID, entry, dueDelta, loyaltyDelta)
	return args.Error(0)
}

func (m *MockCustomerRepository) ApplyInvoiceUpdated(ctx context.Context, customerID, invoiceID uuid.UUID, entry models.PurchaseRecord, dueDelta float64, loyaltyDelta int) error {
	args := m.Called(ctx, customerID, invoiceID, entry, dueDelta, loyaltyDelta)
	return args.Error(0)
}

func (m *MockCustomerRepository) SetRollup(ctx context.Context, customerID uuid.UUID, totalDue float64, loyaltyPoints int) error {
	args := m.Called(ctx, customerID, totalDue, loyaltyPoints)
	return args.Error(0)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) List(ctx context.Context, search *repositories.InvoiceSearch, limit, offset int) ([]*models.Invoice, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, search *repositories.InvoiceSearch) (int, error) {
	args := m.Called(ctx, search)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceRepository) SumPendingDues(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockInvoiceRepository) SalesByMonth(ctx context.Context) ([]repositories.MonthlySales, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repositories.MonthlySales), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) List(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *MockItemRepository) StockByType(ctx context.Context) ([]repositories.StockLevel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repositories.StockLevel), args.Error(1)
}

type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

type MockGoldLoanRepository struct {
	mock.Mock
}

func (m *MockGoldLoanRepository) Create(ctx context.Context, loan *models.GoldLoan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockGoldLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GoldLoan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GoldLoan), args.Error(1)
}

func (m *MockGoldLoanRepository) Update(ctx context.Context, loan *models.GoldLoan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockGoldLoanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGoldLoanRepository) List(ctx context.Context, filter *repositories.LoanFilter) ([]*models.GoldLoan, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.GoldLoan), args.Error(1)
}

func (m *MockGoldLoanRepository) SumActiveOutstanding(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockGoldLoanRepository) ListDueBefore(ctx context.Context, cutoff time.Time) ([]*models.GoldLoan, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]*models.GoldLoan), args.Error(1)
}

type MockBhishiRepository struct {
	mock.Mock
}

func (m *MockBhishiRepository) Create(ctx context.Context, bhishi *models.Bhishi) error {
	args := m.Called(ctx, bhishi)
	return args.Error(0)
}

func (m *MockBhishiRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Bhishi, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bhishi), args.Error(1)
}

func (m *MockBhishiRepository) Update(ctx context.Context, bhishi *models.Bhishi) error {
	args := m.Called(ctx, bhishi)
	return args.Error(0)
}

func (m *MockBhishiRepository) List(ctx context.Context, customerIDs []uuid.UUID, limit, offset int) ([]*models.Bhishi, error) {
	args := m.Called(ctx, customerIDs, limit, offset)
	return args.Get(0).([]*models.Bhishi), args.Error(1)
}

func (m *MockBhishiRepository) Count(ctx context.Context, customerIDs []uuid.UUID) (int, error) {
	args := m.Called(ctx, customerIDs)
	return args.Int(0), args.Error(1)
}
