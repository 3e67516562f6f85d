package services

import (
	"context"
	"testing"
	"time"

	"jewelmart/internal/common"
	"jewelmart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceTestSuite struct {
	suite.Suite
	customerRepo *MockCustomerRepository
	service      CustomerServiceInterface
	ctx          context.Context
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.customerRepo = &MockCustomerRepository{}
	suite.service = NewCustomerService(suite.customerRepo, nil)
	suite.ctx = context.Background()
}

func (suite *CustomerServiceTestSuite) TearDownTest() {
	suite.customerRepo.AssertExpectations(suite.T())
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_Success() {
	suite.customerRepo.On("GetByMobile", suite.ctx, "9876543210").Return(nil, nil)

	var persisted *models.Customer
	suite.customerRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Customer")).Return(nil).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*models.Customer)
	})

	customer, err := suite.service.CreateCustomer(suite.ctx, &CustomerInput{
		Name:   "Ramesh Patil",
		Mobile: "9876543210",
	})
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, customer.ID)
	assert.Equal(suite.T(), 0.0, persisted.TotalDue)
	assert.Equal(suite.T(), 0, persisted.LoyaltyPoints)
	assert.NotNil(suite.T(), persisted.History)
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_RejectsDuplicateMobile() {
	existing := &models.Customer{ID: uuid.New(), Name: "Someone", Mobile: "9876543210"}
	suite.customerRepo.On("GetByMobile", suite.ctx, "9876543210").Return(existing, nil)

	_, err := suite.service.CreateCustomer(suite.ctx, &CustomerInput{
		Name:   "Ramesh Patil",
		Mobile: "9876543210",
	})
	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_RejectsBadMobile() {
	_, err := suite.service.CreateCustomer(suite.ctx, &CustomerInput{
		Name:   "Ramesh Patil",
		Mobile: "12345",
	})
	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *CustomerServiceTestSuite) TestGetCustomer_NotFound() {
	missing := uuid.New()
	suite.customerRepo.On("GetByID", suite.ctx, missing).Return(nil, nil)

	_, err := suite.service.GetCustomerByID(suite.ctx, missing)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *CustomerServiceTestSuite) TestReconcile_RecomputesFromHistory() {
	inv1 := uuid.New()
	inv2 := uuid.New()
	customer := &models.Customer{
		ID:            uuid.New(),
		Name:          "Ramesh Patil",
		Mobile:        "9876543210",
		TotalDue:      99999, // drifted after an invoice deletion
		LoyaltyPoints: 9999,
		History: []models.PurchaseRecord{
			{InvoiceID: inv1, Date: time.Now(), TotalAmount: 52015, PaidAmount: 20000, DueAmount: 32015},
			{InvoiceID: inv2, Date: time.Now(), TotalAmount: 10000, PaidAmount: 10000, DueAmount: 0},
		},
	}

	suite.customerRepo.On("GetByID", suite.ctx, customer.ID).Return(customer, nil)
	suite.customerRepo.On("SetRollup", suite.ctx, customer.ID, 32015.0, 300).Return(nil)

	reconciled, err := suite.service.Reconcile(suite.ctx, customer.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 32015.0, reconciled.TotalDue)
	assert.Equal(suite.T(), 300, reconciled.LoyaltyPoints)
}

func (suite *CustomerServiceTestSuite) TestReconcile_EmptyHistoryZeroesRollup() {
	customer := &models.Customer{
		ID:            uuid.New(),
		Name:          "Ramesh Patil",
		Mobile:        "9876543210",
		TotalDue:      500,
		LoyaltyPoints: 50,
		History:       []models.PurchaseRecord{},
	}

	suite.customerRepo.On("GetByID", suite.ctx, customer.ID).Return(customer, nil)
	suite.customerRepo.On("SetRollup", suite.ctx, customer.ID, 0.0, 0).Return(nil)

	reconciled, err := suite.service.Reconcile(suite.ctx, customer.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.0, reconciled.TotalDue)
	assert.Equal(suite.T(), 0, reconciled.LoyaltyPoints)
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_KeepsRollupUntouched() {
	customer := &models.Customer{
		ID:            uuid.New(),
		Name:          "Ramesh Patil",
		Mobile:        "9876543210",
		TotalDue:      32015,
		LoyaltyPoints: 200,
	}

	suite.customerRepo.On("GetByID", suite.ctx, customer.ID).Return(customer, nil)
	suite.customerRepo.On("Update", suite.ctx, customer).Return(nil)

	updated, err := suite.service.UpdateCustomer(suite.ctx, customer.ID, &CustomerInput{
		Name:   "Ramesh B Patil",
		Mobile: "9876543210",
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Ramesh B Patil", updated.Name)
	assert.Equal(suite.T(), 32015.0, updated.TotalDue)
	assert.Equal(suite.T(), 200, updated.LoyaltyPoints)
}

func (suite *CustomerServiceTestSuite) TestDeleteCustomer_NotFound() {
	missing := uuid.New()
	suite.customerRepo.On("GetByID", suite.ctx, missing).Return(nil, nil)

	err := suite.service.DeleteCustomer(suite.ctx, missing)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}
