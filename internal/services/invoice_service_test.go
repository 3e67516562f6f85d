package services

import (
	"context"
	"testing"

	"jewelmart/internal/common"
	"jewelmart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	invoiceRepo  *MockInvoiceRepository
	customerRepo *MockCustomerRepository
	itemRepo     *MockItemRepository
	sequenceRepo *MockSequenceRepository
	service      InvoiceServiceInterface
	customer     *models.Customer
	ctx          context.Context
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.invoiceRepo = &MockInvoiceRepository{}
	suite.customerRepo = &MockCustomerRepository{}
	suite.itemRepo = &MockItemRepository{}
	suite.sequenceRepo = &MockSequenceRepository{}
	suite.service = NewInvoiceService(suite.invoiceRepo, suite.customerRepo, suite.itemRepo, suite.sequenceRepo)
	suite.customer = &models.Customer{
		ID:     uuid.New(),
		Name:   "Ramesh Patil",
		Mobile: "9876543210",
	}
	suite.ctx = context.Background()
}

func (suite *InvoiceServiceTestSuite) TearDownTest() {
	suite.invoiceRepo.AssertExpectations(suite.T())
	suite.customerRepo.AssertExpectations(suite.T())
	suite.sequenceRepo.AssertExpectations(suite.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

func (suite *InvoiceServiceTestSuite) goldChainInput(paid float64) *CreateInvoiceInput {
	return &CreateInvoiceInput{
		CustomerID: suite.customer.ID,
		Items: []LineItemInput{
			{ItemID: uuid.New(), Quantity: 1, Weight: 10, PricePerGram: 5000, MakingCharge: 500},
		},
		GST:        3,
		PaidAmount: paid,
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ComputesTotals() {
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)
	suite.sequenceRepo.On("Next", suite.ctx, "invoice").Return(int64(1), nil)
	suite.itemRepo.On("GetByID", suite.ctx, mock.Anything).Return(nil, nil)

	var persisted *models.Invoice
	suite.invoiceRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Invoice")).Return(nil).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*models.Invoice)
	})
	suite.customerRepo.On("ApplyInvoiceCreated", suite.ctx, suite.customer.ID, mock.AnythingOfType("models.PurchaseRecord"), 52015.0, 0).Return(nil)

	view, err := suite.service.CreateInvoice(suite.ctx, suite.goldChainInput(0))
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), view)

	assert.Equal(suite.T(), 50500.0, persisted.Subtotal)
	assert.Equal(suite.T(), 1515.0, persisted.GSTAmount)
	assert.Equal(suite.T(), 52015.0, persisted.TotalAmount)
	assert.Equal(suite.T(), 52015.0, persisted.DueAmount)
	assert.Equal(suite.T(), models.InvoiceStatusPending, persisted.Status)
	assert.Equal(suite.T(), int64(1), persisted.InvoiceNumber)
	assert.Equal(suite.T(), "Ramesh Patil", view.Customer.Name)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_PartialPayment() {
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)
	suite.sequenceRepo.On("Next", suite.ctx, "invoice").Return(int64(2), nil)
	suite.itemRepo.On("GetByID", suite.ctx, mock.Anything).Return(nil, nil)

	var persisted *models.Invoice
	suite.invoiceRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Invoice")).Return(nil).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*models.Invoice)
	})
	// 20000 paid earns 200 loyalty points; due drops to 32015
	suite.customerRepo.On("ApplyInvoiceCreated", suite.ctx, suite.customer.ID, mock.AnythingOfType("models.PurchaseRecord"), 32015.0, 200).Return(nil)

	_, err := suite.service.CreateInvoice(suite.ctx, suite.goldChainInput(20000))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.InvoiceStatusPartial, persisted.Status)
	assert.Equal(suite.T(), 32015.0, persisted.DueAmount)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_FullPaymentIsPaid() {
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)
	suite.sequenceRepo.On("Next", suite.ctx, "invoice").Return(int64(3), nil)
	suite.itemRepo.On("GetByID", suite.ctx, mock.Anything).Return(nil, nil)

	var persisted *models.Invoice
	suite.invoiceRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Invoice")).Return(nil).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*models.Invoice)
	})
	suite.customerRepo.On("ApplyInvoiceCreated", suite.ctx, suite.customer.ID, mock.AnythingOfType("models.PurchaseRecord"), 0.0, 520).Return(nil)

	_, err := suite.service.CreateInvoice(suite.ctx, suite.goldChainInput(52015))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.InvoiceStatusPaid, persisted.Status)
	assert.Equal(suite.T(), 0.0, persisted.DueAmount)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RejectsOverpayment() {
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)

	_, err := suite.service.CreateInvoice(suite.ctx, suite.goldChainInput(60000))
	assert.Error(suite.T(), err)
	assert.True(suite.T(), common.IsValidation(err))
	assert.Contains(suite.T(), err.Error(), "Paid amount cannot be greater than the total amount")
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_UnknownCustomer() {
	missing := uuid.New()
	suite.customerRepo.On("GetByID", suite.ctx, missing).Return(nil, nil)

	input := suite.goldChainInput(0)
	input.CustomerID = missing
	_, err := suite.service.CreateInvoice(suite.ctx, input)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RejectsEmptyItems() {
	_, err := suite.service.CreateInvoice(suite.ctx, &CreateInvoiceInput{
		CustomerID: suite.customer.ID,
		Items:      []LineItemInput{},
		GST:        3,
	})
	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_QuantityDefaultsToOne() {
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)
	suite.sequenceRepo.On("Next", suite.ctx, "invoice").Return(int64(4), nil)
	suite.itemRepo.On("GetByID", suite.ctx, mock.Anything).Return(nil, nil)

	var persisted *models.Invoice
	suite.invoiceRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Invoice")).Return(nil).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*models.Invoice)
	})
	suite.customerRepo.On("ApplyInvoiceCreated", suite.ctx, suite.customer.ID, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	input := suite.goldChainInput(0)
	input.Items[0].Quantity = 0
	_, err := suite.service.CreateInvoice(suite.ctx, input)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, persisted.Items[0].Quantity)
	assert.Equal(suite.T(), 50500.0, persisted.Items[0].TotalPrice)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_AppliesDeltas() {
	invoiceID := uuid.New()
	original := &models.Invoice{
		ID:          invoiceID,
		CustomerID:  suite.customer.ID,
		Subtotal:    50500,
		GST:         3,
		GSTAmount:   1515,
		TotalAmount: 52015,
		PaidAmount:  0,
		DueAmount:   52015,
		Status:      models.InvoiceStatusPending,
		Items: []models.InvoiceItem{
			{ItemID: uuid.New(), Quantity: 1, Weight: 10, PricePerGram: 5000, MakingCharge: 500, TotalPrice: 50500},
		},
	}

	suite.invoiceRepo.On("GetByID", suite.ctx, invoiceID).Return(original, nil)
	suite.itemRepo.On("GetByID", suite.ctx, mock.Anything).Return(nil, nil)

	var updated *models.Invoice
	suite.invoiceRepo.On("Update", suite.ctx, mock.AnythingOfType("*models.Invoice")).Return(nil).Run(func(args mock.Arguments) {
		updated = args.Get(1).(*models.Invoice)
	})
	// Recording a 20000 payment: due shrinks by 20000, loyalty grows by 200.
	suite.customerRepo.On("ApplyInvoiceUpdated", suite.ctx, suite.customer.ID, invoiceID, mock.AnythingOfType("models.PurchaseRecord"), -20000.0, 200).Return(nil)
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)

	_, err := suite.service.UpdateInvoice(suite.ctx, invoiceID, &UpdateInvoiceInput{
		Items: []LineItemInput{
			{ItemID: original.Items[0].ItemID, Quantity: 1, Weight: 10, PricePerGram: 5000, MakingCharge: 500},
		},
		GST:        3,
		PaidAmount: 20000,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.InvoiceStatusPartial, updated.Status)
	assert.Equal(suite.T(), 32015.0, updated.DueAmount)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_AllowsOverpayment() {
	invoiceID := uuid.New()
	original := &models.Invoice{
		ID:          invoiceID,
		CustomerID:  suite.customer.ID,
		TotalAmount: 52015,
		DueAmount:   52015,
		Status:      models.InvoiceStatusPending,
		Items: []models.InvoiceItem{
			{ItemID: uuid.New(), Quantity: 1, Weight: 10, PricePerGram: 5000, MakingCharge: 500, TotalPrice: 50500},
		},
	}

	suite.invoiceRepo.On("GetByID", suite.ctx, invoiceID).Return(original, nil)
	suite.itemRepo.On("GetByID", suite.ctx, mock.Anything).Return(nil, nil)
	suite.invoiceRepo.On("Update", suite.ctx, mock.AnythingOfType("*models.Invoice")).Return(nil)
	suite.customerRepo.On("ApplyInvoiceUpdated", suite.ctx, suite.customer.ID, invoiceID, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)

	view, err := suite.service.UpdateInvoice(suite.ctx, invoiceID, &UpdateInvoiceInput{
		Items: []LineItemInput{
			{ItemID: original.Items[0].ItemID, Quantity: 1, Weight: 10, PricePerGram: 5000, MakingCharge: 500},
		},
		GST:        3,
		PaidAmount: 60000,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.InvoiceStatusPaid, view.Status)
	assert.Equal(suite.T(), 0.0, view.DueAmount)
}

func (suite *InvoiceServiceTestSuite) TestGetInvoice_DeletedCustomerPlaceholder() {
	invoiceID := uuid.New()
	orphanCustomer := uuid.New()
	invoice := &models.Invoice{
		ID:         invoiceID,
		CustomerID: orphanCustomer,
		Items:      []models.InvoiceItem{},
	}

	suite.invoiceRepo.On("GetByID", suite.ctx, invoiceID).Return(invoice, nil)
	suite.customerRepo.On("GetByID", suite.ctx, orphanCustomer).Return(nil, nil)

	view, err := suite.service.GetInvoiceByID(suite.ctx, invoiceID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Deleted User", view.Customer.Name)
	assert.Equal(suite.T(), "Deleted User", view.Customer.Mobile)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_NotFound() {
	missing := uuid.New()
	suite.invoiceRepo.On("GetByID", suite.ctx, missing).Return(nil, nil)

	err := suite.service.DeleteInvoice(suite.ctx, missing)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}
