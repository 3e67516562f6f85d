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

type GoldLoanServiceTestSuite struct {
	suite.Suite
	loanRepo     *MockGoldLoanRepository
	customerRepo *MockCustomerRepository
	sequenceRepo *MockSequenceRepository
	service      GoldLoanServiceInterface
	customer     *models.Customer
	ctx          context.Context
}

func (suite *GoldLoanServiceTestSuite) SetupTest() {
	suite.loanRepo = &MockGoldLoanRepository{}
	suite.customerRepo = &MockCustomerRepository{}
	suite.sequenceRepo = &MockSequenceRepository{}
	suite.service = NewGoldLoanService(suite.loanRepo, suite.customerRepo, suite.sequenceRepo)
	suite.customer = &models.Customer{
		ID:     uuid.New(),
		Name:   "Suresh Jain",
		Mobile: "9822011223",
	}
	suite.ctx = context.Background()
}

func (suite *GoldLoanServiceTestSuite) TearDownTest() {
	suite.loanRepo.AssertExpectations(suite.T())
	suite.customerRepo.AssertExpectations(suite.T())
	suite.sequenceRepo.AssertExpectations(suite.T())
}

func TestGoldLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GoldLoanServiceTestSuite))
}

func (suite *GoldLoanServiceTestSuite) loanInput(amount float64) *CreateGoldLoanInput {
	return &CreateGoldLoanInput{
		CustomerID:   suite.customer.ID,
		LoanAmount:   amount,
		InterestRate: 12,
		Tenure:       12,
		Collateral: models.CollateralDetails{
			CollateralType: "gold",
			Purity:         "22K",
			Weight:         20,
			MarketValue:    100000,
		},
	}
}

func (suite *GoldLoanServiceTestSuite) TestCreateLoan_SimpleInterestPayoff() {
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)
	suite.sequenceRepo.On("Next", suite.ctx, "gold_loan").Return(int64(7), nil)

	var persisted *models.GoldLoan
	suite.loanRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.GoldLoan")).Return(nil).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*models.GoldLoan)
	})

	view, err := suite.service.CreateLoan(suite.ctx, suite.loanInput(80000))
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), view)

	// 80000 at 12% over 12 months owes the full year's interest up
	// front, and the sum must come out to the rupee.
	assert.Equal(suite.T(), 89600.0, persisted.RemainingAmount)
	assert.Equal(suite.T(), "GL000007", persisted.LoanNumber)
	assert.Equal(suite.T(), models.LoanStatusActive, persisted.Status)
	assert.Equal(suite.T(), 7466.67, persisted.EMI)
	assert.Equal(suite.T(), persisted.StartDate.AddDate(0, 1, 0), persisted.NextPaymentDue)
	assert.Equal(suite.T(), persisted.StartDate.AddDate(0, 12, 0), persisted.EndDate)
}

func (suite *GoldLoanServiceTestSuite) TestCreateLoan_StoresQuotedEMI() {
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)
	suite.sequenceRepo.On("Next", suite.ctx, "gold_loan").Return(int64(9), nil)

	var persisted *models.GoldLoan
	suite.loanRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.GoldLoan")).Return(nil).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*models.GoldLoan)
	})

	input := suite.loanInput(80000)
	input.EMI = 7500
	_, err := suite.service.CreateLoan(suite.ctx, input)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7500.0, persisted.EMI)
}

func (suite *GoldLoanServiceTestSuite) TestCreateLoan_AtExactLTVLimit() {
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)
	suite.sequenceRepo.On("Next", suite.ctx, "gold_loan").Return(int64(8), nil)
	suite.loanRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.GoldLoan")).Return(nil)

	_, err := suite.service.CreateLoan(suite.ctx, suite.loanInput(80000))
	assert.NoError(suite.T(), err)
}

func (suite *GoldLoanServiceTestSuite) TestCreateLoan_RejectsAboveLTVLimit() {
	_, err := suite.service.CreateLoan(suite.ctx, suite.loanInput(80001))
	assert.Error(suite.T(), err)
	assert.True(suite.T(), common.IsValidation(err))
	assert.Contains(suite.T(), err.Error(), "Rs. 80000.00")
}

func (suite *GoldLoanServiceTestSuite) TestCreateLoan_UnknownCustomer() {
	missing := uuid.New()
	suite.customerRepo.On("GetByID", suite.ctx, missing).Return(nil, nil)

	input := suite.loanInput(50000)
	input.CustomerID = missing
	_, err := suite.service.CreateLoan(suite.ctx, input)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *GoldLoanServiceTestSuite) activeLoan() *models.GoldLoan {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	return &models.GoldLoan{
		ID:              uuid.New(),
		LoanNumber:      "GL000001",
		CustomerID:      suite.customer.ID,
		LoanAmount:      80000,
		InterestRate:    12,
		StartDate:       start,
		Tenure:          12,
		EndDate:         start.AddDate(0, 12, 0),
		RemainingAmount: 89600,
		NextPaymentDue:  start.AddDate(0, 1, 0),
		Status:          models.LoanStatusActive,
		Repayments:      []models.Repayment{},
	}
}

func (suite *GoldLoanServiceTestSuite) TestAddRepayment_ReducesBalance() {
	loan := suite.activeLoan()
	paidOn := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	suite.loanRepo.On("GetByID", suite.ctx, loan.ID).Return(loan, nil)
	suite.loanRepo.On("Update", suite.ctx, loan).Return(nil)
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)

	view, err := suite.service.AddRepayment(suite.ctx, loan.ID, &RepaymentInput{Amount: 10000, Date: paidOn})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 79600.0, view.RemainingAmount)
	assert.Equal(suite.T(), models.LoanStatusActive, view.Status)
	assert.Equal(suite.T(), paidOn.AddDate(0, 1, 0), view.NextPaymentDue)
	assert.Len(suite.T(), view.Repayments, 1)
	assert.Equal(suite.T(), 10000.0, view.TotalRepaid)
}

func (suite *GoldLoanServiceTestSuite) TestAddRepayment_LateRepaymentResetsDueDate() {
	loan := suite.activeLoan()
	loan.NextPaymentDue = time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	paidOn := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.loanRepo.On("GetByID", suite.ctx, loan.ID).Return(loan, nil)
	suite.loanRepo.On("Update", suite.ctx, loan).Return(nil)
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)

	// A months-late payment must push the due date a month past the
	// payment, not a month past the missed date.
	view, err := suite.service.AddRepayment(suite.ctx, loan.ID, &RepaymentInput{Amount: 10000, Date: paidOn})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), view.NextPaymentDue)
}

func (suite *GoldLoanServiceTestSuite) TestAddRepayment_RoundsStoredAmount() {
	loan := suite.activeLoan()

	suite.loanRepo.On("GetByID", suite.ctx, loan.ID).Return(loan, nil)
	suite.loanRepo.On("Update", suite.ctx, loan).Return(nil)
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)

	view, err := suite.service.AddRepayment(suite.ctx, loan.ID, &RepaymentInput{Amount: 2500.125})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2500.13, view.Repayments[0].Amount)
	assert.Equal(suite.T(), 0.0, view.Repayments[0].InterestPaid)
	assert.Equal(suite.T(), 0.0, view.Repayments[0].PrincipalPaid)
	assert.Equal(suite.T(), 87099.88, view.Repayments[0].RemainingBalance)
}

func (suite *GoldLoanServiceTestSuite) TestAddRepayment_FullPayoffClosesLoan() {
	loan := suite.activeLoan()

	suite.loanRepo.On("GetByID", suite.ctx, loan.ID).Return(loan, nil)
	suite.loanRepo.On("Update", suite.ctx, loan).Return(nil)
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)

	view, err := suite.service.AddRepayment(suite.ctx, loan.ID, &RepaymentInput{Amount: 89600})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.0, view.RemainingAmount)
	assert.Equal(suite.T(), models.LoanStatusClosed, view.Status)
}

func (suite *GoldLoanServiceTestSuite) TestAddRepayment_OverpaymentClampsToZero() {
	loan := suite.activeLoan()
	loan.RemainingAmount = 500

	suite.loanRepo.On("GetByID", suite.ctx, loan.ID).Return(loan, nil)
	suite.loanRepo.On("Update", suite.ctx, loan).Return(nil)
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)

	view, err := suite.service.AddRepayment(suite.ctx, loan.ID, &RepaymentInput{Amount: 10000})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.0, view.RemainingAmount)
	assert.Equal(suite.T(), models.LoanStatusClosed, view.Status)
}

func (suite *GoldLoanServiceTestSuite) TestAddRepayment_RejectedForClosedLoan() {
	loan := suite.activeLoan()
	loan.Status = models.LoanStatusClosed

	suite.loanRepo.On("GetByID", suite.ctx, loan.ID).Return(loan, nil)

	_, err := suite.service.AddRepayment(suite.ctx, loan.ID, &RepaymentInput{Amount: 1000})
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "Cannot add repayment to closed loan")
}

func (suite *GoldLoanServiceTestSuite) TestAddRepayment_RejectsNonPositiveAmount() {
	_, err := suite.service.AddRepayment(suite.ctx, uuid.New(), &RepaymentInput{Amount: 0})
	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *GoldLoanServiceTestSuite) TestSetStatus_AllowsReopeningClosedLoan() {
	loan := suite.activeLoan()
	loan.Status = models.LoanStatusClosed

	suite.loanRepo.On("GetByID", suite.ctx, loan.ID).Return(loan, nil)
	suite.loanRepo.On("Update", suite.ctx, loan).Return(nil)
	suite.customerRepo.On("GetByID", suite.ctx, suite.customer.ID).Return(suite.customer, nil)

	view, err := suite.service.SetStatus(suite.ctx, loan.ID, models.LoanStatusActive)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.LoanStatusActive, view.Status)
}

func (suite *GoldLoanServiceTestSuite) TestSetStatus_RejectsUnknownStatus() {
	_, err := suite.service.SetStatus(suite.ctx, uuid.New(), "foreclosed")
	assert.True(suite.T(), common.IsValidation(err))
}

func (suite *GoldLoanServiceTestSuite) TestGetLoan_DeletedCustomerPlaceholder() {
	loan := suite.activeLoan()
	orphan := uuid.New()
	loan.CustomerID = orphan

	suite.loanRepo.On("GetByID", suite.ctx, loan.ID).Return(loan, nil)
	suite.customerRepo.On("GetByID", suite.ctx, orphan).Return(nil, nil)

	view, err := suite.service.GetLoanByID(suite.ctx, loan.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Deleted User", view.Customer.Name)
}

func TestTotalPayable(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		tenure    int
		want      float64
	}{
		{"one year at 12 percent", 80000, 12, 12, 89600},
		{"six months at 12 percent", 80000, 12, 6, 84800},
		{"zero interest", 50000, 0, 12, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Exact equality on purpose: round figures must not pick
			// up float drift on the way to the ledger.
			assert.Equal(t, tt.want, TotalPayable(tt.principal, tt.rate, tt.tenure))
		})
	}
}
