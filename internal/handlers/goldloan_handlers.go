package handlers

import (
	"net/http"
	"time"

	"jewelmart/internal/common"
	"jewelmart/internal/models"
	"jewelmart/internal/repositories"
	"jewelmart/internal/services"

	"github.com/labstack/echo/v4"
)

// GoldLoanHandlers handles gold loan HTTP requests
type GoldLoanHandlers struct {
	loanService services.GoldLoanServiceInterface
}

// NewGoldLoanHandlers creates a new gold loan handlers instance
func NewGoldLoanHandlers(loanService services.GoldLoanServiceInterface) *GoldLoanHandlers {
	return &GoldLoanHandlers{loanService: loanService}
}

// GoldLoanRequest represents the loan creation payload
type GoldLoanRequest struct {
	CustomerID   string                   `json:"customer_id"`
	LoanAmount   float64                  `json:"loan_amount"`
	InterestRate float64                  `json:"interest_rate"`
	Tenure       int                      `json:"tenure"`
	StartDate    time.Time                `json:"start_date"`
	Collateral   models.CollateralDetails `json:"collateral_details"`
	EMI          float64                  `json:"emi"`
	Notes        string                   `json:"notes"`
}

// RepaymentRequest represents the repayment payload
type RepaymentRequest struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// StatusRequest represents the status change payload
type StatusRequest struct {
	Status string `json:"status"`
}

// CreateLoan handles POST /gold-loans
func (h *GoldLoanHandlers) CreateLoan(c echo.Context) error {
	ctx := c.Request().Context()

	var req GoldLoanRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	customerID, err := common.ValidateUUID(req.CustomerID, "customer_id")
	if err != nil {
		return common.SendError(c, err)
	}

	loan, err := h.loanService.CreateLoan(ctx, &services.CreateGoldLoanInput{
		CustomerID:   customerID,
		LoanAmount:   req.LoanAmount,
		InterestRate: req.InterestRate,
		Tenure:       req.Tenure,
		StartDate:    req.StartDate,
		Collateral:   req.Collateral,
		EMI:          req.EMI,
		Notes:        req.Notes,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, loan)
}

// GetLoan handles GET /gold-loans/:id
func (h *GoldLoanHandlers) GetLoan(c echo.Context) error {
	ctx := c.Request().Context()

	loanID, err := common.ValidateUUID(c.Param("id"), "loan id")
	if err != nil {
		return common.SendError(c, err)
	}

	loan, err := h.loanService.GetLoanByID(ctx, loanID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, loan)
}

// ListLoans handles GET /gold-loans
func (h *GoldLoanHandlers) ListLoans(c echo.Context) error {
	ctx := c.Request().Context()

	filter := &repositories.LoanFilter{}
	if customerIDStr := c.QueryParam("customer_id"); customerIDStr != "" {
		customerID, err := common.ValidateUUID(customerIDStr, "customer_id")
		if err != nil {
			return common.SendError(c, err)
		}
		filter.CustomerID = &customerID
	}
	if status := c.QueryParam("status"); status != "" {
		filter.Status = &status
	}

	loans, err := h.loanService.ListLoans(ctx, filter)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

// AddRepayment handles POST /gold-loans/:id/repayments
func (h *GoldLoanHandlers) AddRepayment(c echo.Context) error {
	ctx := c.Request().Context()

	loanID, err := common.ValidateUUID(c.Param("id"), "loan id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req RepaymentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	loan, err := h.loanService.AddRepayment(ctx, loanID, &services.RepaymentInput{
		Amount: req.Amount,
		Date:   req.Date,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, loan)
}

// UpdateStatus handles PUT /gold-loans/:id/status
func (h *GoldLoanHandlers) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	loanID, err := common.ValidateUUID(c.Param("id"), "loan id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	loan, err := h.loanService.SetStatus(ctx, loanID, req.Status)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, loan)
}

// DeleteLoan handles DELETE /gold-loans/:id
func (h *GoldLoanHandlers) DeleteLoan(c echo.Context) error {
	ctx := c.Request().Context()

	loanID, err := common.ValidateUUID(c.Param("id"), "loan id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.loanService.DeleteLoan(ctx, loanID); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Gold loan deleted successfully"})
}
