package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"jewelmart/internal/common"
	"jewelmart/internal/models"
	"jewelmart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BhishiHandlers handles bhishi savings HTTP requests
type BhishiHandlers struct {
	bhishiService services.BhishiServiceInterface
}

// NewBhishiHandlers creates a new bhishi handlers instance
func NewBhishiHandlers(bhishiService services.BhishiServiceInterface) *BhishiHandlers {
	return &BhishiHandlers{bhishiService: bhishiService}
}

// OpenAccountRequest represents the account opening payload
type OpenAccountRequest struct {
	CustomerID     string  `json:"customer_id"`
	InitialDeposit float64 `json:"initial_deposit"`
}

// BhishiTransactionRequest represents a deposit or redeem payload
type BhishiTransactionRequest struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Notes  string    `json:"notes"`
}

// OpenAccount handles POST /bhishi
func (h *BhishiHandlers) OpenAccount(c echo.Context) error {
	ctx := c.Request().Context()

	var req OpenAccountRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	customerID, err := common.ValidateUUID(req.CustomerID, "customer_id")
	if err != nil {
		return common.SendError(c, err)
	}

	bhishi, err := h.bhishiService.OpenAccount(ctx, customerID, req.InitialDeposit)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, bhishi)
}

// GetAccount handles GET /bhishi/:customerId
func (h *BhishiHandlers) GetAccount(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := common.ValidateUUID(c.Param("customerId"), "customer id")
	if err != nil {
		return common.SendError(c, err)
	}

	bhishi, err := h.bhishiService.GetByCustomer(ctx, customerID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, bhishi)
}

// Deposit handles POST /bhishi/:customerId/deposit
func (h *BhishiHandlers) Deposit(c echo.Context) error {
	return h.transact(c, h.bhishiService.Deposit)
}

// Redeem handles POST /bhishi/:customerId/redeem
func (h *BhishiHandlers) Redeem(c echo.Context) error {
	return h.transact(c, h.bhishiService.Redeem)
}

func (h *BhishiHandlers) transact(c echo.Context, apply func(ctx context.Context, customerID uuid.UUID, input *services.BhishiTransactionInput) (*models.Bhishi, error)) error {
	ctx := c.Request().Context()

	customerID, err := common.ValidateUUID(c.Param("customerId"), "customer id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req BhishiTransactionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	bhishi, err := apply(ctx, customerID, &services.BhishiTransactionInput{
		Amount: req.Amount,
		Date:   req.Date,
		Notes:  req.Notes,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, bhishi)
}

// ListAccounts handles GET /bhishi
func (h *BhishiHandlers) ListAccounts(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	search := c.QueryParam("search")

	result, err := h.bhishiService.ListAccounts(ctx, search, page, limit)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
