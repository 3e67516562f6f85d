package handlers

import (
	"net/http"
	"strconv"
	"time"

	"jewelmart/internal/common"
	"jewelmart/internal/services"

	"github.com/labstack/echo/v4"
)

// CustomerHandlers handles customer-related HTTP requests
type CustomerHandlers struct {
	customerService services.CustomerServiceInterface
}

// NewCustomerHandlers creates a new customer handlers instance
func NewCustomerHandlers(customerService services.CustomerServiceInterface) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService}
}

// CustomerRequest represents the create/update payload
type CustomerRequest struct {
	Name        string     `json:"name"`
	Mobile      string     `json:"mobile"`
	Email       *string    `json:"email"`
	Address     *string    `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Notes       *string    `json:"notes"`
}

func (r *CustomerRequest) toInput() *services.CustomerInput {
	return &services.CustomerInput{
		Name:        r.Name,
		Mobile:      r.Mobile,
		Email:       r.Email,
		Address:     r.Address,
		DateOfBirth: r.DateOfBirth,
		Notes:       r.Notes,
	}
}

// CreateCustomer handles POST /customers
func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	customer, err := h.customerService.CreateCustomer(ctx, req.toInput())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

// GetCustomer handles GET /customers/:id
func (h *CustomerHandlers) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := common.ValidateUUID(c.Param("id"), "customer id")
	if err != nil {
		return common.SendError(c, err)
	}

	customer, err := h.customerService.GetCustomerByID(ctx, customerID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles PUT /customers/:id
func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := common.ValidateUUID(c.Param("id"), "customer id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	customer, err := h.customerService.UpdateCustomer(ctx, customerID, req.toInput())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /customers/:id
func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := common.ValidateUUID(c.Param("id"), "customer id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.customerService.DeleteCustomer(ctx, customerID); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}

// ListCustomers handles GET /customers
func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	search := c.QueryParam("search")

	result, err := h.customerService.ListCustomers(ctx, search, page, limit)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ReconcileCustomer handles POST /customers/:id/reconcile
func (h *CustomerHandlers) ReconcileCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	customerID, err := common.ValidateUUID(c.Param("id"), "customer id")
	if err != nil {
		return common.SendError(c, err)
	}

	customer, err := h.customerService.Reconcile(ctx, customerID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}
