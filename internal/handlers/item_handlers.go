package handlers

import (
	"net/http"
	"strconv"
	"time"

	"jewelmart/internal/common"
	"jewelmart/internal/models"
	"jewelmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ItemHandlers handles inventory item HTTP requests
type ItemHandlers struct {
	itemRepo repositories.ItemRepository
}

// NewItemHandlers creates a new item handlers instance
func NewItemHandlers(itemRepo repositories.ItemRepository) *ItemHandlers {
	return &ItemHandlers{itemRepo: itemRepo}
}

// ItemRequest represents the create/update payload
type ItemRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	ItemType string  `json:"item_type"`
	Purity   string  `json:"purity"`
	Weight   float64 `json:"weight"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func (r *ItemRequest) validate() error {
	if err := common.ValidateRequiredString(r.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(r.ItemType, "item_type"); err != nil {
		return err
	}
	if r.Weight < 0 {
		return common.NewValidationError("weight cannot be negative")
	}
	if r.Quantity < 0 {
		return common.NewValidationError("quantity cannot be negative")
	}
	return nil
}

// CreateItem handles POST /items
func (h *ItemHandlers) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := req.validate(); err != nil {
		return common.SendError(c, err)
	}

	item := &models.Item{
		ID:        uuid.New(),
		Name:      req.Name,
		Category:  req.Category,
		ItemType:  req.ItemType,
		Purity:    req.Purity,
		Weight:    req.Weight,
		Quantity:  req.Quantity,
		Price:     req.Price,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.itemRepo.Create(ctx, item); err != nil {
		return common.SendError(c, common.SecureErrorMessage("create item", err))
	}
	return c.JSON(http.StatusCreated, item)
}

// GetItem handles GET /items/:id
func (h *ItemHandlers) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("id"), "item id")
	if err != nil {
		return common.SendError(c, err)
	}

	item, err := h.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return common.SendError(c, common.SecureErrorMessage("fetch item", err))
	}
	if item == nil {
		return common.SendNotFoundError(c, "Item")
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateItem handles PUT /items/:id
func (h *ItemHandlers) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("id"), "item id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := req.validate(); err != nil {
		return common.SendError(c, err)
	}

	item, err := h.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return common.SendError(c, common.SecureErrorMessage("fetch item", err))
	}
	if item == nil {
		return common.SendNotFoundError(c, "Item")
	}

	item.Name = req.Name
	item.Category = req.Category
	item.ItemType = req.ItemType
	item.Purity = req.Purity
	item.Weight = req.Weight
	item.Quantity = req.Quantity
	item.Price = req.Price
	item.UpdatedAt = time.Now()

	if err := h.itemRepo.Update(ctx, item); err != nil {
		return common.SendError(c, common.SecureErrorMessage("update item", err))
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /items/:id
func (h *ItemHandlers) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := common.ValidateUUID(c.Param("id"), "item id")
	if err != nil {
		return common.SendError(c, err)
	}

	item, err := h.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return common.SendError(c, common.SecureErrorMessage("fetch item", err))
	}
	if item == nil {
		return common.SendNotFoundError(c, "Item")
	}

	if err := h.itemRepo.Delete(ctx, itemID); err != nil {
		return common.SendError(c, common.SecureErrorMessage("delete item", err))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

// ListItems handles GET /items
func (h *ItemHandlers) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 20
	}

	items, err := h.itemRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return common.SendError(c, common.SecureErrorMessage("list items", err))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"page":  page,
	})
}
