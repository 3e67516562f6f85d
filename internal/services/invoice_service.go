package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"jewelmart/internal/common"
	"jewelmart/internal/models"
	"jewelmart/internal/repositories"

	"github.com/google/uuid"
)

// LineItemInput is a billed line as submitted by the client. Totals are
// never taken from the client; the service recomputes everything.
type LineItemInput struct {
	ItemID       uuid.UUID `json:"itemId"`
	Quantity     int       `json:"quantity"`
	Weight       float64   `json:"weight"`
	PricePerGram float64   `json:"pricePerGram"`
	MakingCharge float64   `json:"makingCharge"`
}

type CreateInvoiceInput struct {
	CustomerID    uuid.UUID
	Items         []LineItemInput
	DueDate       time.Time
	PaymentMethod string
	Notes         string
	GST           float64
	PaidAmount    float64
	Date          time.Time
}

type UpdateInvoiceInput struct {
	Items         []LineItemInput
	DueDate       time.Time
	PaymentMethod string
	Notes         string
	GST           float64
	PaidAmount    float64
}

// InvoicePage is one page of a listing.
type InvoicePage struct {
	Invoices   []*models.InvoiceView `json:"invoices"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"totalPages"`
}

// InvoiceServiceInterface defines the interface for invoice operations
type InvoiceServiceInterface interface {
	CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*models.InvoiceView, error)
	GetInvoiceByID(ctx context.Context, invoiceID uuid.UUID) (*models.InvoiceView, error)
	ListInvoices(ctx context.Context, search string, page, limit int) (*InvoicePage, error)
	UpdateInvoice(ctx context.Context, invoiceID uuid.UUID, input *UpdateInvoiceInput) (*models.InvoiceView, error)
	DeleteInvoice(ctx context.Context, invoiceID uuid.UUID) error
}

type invoiceService struct {
	invoiceRepo  repositories.InvoiceRepository
	customerRepo repositories.CustomerRepository
	itemRepo     repositories.ItemRepository
	sequenceRepo repositories.SequenceRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repositories.InvoiceRepository, customerRepo repositories.CustomerRepository, itemRepo repositories.ItemRepository, sequenceRepo repositories.SequenceRepository) InvoiceServiceInterface {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		sequenceRepo: sequenceRepo,
	}
}

// ComputeLineItems derives each line's total and the invoice subtotal.
// A line total is quantity * (weight * pricePerGram + makingCharge),
// with quantity defaulting to 1. Applied identically on create and
// update so both paths agree.
func ComputeLineItems(inputs []LineItemInput) ([]models.InvoiceItem, float64) {
	items := make([]models.InvoiceItem, 0, len(inputs))
	var subtotal float64
	for _, in := range inputs {
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}
		total := float64(qty) * (in.Weight*in.PricePerGram + in.MakingCharge)
		items = append(items, models.InvoiceItem{
			ItemID:       in.ItemID,
			Quantity:     qty,
			Weight:       in.Weight,
			PricePerGram: in.PricePerGram,
			MakingCharge: in.MakingCharge,
			TotalPrice:   total,
		})
		subtotal += total
	}
	return items, subtotal
}

// DeriveStatus maps paid-vs-total onto the payment status and due amount.
func DeriveStatus(paidAmount, totalAmount float64) (string, float64) {
	switch {
	case paidAmount >= totalAmount:
		return models.InvoiceStatusPaid, 0
	case paidAmount > 0:
		return models.InvoiceStatusPartial, totalAmount - paidAmount
	default:
		return models.InvoiceStatusPending, totalAmount
	}
}

func validateInvoiceInput(items []LineItemInput, gst float64, paymentMethod string) error {
	if len(items) == 0 {
		return common.NewValidationError("invoice must contain at least one item")
	}
	for i, item := range items {
		if item.ItemID == uuid.Nil {
			return common.NewValidationError("items[%d]: itemId is required", i)
		}
		if item.Weight <= 0 {
			return common.NewValidationError("items[%d]: weight must be positive", i)
		}
		if item.PricePerGram <= 0 {
			return common.NewValidationError("items[%d]: pricePerGram must be positive", i)
		}
		if item.MakingCharge < 0 {
			return common.NewValidationError("items[%d]: makingCharge cannot be negative", i)
		}
	}
	if gst < 0 || gst > 100 {
		return common.NewValidationError("gst must be between 0 and 100")
	}
	if paymentMethod != "" && !models.ValidPaymentMethod(paymentMethod) {
		return common.NewValidationError("payment method must be one of: cash, card, upi, bank, cheque")
	}
	return nil
}

// CreateInvoice computes all derived totals, assigns the next invoice
// number and applies the customer rollup side effect. The invoice write
// and the rollup are sequential, not transactional: if the rollup
// fails, the persisted invoice stays and the error is surfaced.
func (s *invoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*models.InvoiceView, error) {
	if err := validateInvoiceInput(input.Items, input.GST, input.PaymentMethod); err != nil {
		return nil, err
	}
	if input.PaidAmount < 0 {
		return nil, common.NewValidationError("paid amount cannot be negative")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, common.SecureErrorMessage("look up customer", err)
	}
	if customer == nil {
		return nil, common.NotFoundf("customer %s", input.CustomerID)
	}

	items, subtotal := ComputeLineItems(input.Items)
	gstAmount := common.PercentOf(subtotal, input.GST)
	totalAmount := subtotal + gstAmount

	if input.PaidAmount > totalAmount {
		return nil, common.NewValidationError("Paid amount cannot be greater than the total amount.")
	}

	number, err := s.sequenceRepo.Next(ctx, repositories.SequenceInvoice)
	if err != nil {
		return nil, common.SecureErrorMessage("generate invoice number", err)
	}

	status, dueAmount := DeriveStatus(input.PaidAmount, totalAmount)

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCash
	}

	invoice := &models.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: number,
		Date:          date,
		DueDate:       input.DueDate,
		CustomerID:    input.CustomerID,
		Items:         items,
		Subtotal:      subtotal,
		GST:           input.GST,
		GSTAmount:     gstAmount,
		TotalAmount:   totalAmount,
		PaidAmount:    input.PaidAmount,
		DueAmount:     dueAmount,
		PaymentMethod: paymentMethod,
		Notes:         input.Notes,
		Status:        status,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, common.SecureErrorMessage("create invoice", err)
	}

	entry := models.PurchaseRecord{
		InvoiceID:   invoice.ID,
		Date:        invoice.Date,
		TotalAmount: totalAmount,
		PaidAmount:  input.PaidAmount,
		DueAmount:   dueAmount,
	}
	if err := s.customerRepo.ApplyInvoiceCreated(ctx, input.CustomerID, entry, dueAmount, common.LoyaltyPoints(input.PaidAmount)); err != nil {
		log.Printf("Invoice %s persisted but customer rollup failed: %v", invoice.ID, err)
		return nil, common.SecureErrorMessage("update customer account", err)
	}

	return s.populate(ctx, invoice), nil
}

// GetInvoiceByID retrieves an invoice with display fields resolved.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID uuid.UUID) (*models.InvoiceView, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, common.SecureErrorMessage("fetch invoice", err)
	}
	if invoice == nil {
		return nil, common.NotFoundf("invoice %s", invoiceID)
	}
	return s.populate(ctx, invoice), nil
}

// ListInvoices pages through invoices. A search term matches invoice
// notes, customer name or mobile, and (when numeric) the invoice number.
func (s *invoiceService) ListInvoices(ctx context.Context, search string, page, limit int) (*InvoicePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var criteria *repositories.InvoiceSearch
	if search != "" {
		criteria = &repositories.InvoiceSearch{Notes: search}
		customers, err := s.customerRepo.Search(ctx, search)
		if err != nil {
			return nil, common.SecureErrorMessage("search customers", err)
		}
		for _, c := range customers {
			criteria.CustomerIDs = append(criteria.CustomerIDs, c.ID)
		}
		if n, err := strconv.ParseInt(search, 10, 64); err == nil {
			criteria.InvoiceNumber = &n
		}
	}

	total, err := s.invoiceRepo.Count(ctx, criteria)
	if err != nil {
		return nil, common.SecureErrorMessage("count invoices", err)
	}

	invoices, err := s.invoiceRepo.List(ctx, criteria, limit, (page-1)*limit)
	if err != nil {
		return nil, common.SecureErrorMessage("list invoices", err)
	}

	views := make([]*models.InvoiceView, 0, len(invoices))
	for _, invoice := range invoices {
		views = append(views, s.populate(ctx, invoice))
	}

	totalPages := (total + limit - 1) / limit
	return &InvoicePage{Invoices: views, Total: total, Page: page, TotalPages: totalPages}, nil
}

// UpdateInvoice recomputes every derived total from the submitted lines
// and reconciles the due/loyalty delta into the owning customer,
// amending the matching history entry in place. Unlike creation, an
// overpaying paidAmount is accepted here.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID uuid.UUID, input *UpdateInvoiceInput) (*models.InvoiceView, error) {
	if err := validateInvoiceInput(input.Items, input.GST, input.PaymentMethod); err != nil {
		return nil, err
	}

	original, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, common.SecureErrorMessage("fetch invoice", err)
	}
	if original == nil {
		return nil, common.NotFoundf("invoice %s", invoiceID)
	}

	items, subtotal := ComputeLineItems(input.Items)
	gstAmount := common.PercentOf(subtotal, input.GST)
	totalAmount := subtotal + gstAmount
	status, dueAmount := DeriveStatus(input.PaidAmount, totalAmount)

	updated := *original
	updated.Items = items
	updated.Subtotal = subtotal
	updated.GST = input.GST
	updated.GSTAmount = gstAmount
	updated.TotalAmount = totalAmount
	updated.PaidAmount = input.PaidAmount
	updated.DueAmount = dueAmount
	updated.Status = status
	updated.Notes = input.Notes
	updated.UpdatedAt = time.Now()
	if input.PaymentMethod != "" {
		updated.PaymentMethod = input.PaymentMethod
	}
	if !input.DueDate.IsZero() {
		updated.DueDate = input.DueDate
	}

	if err := s.invoiceRepo.Update(ctx, &updated); err != nil {
		return nil, common.SecureErrorMessage("update invoice", err)
	}

	dueDelta := updated.DueAmount - original.DueAmount
	loyaltyDelta := common.LoyaltyPoints(updated.PaidAmount) - common.LoyaltyPoints(original.PaidAmount)
	entry := models.PurchaseRecord{
		InvoiceID:   updated.ID,
		Date:        updated.Date,
		TotalAmount: updated.TotalAmount,
		PaidAmount:  updated.PaidAmount,
		DueAmount:   updated.DueAmount,
	}
	if err := s.customerRepo.ApplyInvoiceUpdated(ctx, updated.CustomerID, updated.ID, entry, dueDelta, loyaltyDelta); err != nil {
		log.Printf("Invoice %s updated but customer rollup failed: %v", updated.ID, err)
		return nil, common.SecureErrorMessage("update customer account", err)
	}

	return s.populate(ctx, &updated), nil
}

// DeleteInvoice hard-deletes the invoice. The customer rollup is not
// reversed; Reconcile on the customer service detects the drift.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return common.SecureErrorMessage("fetch invoice", err)
	}
	if invoice == nil {
		return common.NotFoundf("invoice %s", invoiceID)
	}
	if err := s.invoiceRepo.Delete(ctx, invoiceID); err != nil {
		return common.SecureErrorMessage("delete invoice", err)
	}
	return nil
}

// populate resolves the customer summary and item display fields. A
// missing customer renders as the deleted-user placeholder instead of
// failing the request.
func (s *invoiceService) populate(ctx context.Context, invoice *models.Invoice) *models.InvoiceView {
	view := &models.InvoiceView{Invoice: *invoice}

	customer, err := s.customerRepo.GetByID(ctx, invoice.CustomerID)
	if err != nil || customer == nil {
		if err != nil {
			log.Printf("Failed to resolve customer %s for invoice %s: %v", invoice.CustomerID, invoice.ID, err)
		}
		view.Customer = models.DeletedCustomerPlaceholder()
	} else {
		view.Customer = customer.Summary()
	}

	for _, line := range invoice.Items {
		itemView := models.InvoiceItemView{InvoiceItem: line}
		if item, err := s.itemRepo.GetByID(ctx, line.ItemID); err == nil && item != nil {
			itemView.Name = item.Name
			itemView.Category = item.Category
			itemView.Purity = item.Purity
		}
		view.ItemViews = append(view.ItemViews, itemView)
	}
	return view
}
