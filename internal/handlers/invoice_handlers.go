package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"jewelmart/internal/common"
	"jewelmart/internal/config"
	"jewelmart/internal/services"

	"github.com/labstack/echo/v4"
)

// InvoiceHandlers handles invoice-related HTTP requests
type InvoiceHandlers struct {
	invoiceService services.InvoiceServiceInterface
	minioSvc       services.MinioService
	shopConfig     *config.ShopConfig
}

// NewInvoiceHandlers creates a new invoice handlers instance
func NewInvoiceHandlers(invoiceService services.InvoiceServiceInterface, minioSvc services.MinioService, shopConfig *config.ShopConfig) *InvoiceHandlers {
	return &InvoiceHandlers{
		invoiceService: invoiceService,
		minioSvc:       minioSvc,
		shopConfig:     shopConfig,
	}
}

// InvoiceRequest represents the create/update payload
type InvoiceRequest struct {
	CustomerID    string                   `json:"customer_id"`
	Items         []services.LineItemInput `json:"items"`
	Date          time.Time                `json:"date"`
	DueDate       time.Time                `json:"due_date"`
	PaymentMethod string                   `json:"payment_method"`
	Notes         string                   `json:"notes"`
	GST           float64                  `json:"gst"`
	PaidAmount    float64                  `json:"paid_amount"`
}

// CreateInvoice handles POST /invoices
func (h *InvoiceHandlers) CreateInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	var req InvoiceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	customerID, err := common.ValidateUUID(req.CustomerID, "customer_id")
	if err != nil {
		return common.SendError(c, err)
	}

	invoice, err := h.invoiceService.CreateInvoice(ctx, &services.CreateInvoiceInput{
		CustomerID:    customerID,
		Items:         req.Items,
		Date:          req.Date,
		DueDate:       req.DueDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		GST:           req.GST,
		PaidAmount:    req.PaidAmount,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, invoice)
}

// GetInvoice handles GET /invoices/:id
func (h *InvoiceHandlers) GetInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	invoiceID, err := common.ValidateUUID(c.Param("id"), "invoice id")
	if err != nil {
		return common.SendError(c, err)
	}

	invoice, err := h.invoiceService.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, invoice)
}

// ListInvoices handles GET /invoices
func (h *InvoiceHandlers) ListInvoices(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	search := c.QueryParam("search")

	result, err := h.invoiceService.ListInvoices(ctx, search, page, limit)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// UpdateInvoice handles PUT /invoices/:id
func (h *InvoiceHandlers) UpdateInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	invoiceID, err := common.ValidateUUID(c.Param("id"), "invoice id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req InvoiceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	invoice, err := h.invoiceService.UpdateInvoice(ctx, invoiceID, &services.UpdateInvoiceInput{
		Items:         req.Items,
		DueDate:       req.DueDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		GST:           req.GST,
		PaidAmount:    req.PaidAmount,
	})
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice handles DELETE /invoices/:id
func (h *InvoiceHandlers) DeleteInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	invoiceID, err := common.ValidateUUID(c.Param("id"), "invoice id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.invoiceService.DeleteInvoice(ctx, invoiceID); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Invoice deleted successfully"})
}

// DownloadInvoicePDF handles GET /invoices/:id/pdf and streams the
// rendered invoice to the caller.
func (h *InvoiceHandlers) DownloadInvoicePDF(c echo.Context) error {
	ctx := c.Request().Context()

	invoiceID, err := common.ValidateUUID(c.Param("id"), "invoice id")
	if err != nil {
		return common.SendError(c, err)
	}

	invoice, err := h.invoiceService.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return common.SendError(c, err)
	}

	pdfBytes, err := services.GenerateInvoicePDF(&h.shopConfig.Shop, invoice)
	if err != nil {
		return common.SendServerError(c, fmt.Sprintf("Failed to generate PDF: %v", err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice-%d.pdf"`, invoice.InvoiceNumber))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

// ArchiveInvoicePDF handles POST /invoices/:id/archive-pdf. The PDF is
// rendered, stored in the invoice bucket and returned as a presigned
// download URL valid for 24 hours.
func (h *InvoiceHandlers) ArchiveInvoicePDF(c echo.Context) error {
	ctx := c.Request().Context()

	invoiceID, err := common.ValidateUUID(c.Param("id"), "invoice id")
	if err != nil {
		return common.SendError(c, err)
	}

	invoice, err := h.invoiceService.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return common.SendError(c, err)
	}

	pdfBytes, err := services.GenerateInvoicePDF(&h.shopConfig.Shop, invoice)
	if err != nil {
		return common.SendServerError(c, fmt.Sprintf("Failed to generate PDF: %v", err))
	}
	if len(pdfBytes) == 0 {
		return common.SendServerError(c, "Generated PDF is empty")
	}

	bucketName := h.shopConfig.Storage.InvoiceBucket
	objectName := fmt.Sprintf("invoice-%d.pdf", invoice.InvoiceNumber)

	if err := h.minioSvc.EnsureBucketExists(ctx, bucketName); err != nil {
		return common.SendServerError(c, "Failed to prepare storage bucket: "+err.Error())
	}
	if err := h.minioSvc.UploadDocument(ctx, bucketName, objectName, bytes.NewReader(pdfBytes), int64(len(pdfBytes))); err != nil {
		return common.SendServerError(c, "Failed to upload PDF to storage: "+err.Error())
	}

	pdfURL, err := h.minioSvc.GetPresignedURL(bucketName, objectName, 24*time.Hour)
	if err != nil {
		return common.SendServerError(c, "Failed to generate download URL: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Invoice PDF archived successfully",
		"url":     pdfURL,
	})
}
