package services

import (
	"bytes"
	"fmt"
	"strings"

	"jewelmart/internal/config"
	"jewelmart/internal/models"

	"github.com/divan/num2words"
	"github.com/jung-kurt/gofpdf"
)

// AmountInWords spells out a rupee amount for the printed invoice,
// e.g. "Rupees Fifty Two Thousand Fifteen Only". Paise are dropped;
// printed jewellery invoices round to the rupee.
func AmountInWords(amount float64) string {
	rupees := int(amount)
	if rupees <= 0 {
		return "Rupees Zero Only"
	}
	words := strings.Title(num2words.Convert(rupees))
	words = strings.ReplaceAll(words, "-", " ")
	return fmt.Sprintf("Rupees %s Only", words)
}

// GenerateInvoicePDF renders a printable A4 invoice with the shop
// letterhead, billed lines, GST breakdown and the amount in words.
func GenerateInvoicePDF(shop *config.ShopProfile, invoice *models.InvoiceView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	// Letterhead
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, strings.ToUpper(shop.Name))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	if shop.Tagline != "" {
		pdf.Cell(0, 5, shop.Tagline)
		pdf.Ln(5)
	}
	if shop.Address != "" {
		pdf.Cell(0, 5, shop.Address)
		pdf.Ln(5)
	}
	if shop.Phone != "" || shop.Email != "" {
		pdf.Cell(0, 5, strings.TrimSpace(shop.Phone+"  "+shop.Email))
		pdf.Ln(5)
	}
	if shop.GSTIN != "" {
		pdf.Cell(0, 5, fmt.Sprintf("GSTIN: %s", shop.GSTIN))
		pdf.Ln(5)
	}
	pdf.Ln(5)

	// Invoice details
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice Number: %d", invoice.InvoiceNumber))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice Date: %s", invoice.Date.Format("02-Jan-2006")))
	pdf.Ln(8)
	if !invoice.DueDate.IsZero() {
		pdf.Cell(0, 8, fmt.Sprintf("Due Date: %s", invoice.DueDate.Format("02-Jan-2006")))
		pdf.Ln(8)
	}
	pdf.Ln(5)

	// Billing information
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "BILL TO:")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, invoice.Customer.Name)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Mobile: %s", invoice.Customer.Mobile))
	pdf.Ln(6)
	if invoice.Customer.Email != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Email: %s", invoice.Customer.Email))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)

	headers := []string{"Item", "Qty", "Weight (g)", "Rate/g", "Making", "Amount"}
	colWidths := []float64{55, 15, 25, 25, 25, 25}
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(255, 255, 255)
	for _, item := range invoice.ItemViews {
		name := item.Name
		if name == "" {
			name = "Jewellery item"
		}
		if item.Purity != "" {
			name += " (" + item.Purity + ")"
		}
		pdf.CellFormat(colWidths[0], 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%.3f", item.Weight), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%.2f", item.PricePerGram), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 8, fmt.Sprintf("%.2f", item.MakingCharge), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[5], 8, fmt.Sprintf("%.2f", item.TotalPrice), "1", 0, "R", false, 0, "")
		pdf.Ln(8)
	}
	pdf.Ln(5)

	// Totals
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(130, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", invoice.Subtotal), "", 0, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(130, 5, fmt.Sprintf("GST (%.1f%%):", invoice.GST), "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 5, fmt.Sprintf("%.2f", invoice.GSTAmount), "", 0, "R", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(220, 20, 60)
	pdf.CellFormat(130, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", invoice.TotalAmount), "", 0, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetTextColor(33, 37, 41)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(130, 5, "Paid:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 5, fmt.Sprintf("%.2f", invoice.PaidAmount), "", 0, "R", false, 0, "")
	pdf.Ln(5)
	pdf.CellFormat(130, 5, "Balance Due:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 5, fmt.Sprintf("%.2f", invoice.DueAmount), "", 0, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, AmountInWords(invoice.TotalAmount))
	pdf.Ln(10)

	// Footer
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.Cell(0, 5, "Thank you for your business!")
	if shop.Phone != "" {
		pdf.Ln(5)
		pdf.Cell(0, 5, fmt.Sprintf("For any queries, contact: %s", shop.Phone))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
