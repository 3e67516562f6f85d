package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"jewelmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InvoiceSearch narrows a listing. Matching customer ids are resolved
// by the service before the query; a numeric search term additionally
// matches the invoice number.
type InvoiceSearch struct {
	Notes         string
	CustomerIDs   []uuid.UUID
	InvoiceNumber *int64
}

// MonthlySales is one month's aggregated invoice revenue.
type MonthlySales struct {
	Month int     `json:"month"`
	Sales float64 `json:"sales"`
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search *InvoiceSearch, limit, offset int) ([]*models.Invoice, error)
	Count(ctx context.Context, search *InvoiceSearch) (int, error)
	SumPendingDues(ctx context.Context) (float64, error)
	SalesByMonth(ctx context.Context) ([]MonthlySales, error)
}

type invoiceRepo struct {
	db Database
}

func NewInvoiceRepo(db Database) InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `id, invoice_number, date, due_date, customer_id, items, subtotal, gst, gst_amount, total_amount, paid_amount, due_amount, payment_method, notes, status, created_at, updated_at`

func (r *invoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	items, err := json.Marshal(invoice.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO invoices (id, invoice_number, date, due_date, customer_id, items, subtotal, gst, gst_amount, total_amount, paid_amount, due_amount, payment_method, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, invoice.ID, invoice.InvoiceNumber, invoice.Date, invoice.DueDate, invoice.CustomerID, items, invoice.Subtotal, invoice.GST, invoice.GSTAmount, invoice.TotalAmount, invoice.PaidAmount, invoice.DueAmount, invoice.PaymentMethod, invoice.Notes, invoice.Status)
	return err
}

func (r *invoiceRepo) scanInvoice(row pgx.Row) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	var items []byte
	err := row.Scan(&invoice.ID, &invoice.InvoiceNumber, &invoice.Date, &invoice.DueDate, &invoice.CustomerID, &items, &invoice.Subtotal, &invoice.GST, &invoice.GSTAmount, &invoice.TotalAmount, &invoice.PaidAmount, &invoice.DueAmount, &invoice.PaymentMethod, &invoice.Notes, &invoice.Status, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &invoice.Items); err != nil {
			return nil, err
		}
	}
	return invoice, nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	invoice, err := r.scanInvoice(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return invoice, err
}

func (r *invoiceRepo) Update(ctx context.Context, invoice *models.Invoice) error {
	items, err := json.Marshal(invoice.Items)
	if err != nil {
		return err
	}
	query := `
		UPDATE invoices
		SET customer_id = $2, items = $3, subtotal = $4, gst = $5, gst_amount = $6, total_amount = $7, paid_amount = $8, due_amount = $9, payment_method = $10, notes = $11, status = $12, due_date = $13, updated_at = NOW()
		WHERE id = $1
	`
	_, err = r.db.Exec(ctx, query, invoice.ID, invoice.CustomerID, items, invoice.Subtotal, invoice.GST, invoice.GSTAmount, invoice.TotalAmount, invoice.PaidAmount, invoice.DueAmount, invoice.PaymentMethod, invoice.Notes, invoice.Status, invoice.DueDate)
	return err
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM invoices WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// searchClause builds the WHERE fragment shared by List and Count.
// A nil or empty search matches everything.
func searchClause(search *InvoiceSearch, args []any) (string, []any) {
	if search == nil {
		return "", args
	}
	if search.Notes == "" && len(search.CustomerIDs) == 0 && search.InvoiceNumber == nil {
		return "", args
	}

	clause := ` WHERE (notes ILIKE '%' || $` + itoa(len(args)+1) + ` || '%'`
	args = append(args, search.Notes)

	if len(search.CustomerIDs) > 0 {
		clause += ` OR customer_id = ANY($` + itoa(len(args)+1) + `)`
		args = append(args, search.CustomerIDs)
	}
	if search.InvoiceNumber != nil {
		clause += ` OR invoice_number = $` + itoa(len(args)+1)
		args = append(args, *search.InvoiceNumber)
	}
	clause += `)`
	return clause, args
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func (r *invoiceRepo) List(ctx context.Context, search *InvoiceSearch, limit, offset int) ([]*models.Invoice, error) {
	var args []any
	clause, args := searchClause(search, args)
	query := `SELECT ` + invoiceColumns + ` FROM invoices` + clause +
		` ORDER BY date DESC LIMIT $` + itoa(len(args)+1) + ` OFFSET $` + itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice, err := r.scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

func (r *invoiceRepo) Count(ctx context.Context, search *InvoiceSearch) (int, error) {
	var args []any
	clause, args := searchClause(search, args)
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+clause, args...).Scan(&count)
	return count, err
}

// SumPendingDues totals the outstanding amount across all non-paid invoices.
func (r *invoiceRepo) SumPendingDues(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(due_amount), 0) FROM invoices WHERE status <> $1`, models.InvoiceStatusPaid).Scan(&total)
	return total, err
}

// SalesByMonth aggregates invoice revenue per calendar month.
func (r *invoiceRepo) SalesByMonth(ctx context.Context) ([]MonthlySales, error) {
	query := `
		SELECT EXTRACT(MONTH FROM date)::int AS month, SUM(total_amount)
		FROM invoices
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []MonthlySales
	for rows.Next() {
		var m MonthlySales
		if err := rows.Scan(&m.Month, &m.Sales); err != nil {
			return nil, err
		}
		sales = append(sales, m)
	}
	return sales, rows.Err()
}
