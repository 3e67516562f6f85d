package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"jewelmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetByMobile(ctx context.Context, mobile string) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Customer, error)
	Search(ctx context.Context, query string) ([]*models.Customer, error)
	Count(ctx context.Context) (int, error)
	ApplyInvoiceCreated(ctx context.Context, customerID uuid.UUID, entry models.PurchaseRecord, dueDelta float64, loyaltyDelta int) error
	ApplyInvoiceUpdated(ctx context.Context, customerID, invoiceID uuid.UUID, entry models.PurchaseRecord, dueDelta float64, loyaltyDelta int) error
	SetRollup(ctx context.Context, customerID uuid.UUID, totalDue float64, loyaltyPoints int) error
}

type customerRepo struct {
	db Database
}

func NewCustomerRepo(db Database) CustomerRepository {
	return &customerRepo{db: db}
}

const customerColumns = `id, name, mobile, email, address, date_of_birth, notes, total_due, loyalty_points, history, created_at, updated_at`

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	history, err := json.Marshal(customer.History)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO customers (id, name, mobile, email, address, date_of_birth, notes, total_due, loyalty_points, history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, customer.ID, customer.Name, customer.Mobile, customer.Email, customer.Address, customer.DateOfBirth, customer.Notes, customer.TotalDue, customer.LoyaltyPoints, history)
	return err
}

func (r *customerRepo) scanCustomer(row pgx.Row) (*models.Customer, error) {
	customer := &models.Customer{}
	var history []byte
	err := row.Scan(&customer.ID, &customer.Name, &customer.Mobile, &customer.Email, &customer.Address, &customer.DateOfBirth, &customer.Notes, &customer.TotalDue, &customer.LoyaltyPoints, &history, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &customer.History); err != nil {
			return nil, err
		}
	}
	return customer, nil
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	customer, err := r.scanCustomer(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return customer, err
}

func (r *customerRepo) GetByMobile(ctx context.Context, mobile string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE mobile = $1`
	customer, err := r.scanCustomer(r.db.QueryRow(ctx, query, mobile))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return customer, err
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, mobile = $3, email = $4, address = $5, date_of_birth = $6, notes = $7, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, customer.ID, customer.Name, customer.Mobile, customer.Email, customer.Address, customer.DateOfBirth, customer.Notes)
	return err
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customers WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *customerRepo) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

// Search matches customers by name or mobile, case-insensitively.
func (r *customerRepo) Search(ctx context.Context, query string) ([]*models.Customer, error) {
	sql := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE name ILIKE '%' || $1 || '%' OR mobile ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, sql, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (r *customerRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	return count, err
}

// ApplyInvoiceCreated appends a purchase-history entry and increments
// the additive rollup accumulators in one statement.
func (r *customerRepo) ApplyInvoiceCreated(ctx context.Context, customerID uuid.UUID, entry models.PurchaseRecord, dueDelta float64, loyaltyDelta int) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	query := `
		UPDATE customers
		SET history = history || $2::jsonb,
			total_due = total_due + $3,
			loyalty_points = loyalty_points + $4,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err = r.db.Exec(ctx, query, customerID, entryJSON, dueDelta, loyaltyDelta)
	return err
}

// ApplyInvoiceUpdated amends the history entry matched by invoiceId in
// place and applies the due/loyalty deltas atomically.
func (r *customerRepo) ApplyInvoiceUpdated(ctx context.Context, customerID, invoiceID uuid.UUID, entry models.PurchaseRecord, dueDelta float64, loyaltyDelta int) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	query := `
		UPDATE customers
		SET history = (
				SELECT COALESCE(jsonb_agg(
					CASE WHEN elem->>'invoiceId' = $2 THEN elem || $3::jsonb ELSE elem END
				), '[]'::jsonb)
				FROM jsonb_array_elements(history) AS elem
			),
			total_due = total_due + $4,
			loyalty_points = loyalty_points + $5,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err = r.db.Exec(ctx, query, customerID, invoiceID.String(), entryJSON, dueDelta, loyaltyDelta)
	return err
}

// SetRollup overwrites the accumulators; used by the reconcile
// operation after recomputing them from history.
func (r *customerRepo) SetRollup(ctx context.Context, customerID uuid.UUID, totalDue float64, loyaltyPoints int) error {
	query := `
		UPDATE customers
		SET total_due = $2, loyalty_points = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, customerID, totalDue, loyaltyPoints)
	return err
}
