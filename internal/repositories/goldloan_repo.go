package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"jewelmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LoanFilter narrows a loan listing by customer and/or status.
type LoanFilter struct {
	CustomerID *uuid.UUID
	Status     *string
}

type GoldLoanRepository interface {
	Create(ctx context.Context, loan *models.GoldLoan) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.GoldLoan, error)
	Update(ctx context.Context, loan *models.GoldLoan) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *LoanFilter) ([]*models.GoldLoan, error)
	SumActiveOutstanding(ctx context.Context) (float64, error)
	ListDueBefore(ctx context.Context, cutoff time.Time) ([]*models.GoldLoan, error)
}

type goldLoanRepo struct {
	db Database
}

func NewGoldLoanRepo(db Database) GoldLoanRepository {
	return &goldLoanRepo{db: db}
}

const loanColumns = `id, loan_number, customer_id, loan_amount, interest_rate, start_date, tenure, end_date, collateral, emi, remaining_amount, next_payment_due, status, repayments, notes, created_at, updated_at`

func (r *goldLoanRepo) Create(ctx context.Context, loan *models.GoldLoan) error {
	collateral, err := json.Marshal(loan.Collateral)
	if err != nil {
		return err
	}
	repayments, err := json.Marshal(loan.Repayments)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO gold_loans (id, loan_number, customer_id, loan_amount, interest_rate, start_date, tenure, end_date, collateral, emi, remaining_amount, next_payment_due, status, repayments, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, loan.ID, loan.LoanNumber, loan.CustomerID, loan.LoanAmount, loan.InterestRate, loan.StartDate, loan.Tenure, loan.EndDate, collateral, loan.EMI, loan.RemainingAmount, loan.NextPaymentDue, loan.Status, repayments, loan.Notes)
	return err
}

func (r *goldLoanRepo) scanLoan(row pgx.Row) (*models.GoldLoan, error) {
	loan := &models.GoldLoan{}
	var collateral, repayments []byte
	err := row.Scan(&loan.ID, &loan.LoanNumber, &loan.CustomerID, &loan.LoanAmount, &loan.InterestRate, &loan.StartDate, &loan.Tenure, &loan.EndDate, &collateral, &loan.EMI, &loan.RemainingAmount, &loan.NextPaymentDue, &loan.Status, &repayments, &loan.Notes, &loan.CreatedAt, &loan.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(collateral) > 0 {
		if err := json.Unmarshal(collateral, &loan.Collateral); err != nil {
			return nil, err
		}
	}
	if len(repayments) > 0 {
		if err := json.Unmarshal(repayments, &loan.Repayments); err != nil {
			return nil, err
		}
	}
	return loan, nil
}

func (r *goldLoanRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.GoldLoan, error) {
	query := `SELECT ` + loanColumns + ` FROM gold_loans WHERE id = $1`
	loan, err := r.scanLoan(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return loan, err
}

func (r *goldLoanRepo) Update(ctx context.Context, loan *models.GoldLoan) error {
	repayments, err := json.Marshal(loan.Repayments)
	if err != nil {
		return err
	}
	query := `
		UPDATE gold_loans
		SET remaining_amount = $2, next_payment_due = $3, status = $4, repayments = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
	`
	_, err = r.db.Exec(ctx, query, loan.ID, loan.RemainingAmount, loan.NextPaymentDue, loan.Status, repayments, loan.Notes)
	return err
}

func (r *goldLoanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM gold_loans WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *goldLoanRepo) List(ctx context.Context, filter *LoanFilter) ([]*models.GoldLoan, error) {
	query := `SELECT ` + loanColumns + ` FROM gold_loans`
	var args []any
	if filter != nil {
		if filter.CustomerID != nil {
			args = append(args, *filter.CustomerID)
			query += ` WHERE customer_id = $1`
		}
		if filter.Status != nil {
			args = append(args, *filter.Status)
			if len(args) == 1 {
				query += ` WHERE status = $1`
			} else {
				query += ` AND status = $2`
			}
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []*models.GoldLoan
	for rows.Next() {
		loan, err := r.scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

// SumActiveOutstanding totals the remaining balance of active loans.
func (r *goldLoanRepo) SumActiveOutstanding(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(remaining_amount), 0) FROM gold_loans WHERE status = $1`, models.LoanStatusActive).Scan(&total)
	return total, err
}

// ListDueBefore returns active loans whose next payment is due on or
// before the cutoff; used by the payment-due alert job.
func (r *goldLoanRepo) ListDueBefore(ctx context.Context, cutoff time.Time) ([]*models.GoldLoan, error) {
	query := `SELECT ` + loanColumns + ` FROM gold_loans WHERE status = $1 AND next_payment_due <= $2 ORDER BY next_payment_due ASC`
	rows, err := r.db.Query(ctx, query, models.LoanStatusActive, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []*models.GoldLoan
	for rows.Next() {
		loan, err := r.scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}
