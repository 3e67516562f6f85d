package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"jewelmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BhishiRepository interface {
	Create(ctx context.Context, bhishi *models.Bhishi) error
	GetByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Bhishi, error)
	Update(ctx context.Context, bhishi *models.Bhishi) error
	List(ctx context.Context, customerIDs []uuid.UUID, limit, offset int) ([]*models.Bhishi, error)
	Count(ctx context.Context, customerIDs []uuid.UUID) (int, error)
}

type bhishiRepo struct {
	db Database
}

func NewBhishiRepo(db Database) BhishiRepository {
	return &bhishiRepo{db: db}
}

const bhishiColumns = `id, customer_id, balance, transactions, created_at, updated_at`

func (r *bhishiRepo) Create(ctx context.Context, bhishi *models.Bhishi) error {
	transactions, err := json.Marshal(bhishi.Transactions)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO bhishi_accounts (id, customer_id, balance, transactions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, bhishi.ID, bhishi.CustomerID, bhishi.Balance, transactions)
	return err
}

func (r *bhishiRepo) scanBhishi(row pgx.Row) (*models.Bhishi, error) {
	bhishi := &models.Bhishi{}
	var transactions []byte
	err := row.Scan(&bhishi.ID, &bhishi.CustomerID, &bhishi.Balance, &transactions, &bhishi.CreatedAt, &bhishi.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(transactions) > 0 {
		if err := json.Unmarshal(transactions, &bhishi.Transactions); err != nil {
			return nil, err
		}
	}
	return bhishi, nil
}

func (r *bhishiRepo) GetByCustomer(ctx context.Context, customerID uuid.UUID) (*models.Bhishi, error) {
	query := `SELECT ` + bhishiColumns + ` FROM bhishi_accounts WHERE customer_id = $1`
	bhishi, err := r.scanBhishi(r.db.QueryRow(ctx, query, customerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return bhishi, err
}

func (r *bhishiRepo) Update(ctx context.Context, bhishi *models.Bhishi) error {
	transactions, err := json.Marshal(bhishi.Transactions)
	if err != nil {
		return err
	}
	query := `
		UPDATE bhishi_accounts
		SET balance = $2, transactions = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err = r.db.Exec(ctx, query, bhishi.ID, bhishi.Balance, transactions)
	return err
}

func (r *bhishiRepo) List(ctx context.Context, customerIDs []uuid.UUID, limit, offset int) ([]*models.Bhishi, error) {
	query := `SELECT ` + bhishiColumns + ` FROM bhishi_accounts`
	var args []any
	if len(customerIDs) > 0 {
		query += ` WHERE customer_id = ANY($1)`
		args = append(args, customerIDs)
	}
	query += ` ORDER BY created_at DESC LIMIT $` + itoa(len(args)+1) + ` OFFSET $` + itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Bhishi
	for rows.Next() {
		bhishi, err := r.scanBhishi(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, bhishi)
	}
	return accounts, rows.Err()
}

func (r *bhishiRepo) Count(ctx context.Context, customerIDs []uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM bhishi_accounts`
	var args []any
	if len(customerIDs) > 0 {
		query += ` WHERE customer_id = ANY($1)`
		args = append(args, customerIDs)
	}
	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}
