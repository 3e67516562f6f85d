package repositories

import (
	"context"
	"errors"

	"jewelmart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StockLevel is the aggregate quantity held per item type.
type StockLevel struct {
	ItemType string `json:"item_type"`
	Quantity int    `json:"quantity"`
}

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Item, error)
	StockByType(ctx context.Context) ([]StockLevel, error)
}

type itemRepo struct {
	db Database
}

func NewItemRepo(db Database) ItemRepository {
	return &itemRepo{db: db}
}

const itemColumns = `id, name, category, item_type, purity, weight, quantity, price, created_at, updated_at`

func (r *itemRepo) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (id, name, category, item_type, purity, weight, quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.Name, item.Category, item.ItemType, item.Purity, item.Weight, item.Quantity, item.Price)
	return err
}

func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item := &models.Item{}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Category, &item.ItemType, &item.Purity, &item.Weight, &item.Quantity, &item.Price, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) Update(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items
		SET name = $2, category = $3, item_type = $4, purity = $5, weight = $6, quantity = $7, price = $8, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.Name, item.Category, item.ItemType, item.Purity, item.Weight, item.Quantity, item.Price)
	return err
}

func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM items WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *itemRepo) List(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.ItemType, &item.Purity, &item.Weight, &item.Quantity, &item.Price, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) StockByType(ctx context.Context) ([]StockLevel, error) {
	query := `SELECT item_type, COALESCE(SUM(quantity), 0)::int FROM items GROUP BY item_type`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []StockLevel
	for rows.Next() {
		var level StockLevel
		if err := rows.Scan(&level.ItemType, &level.Quantity); err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, rows.Err()
}
