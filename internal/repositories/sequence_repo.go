package repositories

import (
	"context"
	"fmt"
)

// Sequence names for the human-readable document numbers.
const (
	SequenceInvoice  = "invoice"
	SequenceGoldLoan = "gold_loan"
)

// SequenceRepository reserves the next value of a named document
// counter. The upsert-and-return is a single atomic statement, so
// concurrent creators always receive distinct, gap-free numbers; there
// is no read-then-increment race and no parsing of previously issued
// numbers.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

type sequenceRepo struct {
	db Database
}

func NewSequenceRepo(db Database) SequenceRepository {
	return &sequenceRepo{db: db}
}

func (r *sequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO document_sequences (name, last_number, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (name)
		DO UPDATE SET
			last_number = document_sequences.last_number + 1,
			updated_at = NOW()
		RETURNING last_number
	`

	var next int64
	if err := r.db.QueryRow(ctx, query, name).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to reserve next %s number: %w", name, err)
	}
	return next, nil
}
