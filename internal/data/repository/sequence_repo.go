package repository

import (
	"context"
	"fmt"

	"equipment-rental/pkg/database"

	"go.uber.org/zap"
)

type SequenceRepository interface {
	// Next bumps the barcode counter and returns the new value in one atomic
	// statement. A separate read followed by a write would let two concurrent
	// callers mint the same number.
	Next(ctx context.Context) (int64, error)
}

type sequenceRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewSequenceRepository(db database.Querier, log *zap.Logger) SequenceRepository {
	return &sequenceRepository{
		db:  db,
		log: log.With(zap.String("repository", "sequence")),
	}
}

func (r *sequenceRepository) Next(ctx context.Context) (int64, error) {
	query := `
		INSERT INTO barcode_sequences (id, value)
		VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE SET value = barcode_sequences.value + 1
		RETURNING value
	`

	var value int64
	if err := r.db.QueryRow(ctx, query).Scan(&value); err != nil {
		r.log.Error("Failed to advance barcode sequence", zap.Error(err))
		return 0, fmt.Errorf("advance barcode sequence: %w", err)
	}

	return value, nil
}
