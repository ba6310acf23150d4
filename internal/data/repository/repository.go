package repository

import (
	"context"
	"fmt"
	"sync"

	"equipment-rental/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Client    ClientRepository
	Project   ProjectRepository
	Category  CategoryRepository
	Equipment EquipmentRepository
	Booking   BookingRepository
	Sequence  SequenceRepository

	db  database.PgxIface
	mu  *sync.Mutex
	log *zap.Logger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	r := newQuerierRepository(db, log)
	r.db = db
	return r
}

// newQuerierRepository binds every repository to q, which is either the pool
// or a single transaction.
func newQuerierRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Client:    NewClientRepository(q, log),
		Project:   NewProjectRepository(q, log),
		Category:  NewCategoryRepository(q, log),
		Equipment: NewEquipmentRepository(q, log),
		Booking:   NewBookingRepository(q, log),
		Sequence:  NewSequenceRepository(q, log),
		log:       log,
	}
}

// NewFromStores assembles a Repository over caller-supplied implementations,
// e.g. the in-memory stores used by tests. WithinTx serializes on a mutex
// since there is no database transaction underneath.
func NewFromStores(
	client ClientRepository,
	project ProjectRepository,
	category CategoryRepository,
	equipment EquipmentRepository,
	booking BookingRepository,
	sequence SequenceRepository,
	log *zap.Logger,
) *Repository {
	return &Repository{
		Client:    client,
		Project:   project,
		Category:  category,
		Equipment: equipment,
		Booking:   booking,
		Sequence:  sequence,
		mu:        &sync.Mutex{},
		log:       log,
	}
}

// WithinTx runs fn against a Repository bound to one transaction and commits
// when fn returns nil. Availability checks and the writes they guard must run
// through here so that check-then-insert stays atomic.
func (r *Repository) WithinTx(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		if r.mu != nil {
			r.mu.Lock()
			defer r.mu.Unlock()
		}
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(newQuerierRepository(tx, r.log)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
