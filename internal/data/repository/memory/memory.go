// Package memory provides in-memory implementations of the repository
// interfaces. Usecase tests run against them instead of Postgres; the
// aggregate serializes WithinTx on a mutex, which stands in for the advisory
// lock the pgx implementation takes.
package memory

import (
	"equipment-rental/internal/data/repository"

	"go.uber.org/zap"
)

// NewRepository assembles a fully in-memory repository aggregate.
func NewRepository(log *zap.Logger) *repository.Repository {
	return repository.NewFromStores(
		NewClientRepository(),
		NewProjectRepository(),
		NewCategoryRepository(),
		NewEquipmentRepository(),
		NewBookingRepository(),
		NewSequenceRepository(),
		log,
	)
}
