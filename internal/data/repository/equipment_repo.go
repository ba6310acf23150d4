package repository

import (
	"context"
	"encoding/binary"
	"fmt"

	"equipment-rental/internal/data/entity"
	"equipment-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EquipmentRepository interface {
	Create(ctx context.Context, equipment *entity.Equipment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Equipment, error)
	FindByBarcode(ctx context.Context, barcode string) (*entity.Equipment, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Equipment, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.EquipmentStatus) error

	// AcquireLock takes a transaction-scoped advisory lock on the equipment's
	// conflict set. Every availability-check-then-write for the item must take
	// it so two concurrent requests cannot both see "available".
	AcquireLock(ctx context.Context, id uuid.UUID) error
}

type equipmentRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewEquipmentRepository(db database.Querier, log *zap.Logger) EquipmentRepository {
	return &equipmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "equipment")),
	}
}

const equipmentColumns = `id, category_id, name, serial_number, barcode, daily_rate, status,
	created_at, updated_at, deleted_at`

func scanEquipment(row pgx.Row) (*entity.Equipment, error) {
	var equipment entity.Equipment
	err := row.Scan(
		&equipment.ID,
		&equipment.CategoryID,
		&equipment.Name,
		&equipment.SerialNumber,
		&equipment.Barcode,
		&equipment.DailyRate,
		&equipment.Status,
		&equipment.CreatedAt,
		&equipment.UpdatedAt,
		&equipment.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) Create(ctx context.Context, equipment *entity.Equipment) error {
	query := `
		INSERT INTO equipment (id, category_id, name, serial_number, barcode, daily_rate, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		equipment.ID,
		equipment.CategoryID,
		equipment.Name,
		equipment.SerialNumber,
		equipment.Barcode,
		equipment.DailyRate,
		equipment.Status,
		equipment.CreatedAt,
		equipment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create equipment",
			zap.Error(err),
			zap.String("equipment_id", equipment.ID.String()),
			zap.String("barcode", equipment.Barcode),
		)
		return fmt.Errorf("create equipment %s: %w", equipment.ID.String(), err)
	}

	return nil
}

func (r *equipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Equipment, error) {
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment
		WHERE id = $1 AND deleted_at IS NULL
	`

	equipment, err := scanEquipment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find equipment by ID",
			zap.Error(err),
			zap.String("equipment_id", id.String()),
		)
		return nil, fmt.Errorf("find equipment by ID %s: %w", id.String(), err)
	}

	return equipment, nil
}

func (r *equipmentRepository) FindByBarcode(ctx context.Context, barcode string) (*entity.Equipment, error) {
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment
		WHERE barcode = $1 AND deleted_at IS NULL
	`

	equipment, err := scanEquipment(r.db.QueryRow(ctx, query, barcode))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find equipment by barcode",
			zap.Error(err),
			zap.String("barcode", barcode),
		)
		return nil, fmt.Errorf("find equipment by barcode %s: %w", barcode, err)
	}

	return equipment, nil
}

func (r *equipmentRepository) List(ctx context.Context, limit, offset int) ([]*entity.Equipment, error) {
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list equipment",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	var items []*entity.Equipment
	for rows.Next() {
		equipment, err := scanEquipment(rows)
		if err != nil {
			r.log.Error("Failed to scan equipment row", zap.Error(err))
			return nil, fmt.Errorf("scan equipment row: %w", err)
		}
		items = append(items, equipment)
	}

	return items, nil
}

func (r *equipmentRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM equipment WHERE deleted_at IS NULL`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count equipment", zap.Error(err))
		return 0, fmt.Errorf("count equipment: %w", err)
	}

	return count, nil
}

func (r *equipmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.EquipmentStatus) error {
	query := `UPDATE equipment SET status = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update equipment status",
			zap.Error(err),
			zap.String("equipment_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update equipment %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("equipment %s not found", id.String())
	}

	return nil
}

func (r *equipmentRepository) AcquireLock(ctx context.Context, id uuid.UUID) error {
	// pg_advisory_xact_lock releases at commit/rollback, exactly the scope of
	// the availability check and its write.
	key := int64(binary.BigEndian.Uint64(id[:8]))

	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, key); err != nil {
		r.log.Error("Failed to acquire equipment lock",
			zap.Error(err),
			zap.String("equipment_id", id.String()),
		)
		return fmt.Errorf("acquire lock for equipment %s: %w", id.String(), err)
	}

	return nil
}
