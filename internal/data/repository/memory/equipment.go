package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"equipment-rental/internal/data/entity"
	"equipment-rental/internal/data/repository"

	"github.com/google/uuid"
)

type EquipmentRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*entity.Equipment
}

var _ repository.EquipmentRepository = (*EquipmentRepository)(nil)

func NewEquipmentRepository() *EquipmentRepository {
	return &EquipmentRepository{
		items: make(map[uuid.UUID]*entity.Equipment),
	}
}

func (r *EquipmentRepository) Create(_ context.Context, equipment *entity.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[equipment.ID]; ok {
		return fmt.Errorf("equipment %s already exists", equipment.ID.String())
	}
	for _, e := range r.items {
		if e.Barcode == equipment.Barcode {
			return fmt.Errorf("equipment barcode %s already exists", equipment.Barcode)
		}
	}
	stored := *equipment
	r.items[equipment.ID] = &stored
	return nil
}

func (r *EquipmentRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	equipment, ok := r.items[id]
	if !ok || equipment.IsDeleted() {
		return nil, nil
	}
	out := *equipment
	return &out, nil
}

func (r *EquipmentRepository) FindByBarcode(_ context.Context, barcode string) (*entity.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.items {
		if e.Barcode == barcode && !e.IsDeleted() {
			out := *e
			return &out, nil
		}
	}
	return nil, nil
}

func (r *EquipmentRepository) List(_ context.Context, limit, offset int) ([]*entity.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*entity.Equipment
	for _, e := range r.items {
		if !e.IsDeleted() {
			out := *e
			items = append(items, &out)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if offset >= len(items) {
		return nil, nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

func (r *EquipmentRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, e := range r.items {
		if !e.IsDeleted() {
			count++
		}
	}
	return count, nil
}

func (r *EquipmentRepository) UpdateStatus(_ context.Context, id uuid.UUID, status entity.EquipmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	equipment, ok := r.items[id]
	if !ok || equipment.IsDeleted() {
		return fmt.Errorf("equipment %s not found", id.String())
	}
	equipment.Status = status
	equipment.UpdatedAt = time.Now()
	return nil
}

// AcquireLock is a no-op: the in-memory aggregate already serializes whole
// transactions on a single mutex.
func (r *EquipmentRepository) AcquireLock(_ context.Context, _ uuid.UUID) error {
	return nil
}
