package usecase

import (
	"context"

	"equipment-rental/internal/data/entity"
	"equipment-rental/internal/data/repository"
	"equipment-rental/pkg/apperr"

	"github.com/google/uuid"
)

// holdingStatuses are the booking statuses that keep a piece of equipment
// physically out: Active, plus Overdue since the sweep relabels Active
// bookings without the item coming back.
var holdingStatuses = []entity.BookingStatus{
	entity.BookingStatusActive,
	entity.BookingStatusOverdue,
}

// syncEquipmentStatus mirrors booking state onto the equipment: Rented while
// any non-deleted booking holds the item, back to Available once released.
// Must run in the same transaction as the booking-status write that triggered
// it. Statuses owned by operators (Maintenance, Broken, Retired) are left
// alone.
func syncEquipmentStatus(ctx context.Context, r *repository.Repository, equipmentID uuid.UUID) error {
	equipment, err := r.Equipment.FindByID(ctx, equipmentID)
	if err != nil {
		return err
	}
	if equipment == nil {
		return apperr.NotFound("equipment", equipmentID)
	}

	holding, err := r.Booking.CountByEquipmentAndStatuses(ctx, equipmentID, holdingStatuses)
	if err != nil {
		return err
	}

	switch {
	case holding > 0 && equipment.Status == entity.EquipmentStatusAvailable:
		return r.Equipment.UpdateStatus(ctx, equipmentID, entity.EquipmentStatusRented)
	case holding == 0 && equipment.Status == entity.EquipmentStatusRented:
		return r.Equipment.UpdateStatus(ctx, equipmentID, entity.EquipmentStatusAvailable)
	}

	return nil
}
