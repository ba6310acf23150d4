package usecase

import (
	"context"
	"time"

	"equipment-rental/internal/data/entity"
	"equipment-rental/internal/data/repository"
	"equipment-rental/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// CheckAvailability reports whether the equipment can be reserved for
	// [start, end). Pass excludeBookingID when re-evaluating an existing
	// booking so it does not conflict with itself.
	CheckAvailability(ctx context.Context, equipmentID uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) (bool, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) CheckAvailability(ctx context.Context, equipmentID uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) (bool, error) {
	if err := validateInterval(start, end); err != nil {
		return false, err
	}

	equipment, err := s.repo.Equipment.FindByID(ctx, equipmentID)
	if err != nil {
		return false, err
	}
	if equipment == nil {
		return false, apperr.NotFound("equipment", equipmentID)
	}

	available, err := isAvailable(ctx, s.repo, equipment, start, end, excludeBookingID)
	if err != nil {
		return false, err
	}

	s.log.Debug("Availability checked",
		zap.String("equipment_id", equipmentID.String()),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Bool("available", available),
	)

	return available, nil
}

// isAvailable is the single availability routine serving both creation (no
// exclusion) and re-evaluation of an existing booking (self-excluded). It
// must run inside the same transaction as the write it guards, after the
// equipment advisory lock is held.
func isAvailable(ctx context.Context, r *repository.Repository, equipment *entity.Equipment, start, end time.Time, excludeBookingID *uuid.UUID) (bool, error) {
	// Consumables are unconstrained stock.
	if equipment.IsConsumable() {
		return true, nil
	}

	if equipment.Status != entity.EquipmentStatusAvailable {
		held, err := heldByBooking(ctx, r, equipment, excludeBookingID)
		if err != nil {
			return false, err
		}
		if !held {
			return false, nil
		}
	}

	conflicts, err := r.Booking.FindConflicting(ctx, equipment.ID, excludeBookingID)
	if err != nil {
		return false, err
	}

	for _, b := range conflicts {
		if b.Overlaps(start, end) {
			return false, nil
		}
	}

	return true, nil
}

// heldByBooking reports whether non-Available equipment is merely rented out
// to the booking being re-evaluated, in which case the caller may proceed to
// the conflict scan.
func heldByBooking(ctx context.Context, r *repository.Repository, equipment *entity.Equipment, excludeBookingID *uuid.UUID) (bool, error) {
	if excludeBookingID == nil || equipment.Status != entity.EquipmentStatusRented {
		return false, nil
	}

	booking, err := r.Booking.FindByID(ctx, *excludeBookingID)
	if err != nil {
		return false, err
	}
	if booking == nil {
		return false, nil
	}

	return booking.EquipmentID == equipment.ID && booking.Status.IsConflicting(), nil
}

// validateInterval rejects inverted, zero-length and implausibly long
// intervals before any availability logic runs.
func validateInterval(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return apperr.Validation("interval", "start and end are required")
	}
	if !start.Before(end) {
		return apperr.Validation("interval", "start must be before end")
	}
	if end.Sub(start) > maxBookingDuration {
		return apperr.Validation("interval", "booking cannot exceed 365 days")
	}
	return nil
}

const maxBookingDuration = 365 * 24 * time.Hour
