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

type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*entity.Booking
}

var _ repository.BookingRepository = (*BookingRepository)(nil)

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings: make(map[uuid.UUID]*entity.Booking),
	}
}

func (r *BookingRepository) Create(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; ok {
		return fmt.Errorf("booking %s already exists", booking.ID.String())
	}
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *BookingRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok || booking.IsDeleted() {
		return nil, nil
	}
	out := *booking
	return &out, nil
}

func (r *BookingRepository) FindByClientID(_ context.Context, clientID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*entity.Booking
	for _, b := range r.bookings {
		if b.ClientID == clientID && !b.IsDeleted() {
			out := *b
			matches = append(matches, &out)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	if offset >= len(matches) {
		return nil, nil
	}
	matches = matches[offset:]
	if limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *BookingRepository) CountByClientID(_ context.Context, clientID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, b := range r.bookings {
		if b.ClientID == clientID && !b.IsDeleted() {
			count++
		}
	}
	return count, nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[bookingID]
	if !ok || booking.IsDeleted() {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return nil
}

func (r *BookingRepository) UpdatePaymentStatus(_ context.Context, bookingID uuid.UUID, status entity.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[bookingID]
	if !ok || booking.IsDeleted() {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}
	booking.PaymentStatus = status
	booking.UpdatedAt = time.Now()
	return nil
}

func (r *BookingRepository) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok || booking.IsDeleted() {
		return fmt.Errorf("booking %s not found", id.String())
	}
	now := time.Now()
	booking.DeletedAt = &now
	booking.UpdatedAt = now
	return nil
}

func (r *BookingRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return fmt.Errorf("booking %s not found", id.String())
	}
	delete(r.bookings, id)
	return nil
}

func (r *BookingRepository) FindConflicting(_ context.Context, equipmentID uuid.UUID, excludeBookingID *uuid.UUID) ([]*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*entity.Booking
	for _, b := range r.bookings {
		if b.EquipmentID != equipmentID || b.IsDeleted() || !b.Status.IsConflicting() {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		out := *b
		matches = append(matches, &out)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].StartDate.Before(matches[j].StartDate)
	})
	return matches, nil
}

func (r *BookingRepository) CountByEquipmentAndStatuses(_ context.Context, equipmentID uuid.UUID, statuses []entity.BookingStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, b := range r.bookings {
		if b.EquipmentID != equipmentID || b.IsDeleted() {
			continue
		}
		for _, s := range statuses {
			if b.Status == s {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *BookingRepository) MarkOverdue(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var marked int64
	for _, b := range r.bookings {
		if b.IsDeleted() || !b.EndDate.Before(now) {
			continue
		}
		if b.Status == entity.BookingStatusActive || b.Status == entity.BookingStatusConfirmed {
			b.Status = entity.BookingStatusOverdue
			b.UpdatedAt = time.Now()
			marked++
		}
	}
	return marked, nil
}
