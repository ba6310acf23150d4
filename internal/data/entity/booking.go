package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusOverdue   BookingStatus = "overdue"
)

// bookingTransitions is the closed transition graph for booking status.
// Overdue has no inbound edge here: it is a label applied by the external
// sweep, never requested through a normal transition.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusActive, BookingStatusCancelled},
	BookingStatusActive:    {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusOverdue:   {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

// CanTransitionTo reports whether the booking graph allows current -> next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the next-states reachable from s.
func (s BookingStatus) AllowedTransitions() []BookingStatus {
	return bookingTransitions[s]
}

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// ConflictingStatuses are the statuses that reserve equipment and block
// overlapping bookings on the same serialized item.
var ConflictingStatuses = []BookingStatus{
	BookingStatusConfirmed,
	BookingStatusActive,
	BookingStatusOverdue,
}

// IsConflicting reports whether a booking in this status holds the equipment.
func (s BookingStatus) IsConflicting() bool {
	for _, c := range ConflictingStatuses {
		if s == c {
			return true
		}
	}
	return false
}

type Booking struct {
	Base
	EquipmentID   uuid.UUID       `db:"equipment_id"`
	ClientID      uuid.UUID       `db:"client_id"`
	ProjectID     *uuid.UUID      `db:"project_id"`
	StartDate     time.Time       `db:"start_date"`
	EndDate       time.Time       `db:"end_date"`
	Quantity      int             `db:"quantity"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	PaidAmount    decimal.Decimal `db:"paid_amount"`
	DepositAmount decimal.Decimal `db:"deposit_amount"`
	Status        BookingStatus   `db:"status"`
	PaymentStatus PaymentStatus   `db:"payment_status"`

	// Serialized is denormalized from the equipment row at insert so the
	// schema's no-double-booking exclusion constraint can skip consumables.
	Serialized bool `db:"serialized"`
}

// IntervalsOverlap reports whether [existingStart, existingEnd) and
// [queryStart, queryEnd) share any instant. Intervals are end-exclusive, so a
// booking ending exactly when another starts does not conflict.
func IntervalsOverlap(existingStart, existingEnd, queryStart, queryEnd time.Time) bool {
	return existingStart.Before(queryEnd) && existingEnd.After(queryStart)
}

// Overlaps reports whether the booking's interval overlaps [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return IntervalsOverlap(b.StartDate, b.EndDate, start, end)
}
