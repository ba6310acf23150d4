package memory

import (
	"context"
	"testing"
	"time"

	"equipment-rental/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(equipmentID uuid.UUID, status entity.BookingStatus, startDay, endDay int) *entity.Booking {
	return &entity.Booking{
		Base:        entity.NewBase(),
		EquipmentID: equipmentID,
		ClientID:    uuid.New(),
		StartDate:   time.Date(2024, time.January, startDay, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, time.January, endDay, 0, 0, 0, 0, time.UTC),
		Quantity:    1,
		Status:      status,
	}
}

func TestBookingRepositoryFindConflicting(t *testing.T) {
	repo := NewBookingRepository()
	ctx := context.Background()
	equipmentID := uuid.New()

	confirmed := newBooking(equipmentID, entity.BookingStatusConfirmed, 10, 13)
	active := newBooking(equipmentID, entity.BookingStatusActive, 13, 15)
	overdue := newBooking(equipmentID, entity.BookingStatusOverdue, 1, 5)
	pending := newBooking(equipmentID, entity.BookingStatusPending, 10, 13)
	cancelled := newBooking(equipmentID, entity.BookingStatusCancelled, 10, 13)
	otherUnit := newBooking(uuid.New(), entity.BookingStatusConfirmed, 10, 13)

	for _, b := range []*entity.Booking{confirmed, active, overdue, pending, cancelled, otherUnit} {
		require.NoError(t, repo.Create(ctx, b))
	}

	conflicts, err := repo.FindConflicting(ctx, equipmentID, nil)
	require.NoError(t, err)
	require.Len(t, conflicts, 3)

	// Sorted by start date; pending, cancelled and other-unit rows filtered.
	assert.Equal(t, overdue.ID, conflicts[0].ID)
	assert.Equal(t, confirmed.ID, conflicts[1].ID)
	assert.Equal(t, active.ID, conflicts[2].ID)

	excluded, err := repo.FindConflicting(ctx, equipmentID, &confirmed.ID)
	require.NoError(t, err)
	assert.Len(t, excluded, 2)
}

func TestBookingRepositorySoftDeleteHidesRow(t *testing.T) {
	repo := NewBookingRepository()
	ctx := context.Background()

	booking := newBooking(uuid.New(), entity.BookingStatusConfirmed, 10, 13)
	require.NoError(t, repo.Create(ctx, booking))
	require.NoError(t, repo.SoftDelete(ctx, booking.ID))

	found, err := repo.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	conflicts, err := repo.FindConflicting(ctx, booking.EquipmentID, nil)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	count, err := repo.CountByClientID(ctx, booking.ClientID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBookingRepositoryMarkOverdue(t *testing.T) {
	repo := NewBookingRepository()
	ctx := context.Background()
	now := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)

	lapsedActive := newBooking(uuid.New(), entity.BookingStatusActive, 10, 13)
	lapsedConfirmed := newBooking(uuid.New(), entity.BookingStatusConfirmed, 10, 13)
	lapsedPending := newBooking(uuid.New(), entity.BookingStatusPending, 10, 13)
	stillRunning := newBooking(uuid.New(), entity.BookingStatusActive, 10, 25)
	endsNow := newBooking(uuid.New(), entity.BookingStatusActive, 10, 20)

	for _, b := range []*entity.Booking{lapsedActive, lapsedConfirmed, lapsedPending, stillRunning, endsNow} {
		require.NoError(t, repo.Create(ctx, b))
	}

	marked, err := repo.MarkOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	for id, want := range map[uuid.UUID]entity.BookingStatus{
		lapsedActive.ID:    entity.BookingStatusOverdue,
		lapsedConfirmed.ID: entity.BookingStatusOverdue,
		lapsedPending.ID:   entity.BookingStatusPending,
		stillRunning.ID:    entity.BookingStatusActive,
		// An end exactly at the cutoff is not yet overdue.
		endsNow.ID: entity.BookingStatusActive,
	} {
		found, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, want, found.Status, "booking %s", id)
	}
}
