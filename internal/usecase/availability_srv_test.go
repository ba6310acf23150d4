package usecase

import (
	"context"
	"testing"

	"equipment-rental/internal/data/entity"
	"equipment-rental/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailability(t *testing.T) {
	svc, repo := newTestService(t)
	client := seedClient(t, repo)
	category := seedCategory(t, repo)
	equipment := seedEquipment(t, repo, category.ID, "SN-100")
	ctx := context.Background()

	available, err := svc.Availability.CheckAvailability(ctx, equipment.ID, day(10), day(13), nil)
	require.NoError(t, err)
	assert.True(t, available)

	booking := createTestBooking(t, svc, client.ID, equipment.ID, 10, 13)
	_, err = svc.Booking.ChangeBookingStatus(ctx, booking.ID, string(entity.BookingStatusConfirmed))
	require.NoError(t, err)

	tests := []struct {
		name     string
		startDay int
		endDay   int
		want     bool
	}{
		{"same interval", 10, 13, false},
		{"overlapping tail", 12, 15, false},
		{"contained", 11, 12, false},
		{"back to back after", 13, 15, true},
		{"back to back before", 8, 10, true},
		{"disjoint", 20, 25, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			available, err := svc.Availability.CheckAvailability(ctx, equipment.ID, day(tc.startDay), day(tc.endDay), nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, available)
		})
	}
}

func TestCheckAvailabilityInvalidInterval(t *testing.T) {
	svc, repo := newTestService(t)
	category := seedCategory(t, repo)
	equipment := seedEquipment(t, repo, category.ID, "SN-100")
	ctx := context.Background()

	_, err := svc.Availability.CheckAvailability(ctx, equipment.ID, day(13), day(10), nil)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Availability.CheckAvailability(ctx, equipment.ID, day(10), day(10), nil)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCheckAvailabilityUnknownEquipment(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Availability.CheckAvailability(context.Background(), uuid.New(), day(10), day(13), nil)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCheckAvailabilitySelfExclusion(t *testing.T) {
	svc, repo := newTestService(t)
	client := seedClient(t, repo)
	category := seedCategory(t, repo)
	equipment := seedEquipment(t, repo, category.ID, "SN-100")
	ctx := context.Background()

	booking := createTestBooking(t, svc, client.ID, equipment.ID, 10, 13)
	_, err := svc.Booking.ChangeBookingStatus(ctx, booking.ID, string(entity.BookingStatusConfirmed))
	require.NoError(t, err)

	bookingID := uuid.MustParse(booking.ID)

	// Without exclusion the booking conflicts with itself.
	available, err := svc.Availability.CheckAvailability(ctx, equipment.ID, day(10), day(13), nil)
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.Availability.CheckAvailability(ctx, equipment.ID, day(10), day(13), &bookingID)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestCheckAvailabilityNonAvailableEquipment(t *testing.T) {
	svc, repo := newTestService(t)
	category := seedCategory(t, repo)
	equipment := seedEquipment(t, repo, category.ID, "SN-100")
	ctx := context.Background()

	for _, status := range []entity.EquipmentStatus{
		entity.EquipmentStatusMaintenance,
		entity.EquipmentStatusBroken,
		entity.EquipmentStatusRetired,
	} {
		require.NoError(t, repo.Equipment.UpdateStatus(ctx, equipment.ID, status))

		available, err := svc.Availability.CheckAvailability(ctx, equipment.ID, day(10), day(13), nil)
		require.NoError(t, err)
		assert.False(t, available, "status %s", status)
	}
}

func TestCheckAvailabilityRentedToExcludedBooking(t *testing.T) {
	svc, repo := newTestService(t)
	client := seedClient(t, repo)
	category := seedCategory(t, repo)
	equipment := seedEquipment(t, repo, category.ID, "SN-100")
	ctx := context.Background()

	booking := createTestBooking(t, svc, client.ID, equipment.ID, 10, 13)
	confirmAndPay(t, svc, booking.ID)
	_, err := svc.Booking.ChangeBookingStatus(ctx, booking.ID, string(entity.BookingStatusActive))
	require.NoError(t, err)

	bookingID := uuid.MustParse(booking.ID)

	// Rented without exclusion: unavailable.
	available, err := svc.Availability.CheckAvailability(ctx, equipment.ID, day(10), day(13), nil)
	require.NoError(t, err)
	assert.False(t, available)

	// Rented to the very booking under re-evaluation: available.
	available, err = svc.Availability.CheckAvailability(ctx, equipment.ID, day(10), day(13), &bookingID)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestCheckAvailabilityConsumable(t *testing.T) {
	svc, repo := newTestService(t)
	client := seedClient(t, repo)
	category := seedCategory(t, repo)
	consumable := seedEquipment(t, repo, category.ID, "")
	ctx := context.Background()

	booking := createTestBooking(t, svc, client.ID, consumable.ID, 10, 13)
	_, err := svc.Booking.ChangeBookingStatus(ctx, booking.ID, string(entity.BookingStatusConfirmed))
	require.NoError(t, err)

	// Consumable stock ignores interval conflicts entirely.
	available, err := svc.Availability.CheckAvailability(ctx, consumable.ID, day(10), day(13), nil)
	require.NoError(t, err)
	assert.True(t, available)
}
