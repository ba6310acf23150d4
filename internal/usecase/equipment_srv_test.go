package usecase

import (
	"context"
	"testing"

	"equipment-rental/internal/data/entity"
	"equipment-rental/internal/dto/request"
	"equipment-rental/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEquipment(t *testing.T) {
	svc, repo := newTestService(t)
	category := seedCategory(t, repo)
	ctx := context.Background()

	created, err := svc.Equipment.CreateEquipment(ctx, &request.CreateEquipmentRequest{
		CategoryID:   category.ID.String(),
		Name:         "Camera Body",
		SerialNumber: "SN-100",
		DailyRate:    "120.00",
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.EquipmentStatusAvailable), created.Status)
	require.NotNil(t, created.SerialNumber)
	assert.Equal(t, "SN-100", *created.SerialNumber)

	// The minted barcode is well-formed and resolves back to the unit.
	assert.True(t, svc.Barcode.Validate(created.Barcode))

	found, err := svc.Equipment.GetEquipmentByBarcode(ctx, created.Barcode)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestCreateEquipmentBarcodesDistinct(t *testing.T) {
	svc, repo := newTestService(t)
	category := seedCategory(t, repo)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 5; i++ {
		created, err := svc.Equipment.CreateEquipment(ctx, &request.CreateEquipmentRequest{
			CategoryID: category.ID.String(),
			Name:       "Light Stand",
			DailyRate:  "15.00",
		})
		require.NoError(t, err)

		_, dup := seen[created.Barcode]
		assert.False(t, dup, "duplicate barcode %s", created.Barcode)
		seen[created.Barcode] = struct{}{}
	}
}

func TestCreateEquipmentUnknownCategory(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Equipment.CreateEquipment(context.Background(), &request.CreateEquipmentRequest{
		CategoryID: uuid.New().String(),
		Name:       "Camera Body",
		DailyRate:  "120.00",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetEquipmentByBarcodeMalformed(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Equipment.GetEquipmentByBarcode(context.Background(), "not-a-barcode")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestGetEquipmentByBarcodeUnknown(t *testing.T) {
	svc, _ := newTestService(t)

	// Valid checksum, no such unit.
	_, err := svc.Equipment.GetEquipmentByBarcode(context.Background(), "00000012323")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestChangeEquipmentStatus(t *testing.T) {
	svc, repo := newTestService(t)
	category := seedCategory(t, repo)
	equipment := seedEquipment(t, repo, category.ID, "SN-100")
	ctx := context.Background()

	updated, err := svc.Equipment.ChangeEquipmentStatus(ctx, equipment.ID.String(), string(entity.EquipmentStatusMaintenance))
	require.NoError(t, err)
	assert.Equal(t, string(entity.EquipmentStatusMaintenance), updated.Status)

	updated, err = svc.Equipment.ChangeEquipmentStatus(ctx, equipment.ID.String(), string(entity.EquipmentStatusAvailable))
	require.NoError(t, err)
	assert.Equal(t, string(entity.EquipmentStatusAvailable), updated.Status)
}

func TestChangeEquipmentStatusRejected(t *testing.T) {
	svc, repo := newTestService(t)
	category := seedCategory(t, repo)
	equipment := seedEquipment(t, repo, category.ID, "SN-100")
	ctx := context.Background()

	t.Run("rented is synchronizer-owned", func(t *testing.T) {
		_, err := svc.Equipment.ChangeEquipmentStatus(ctx, equipment.ID.String(), string(entity.EquipmentStatusRented))
		require.Error(t, err)
		assert.True(t, apperr.IsState(err), "got %v", err)
	})

	t.Run("retired is terminal", func(t *testing.T) {
		retired := seedEquipment(t, repo, category.ID, "SN-900")
		_, err := svc.Equipment.ChangeEquipmentStatus(ctx, retired.ID.String(), string(entity.EquipmentStatusRetired))
		require.NoError(t, err)

		_, err = svc.Equipment.ChangeEquipmentStatus(ctx, retired.ID.String(), string(entity.EquipmentStatusAvailable))
		require.Error(t, err)
		assert.True(t, apperr.IsState(err), "got %v", err)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.Equipment.ChangeEquipmentStatus(ctx, equipment.ID.String(), "lost")
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestMaintenanceBlockedByActiveBooking(t *testing.T) {
	svc, repo := newTestService(t)
	client := seedClient(t, repo)
	category := seedCategory(t, repo)
	equipment := seedEquipment(t, repo, category.ID, "SN-100")
	ctx := context.Background()

	booking := createTestBooking(t, svc, client.ID, equipment.ID, 10, 13)
	confirmAndPay(t, svc, booking.ID)
	_, err := svc.Booking.ChangeBookingStatus(ctx, booking.ID, string(entity.BookingStatusActive))
	require.NoError(t, err)

	_, err = svc.Equipment.ChangeEquipmentStatus(ctx, equipment.ID.String(), string(entity.EquipmentStatusMaintenance))
	require.Error(t, err)
	assert.True(t, apperr.IsBusiness(err), "got %v", err)

	// Once the rental closes out, maintenance is fine.
	_, err = svc.Booking.ChangeBookingStatus(ctx, booking.ID, string(entity.BookingStatusCompleted))
	require.NoError(t, err)

	_, err = svc.Equipment.ChangeEquipmentStatus(ctx, equipment.ID.String(), string(entity.EquipmentStatusMaintenance))
	require.NoError(t, err)
}

func TestMaintenanceToleratesConfirmedBooking(t *testing.T) {
	svc, repo := newTestService(t)
	client := seedClient(t, repo)
	category := seedCategory(t, repo)
	equipment := seedEquipment(t, repo, category.ID, "SN-100")
	ctx := context.Background()

	booking := createTestBooking(t, svc, client.ID, equipment.ID, 10, 13)
	_, err := svc.Booking.ChangeBookingStatus(ctx, booking.ID, string(entity.BookingStatusConfirmed))
	require.NoError(t, err)

	// A future reservation does not block a maintenance window.
	_, err = svc.Equipment.ChangeEquipmentStatus(ctx, equipment.ID.String(), string(entity.EquipmentStatusMaintenance))
	require.NoError(t, err)
}

func TestRetireBlockedByReservingBookings(t *testing.T) {
	for _, target := range []entity.EquipmentStatus{entity.EquipmentStatusRetired, entity.EquipmentStatusBroken} {
		t.Run(string(target), func(t *testing.T) {
			svc, repo := newTestService(t)
			client := seedClient(t, repo)
			category := seedCategory(t, repo)
			equipment := seedEquipment(t, repo, category.ID, "SN-100")
			ctx := context.Background()

			booking := createTestBooking(t, svc, client.ID, equipment.ID, 10, 13)
			_, err := svc.Booking.ChangeBookingStatus(ctx, booking.ID, string(entity.BookingStatusConfirmed))
			require.NoError(t, err)

			// Even a not-yet-started reservation blocks retirement.
			_, err = svc.Equipment.ChangeEquipmentStatus(ctx, equipment.ID.String(), string(target))
			require.Error(t, err)
			assert.True(t, apperr.IsBusiness(err), "got %v", err)

			_, err = svc.Booking.ChangeBookingStatus(ctx, booking.ID, string(entity.BookingStatusCancelled))
			require.NoError(t, err)

			_, err = svc.Equipment.ChangeEquipmentStatus(ctx, equipment.ID.String(), string(target))
			require.NoError(t, err)
		})
	}
}

func TestListEquipment(t *testing.T) {
	svc, repo := newTestService(t)
	category := seedCategory(t, repo)
	seedEquipment(t, repo, category.ID, "SN-100")
	seedEquipment(t, repo, category.ID, "SN-200")
	seedEquipment(t, repo, category.ID, "SN-300")

	page, err := svc.Equipment.ListEquipment(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}
