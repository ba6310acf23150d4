package usecase

import (
	"context"
	"time"

	"equipment-rental/internal/data/entity"
	"equipment-rental/internal/data/repository"
	"equipment-rental/internal/dto/request"
	"equipment-rental/internal/dto/response"
	"equipment-rental/pkg/apperr"
	"equipment-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// CreateProjectBookings creates many bookings under one project. It is
	// best-effort per item: each booking commits on its own, and failures are
	// collected instead of aborting already-committed work.
	CreateProjectBookings(ctx context.Context, req *request.BatchBookingRequest) (*response.BatchBookingResponse, error)

	GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetClientBookings(ctx context.Context, clientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	ChangeBookingStatus(ctx context.Context, bookingID, newStatus string) (*response.BookingResponse, error)
	ChangePaymentStatus(ctx context.Context, bookingID, newStatus string) (*response.BookingResponse, error)

	// DeleteBooking soft-deletes by default, preserving history. Hard delete
	// removes the row and still runs the equipment synchronizer, since no
	// transition event fires on delete.
	DeleteBooking(ctx context.Context, bookingID string, hard bool) error

	// MarkOverdueBookings labels open bookings whose end has passed. Invoked
	// by an external calendar-driven sweep.
	MarkOverdueBookings(ctx context.Context, now time.Time) (int64, error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, apperr.Validation("client_id", "invalid UUID")
	}

	equipmentID, err := uuid.Parse(req.EquipmentID)
	if err != nil {
		return nil, apperr.Validation("equipment_id", "invalid UUID")
	}

	var projectID *uuid.UUID
	if req.ProjectID != "" {
		id, err := uuid.Parse(req.ProjectID)
		if err != nil {
			return nil, apperr.Validation("project_id", "invalid UUID")
		}
		projectID = &id
	}

	start, end, err := parseInterval(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	total, err := parseAmount("total_amount", req.TotalAmount)
	if err != nil {
		return nil, err
	}

	deposit := decimal.Zero
	if req.DepositAmount != "" {
		deposit, err = parseAmount("deposit_amount", req.DepositAmount)
		if err != nil {
			return nil, err
		}
	}

	client, err := s.repo.Client.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperr.NotFound("client", clientID)
	}

	if projectID != nil {
		project, err := s.repo.Project.FindByID(ctx, *projectID)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, apperr.NotFound("project", *projectID)
		}
	}

	booking := &entity.Booking{
		Base:          entity.NewBase(),
		EquipmentID:   equipmentID,
		ClientID:      clientID,
		ProjectID:     projectID,
		StartDate:     start,
		EndDate:       end,
		Quantity:      req.Quantity,
		TotalAmount:   total,
		PaidAmount:    decimal.Zero,
		DepositAmount: deposit,
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
	}

	if err := s.createReserved(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("equipment_id", equipmentID.String()),
		zap.String("client_id", clientID.String()),
		zap.Time("start", start),
		zap.Time("end", end),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// createReserved inserts the booking behind the equipment advisory lock so
// the availability check and the insert are atomic: two concurrent requests
// cannot both observe "available" for overlapping intervals.
func (s *bookingService) createReserved(ctx context.Context, booking *entity.Booking) error {
	return s.repo.WithinTx(ctx, func(r *repository.Repository) error {
		if err := r.Equipment.AcquireLock(ctx, booking.EquipmentID); err != nil {
			return err
		}

		equipment, err := r.Equipment.FindByID(ctx, booking.EquipmentID)
		if err != nil {
			return err
		}
		if equipment == nil {
			return apperr.NotFound("equipment", booking.EquipmentID)
		}
		booking.Serialized = !equipment.IsConsumable()

		available, err := isAvailable(ctx, r, equipment, booking.StartDate, booking.EndDate, nil)
		if err != nil {
			return err
		}
		if !available {
			return apperr.Availability(booking.EquipmentID, booking.StartDate, booking.EndDate)
		}

		return r.Booking.Create(ctx, booking)
	})
}

func (s *bookingService) CreateProjectBookings(ctx context.Context, req *request.BatchBookingRequest) (*response.BatchBookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Batch booking validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, apperr.Validation("project_id", "invalid UUID")
	}

	project, err := s.repo.Project.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFound("project", projectID)
	}

	result := &response.BatchBookingResponse{
		Created:  []response.BookingResponse{},
		Failures: []response.BatchBookingFailure{},
	}

	for _, item := range req.Items {
		created, err := s.CreateBooking(ctx, &request.CreateBookingRequest{
			ClientID:    project.ClientID.String(),
			EquipmentID: item.EquipmentID,
			ProjectID:   projectID.String(),
			StartDate:   item.StartDate,
			EndDate:     item.EndDate,
			Quantity:    item.Quantity,
			TotalAmount: item.TotalAmount,
		})
		if err != nil {
			result.Failures = append(result.Failures, response.BatchBookingFailure{
				EquipmentID: item.EquipmentID,
				Error:       err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, *created)
	}

	s.log.Info("Batch booking finished",
		zap.String("project_id", projectID.String()),
		zap.Int("created", len(result.Created)),
		zap.Int("failed", len(result.Failures)),
	)

	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.Validation("booking_id", "invalid UUID")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound("booking", id)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetClientBookings(ctx context.Context, clientID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	id, err := uuid.Parse(clientID)
	if err != nil {
		return nil, apperr.Validation("client_id", "invalid UUID")
	}

	bookings, err := s.repo.Booking.FindByClientID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByClientID(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *bookingService) ChangeBookingStatus(ctx context.Context, bookingID, newStatus string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.Validation("booking_id", "invalid UUID")
	}

	requested := entity.BookingStatus(newStatus)
	if !requested.IsValid() {
		return nil, apperr.Validation("status", "unknown booking status")
	}

	var updated *entity.Booking
	err = s.repo.WithinTx(ctx, func(r *repository.Repository) error {
		booking, err := r.Booking.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperr.NotFound("booking", id)
		}

		// Every transition ends in syncEquipmentStatus, so the equipment
		// lock comes first; without it a concurrent transition on another
		// booking of the same unit could count holders mid-flight and write
		// a stale equipment status. Re-read under the lock.
		if err := r.Equipment.AcquireLock(ctx, booking.EquipmentID); err != nil {
			return err
		}
		booking, err = r.Booking.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperr.NotFound("booking", id)
		}

		if !booking.Status.CanTransitionTo(requested) {
			return apperr.StatusTransition("booking",
				string(booking.Status), string(requested),
				statusNames(booking.Status.AllowedTransitions()))
		}

		if requested == entity.BookingStatusActive {
			if err := s.guardActivation(ctx, r, booking); err != nil {
				return err
			}
		}

		if err := r.Booking.UpdateStatus(ctx, id, requested); err != nil {
			return err
		}
		booking.Status = requested
		booking.UpdatedAt = time.Now()

		// Mirror the status change onto the equipment in the same
		// transaction, not as a separate event round trip.
		if err := syncEquipmentStatus(ctx, r, booking.EquipmentID); err != nil {
			return err
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking status changed",
		zap.String("booking_id", id.String()),
		zap.String("status", newStatus),
	)

	resp := response.BookingToResponse(updated)
	return &resp, nil
}

// guardActivation enforces the confirmation -> activation preconditions: the
// payment may not still be pending, and the interval must hold up against all
// other bookings with the equipment available or already held by this one.
// The caller already holds the equipment lock.
func (s *bookingService) guardActivation(ctx context.Context, r *repository.Repository, booking *entity.Booking) error {
	if booking.PaymentStatus == entity.PaymentStatusPending {
		return apperr.Business("booking %s cannot be activated: payment is still pending", booking.ID)
	}

	equipment, err := r.Equipment.FindByID(ctx, booking.EquipmentID)
	if err != nil {
		return err
	}
	if equipment == nil {
		return apperr.NotFound("equipment", booking.EquipmentID)
	}

	available, err := isAvailable(ctx, r, equipment, booking.StartDate, booking.EndDate, &booking.ID)
	if err != nil {
		return err
	}
	if !available {
		return apperr.Availability(booking.EquipmentID, booking.StartDate, booking.EndDate)
	}

	return nil
}

func (s *bookingService) ChangePaymentStatus(ctx context.Context, bookingID, newStatus string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperr.Validation("booking_id", "invalid UUID")
	}

	requested := entity.PaymentStatus(newStatus)
	if !requested.IsValid() {
		return nil, apperr.Validation("status", "unknown payment status")
	}

	var updated *entity.Booking
	err = s.repo.WithinTx(ctx, func(r *repository.Repository) error {
		booking, err := r.Booking.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperr.NotFound("booking", id)
		}

		if !booking.PaymentStatus.CanTransitionTo(requested) {
			return apperr.StatusTransition("payment",
				string(booking.PaymentStatus), string(requested),
				paymentStatusNames(booking.PaymentStatus.AllowedTransitions()))
		}

		if err := r.Booking.UpdatePaymentStatus(ctx, id, requested); err != nil {
			return err
		}
		booking.PaymentStatus = requested
		booking.UpdatedAt = time.Now()

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Payment status changed",
		zap.String("booking_id", id.String()),
		zap.String("payment_status", newStatus),
	)

	resp := response.BookingToResponse(updated)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string, hard bool) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return apperr.Validation("booking_id", "invalid UUID")
	}

	err = s.repo.WithinTx(ctx, func(r *repository.Repository) error {
		booking, err := r.Booking.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperr.NotFound("booking", id)
		}

		// Same lock-before-sync ordering as status transitions.
		if err := r.Equipment.AcquireLock(ctx, booking.EquipmentID); err != nil {
			return err
		}

		if hard {
			if err := r.Booking.Delete(ctx, id); err != nil {
				return err
			}
		} else {
			if err := r.Booking.SoftDelete(ctx, id); err != nil {
				return err
			}
		}

		// Deletes fire no transition event, so the synchronizer runs
		// explicitly in case the booking was holding the equipment.
		return syncEquipmentStatus(ctx, r, booking.EquipmentID)
	})
	if err != nil {
		return err
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", id.String()),
		zap.Bool("hard", hard),
	)

	return nil
}

func (s *bookingService) MarkOverdueBookings(ctx context.Context, now time.Time) (int64, error) {
	marked, err := s.repo.Booking.MarkOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	if marked > 0 {
		s.log.Info("Overdue bookings marked", zap.Int64("count", marked))
	}

	return marked, nil
}

// ---- helpers ----

func parseInterval(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("start_date", "must be RFC 3339")
	}

	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("end_date", "must be RFC 3339")
	}

	if err := validateInterval(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, apperr.Validation(field, "must be a decimal number")
	}
	if amount.IsNegative() {
		return decimal.Zero, apperr.Validation(field, "must not be negative")
	}
	return amount, nil
}

func statusNames(statuses []entity.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func paymentStatusNames(statuses []entity.PaymentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
