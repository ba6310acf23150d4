package usecase

import (
	"context"

	"equipment-rental/internal/data/entity"
	"equipment-rental/internal/data/repository"
	"equipment-rental/internal/dto/request"
	"equipment-rental/internal/dto/response"
	"equipment-rental/pkg/apperr"
	"equipment-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EquipmentService interface {
	CreateEquipment(ctx context.Context, req *request.CreateEquipmentRequest) (*response.EquipmentResponse, error)
	GetEquipment(ctx context.Context, equipmentID string) (*response.EquipmentResponse, error)
	GetEquipmentByBarcode(ctx context.Context, barcode string) (*response.EquipmentResponse, error)
	ListEquipment(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EquipmentResponse], error)

	// ChangeEquipmentStatus handles direct operator requests (maintenance,
	// broken, retired, back to available). Rented is owned by the booking
	// synchronizer and cannot be requested here.
	ChangeEquipmentStatus(ctx context.Context, equipmentID, newStatus string) (*response.EquipmentResponse, error)
}

type equipmentService struct {
	repo    *repository.Repository
	barcode BarcodeService
	log     *zap.Logger
}

func NewEquipmentService(repo *repository.Repository, barcode BarcodeService, log *zap.Logger) EquipmentService {
	return &equipmentService{
		repo:    repo,
		barcode: barcode,
		log:     log.With(zap.String("service", "equipment")),
	}
}

func (s *equipmentService) CreateEquipment(ctx context.Context, req *request.CreateEquipmentRequest) (*response.EquipmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create equipment validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apperr.Validation("category_id", "invalid UUID")
	}

	rate, err := parseAmount("daily_rate", req.DailyRate)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.Category.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFound("category", categoryID)
	}

	barcode, err := s.barcode.Generate(ctx)
	if err != nil {
		return nil, err
	}

	var serial *string
	if req.SerialNumber != "" {
		serial = &req.SerialNumber
	}

	equipment := &entity.Equipment{
		Base:         entity.NewBase(),
		CategoryID:   categoryID,
		Name:         req.Name,
		SerialNumber: serial,
		Barcode:      barcode,
		DailyRate:    rate,
		Status:       entity.EquipmentStatusAvailable,
	}

	if err := s.repo.Equipment.Create(ctx, equipment); err != nil {
		return nil, err
	}

	s.log.Info("Equipment created",
		zap.String("equipment_id", equipment.ID.String()),
		zap.String("barcode", barcode),
		zap.String("name", req.Name),
	)

	resp := response.EquipmentToResponse(equipment)
	return &resp, nil
}

func (s *equipmentService) GetEquipment(ctx context.Context, equipmentID string) (*response.EquipmentResponse, error) {
	id, err := uuid.Parse(equipmentID)
	if err != nil {
		return nil, apperr.Validation("equipment_id", "invalid UUID")
	}

	equipment, err := s.repo.Equipment.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, apperr.NotFound("equipment", id)
	}

	resp := response.EquipmentToResponse(equipment)
	return &resp, nil
}

func (s *equipmentService) GetEquipmentByBarcode(ctx context.Context, barcode string) (*response.EquipmentResponse, error) {
	if !s.barcode.Validate(barcode) {
		return nil, apperr.Validation("barcode", "malformed barcode")
	}

	equipment, err := s.repo.Equipment.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, &apperr.NotFoundError{Resource: "equipment", ID: barcode}
	}

	resp := response.EquipmentToResponse(equipment)
	return &resp, nil
}

func (s *equipmentService) ListEquipment(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EquipmentResponse], error) {
	items, err := s.repo.Equipment.List(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Equipment.Count(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]response.EquipmentResponse, len(items))
	for i, e := range items {
		responses[i] = response.EquipmentToResponse(e)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *equipmentService) ChangeEquipmentStatus(ctx context.Context, equipmentID, newStatus string) (*response.EquipmentResponse, error) {
	id, err := uuid.Parse(equipmentID)
	if err != nil {
		return nil, apperr.Validation("equipment_id", "invalid UUID")
	}

	requested := entity.EquipmentStatus(newStatus)
	if !requested.IsValid() {
		return nil, apperr.Validation("status", "unknown equipment status")
	}

	var updated *entity.Equipment
	err = s.repo.WithinTx(ctx, func(r *repository.Repository) error {
		equipment, err := r.Equipment.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if equipment == nil {
			return apperr.NotFound("equipment", id)
		}

		if !equipment.Status.CanTransitionTo(requested) {
			return apperr.State(string(equipment.Status), string(requested),
				equipmentStatusNames(equipment.Status.AllowedTransitions()))
		}

		if err := guardEquipmentStatus(ctx, r, equipment, requested); err != nil {
			return err
		}

		if err := r.Equipment.UpdateStatus(ctx, id, requested); err != nil {
			return err
		}
		equipment.Status = requested

		updated = equipment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Equipment status changed",
		zap.String("equipment_id", id.String()),
		zap.String("status", newStatus),
	)

	resp := response.EquipmentToResponse(updated)
	return &resp, nil
}

// guardEquipmentStatus blocks unsafe maintenance and retirement requests.
// Maintenance tolerates Pending/Confirmed bookings; Retired and Broken
// tolerate no reserving booking at all.
func guardEquipmentStatus(ctx context.Context, r *repository.Repository, equipment *entity.Equipment, requested entity.EquipmentStatus) error {
	switch requested {
	case entity.EquipmentStatusMaintenance:
		count, err := r.Booking.CountByEquipmentAndStatuses(ctx, equipment.ID, holdingStatuses)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Business("cannot move equipment %s to maintenance: %d active booking(s)", equipment.ID, count)
		}
	case entity.EquipmentStatusRetired, entity.EquipmentStatusBroken:
		count, err := r.Booking.CountByEquipmentAndStatuses(ctx, equipment.ID, entity.ConflictingStatuses)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Business("cannot mark equipment %s as %s: %d booking(s) still reserve it", equipment.ID, requested, count)
		}
	}
	return nil
}

func equipmentStatusNames(statuses []entity.EquipmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
