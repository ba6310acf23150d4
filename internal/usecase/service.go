package usecase

import (
	"equipment-rental/internal/data/repository"
	"equipment-rental/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Availability AvailabilityService
	Booking      BookingService
	Equipment    EquipmentService
	Barcode      BarcodeService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	barcode := NewBarcodeService(repo, config.Barcode, log)

	return &Service{
		Availability: NewAvailabilityService(repo, log),
		Booking:      NewBookingService(repo, log),
		Equipment:    NewEquipmentService(repo, barcode, log),
		Barcode:      barcode,
	}
}
