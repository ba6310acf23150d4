package adaptor

import (
	"net/http"

	"equipment-rental/internal/usecase"
	"equipment-rental/pkg/apperr"
	"equipment-rental/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking   *BookingHandler
	Equipment *EquipmentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:   NewBookingHandler(service.Booking, service.Availability, log),
		Equipment: NewEquipmentHandler(service.Equipment, service.Barcode, log),
	}
}

// handleServiceError translates the domain error taxonomy into HTTP codes.
// This is the only place that conversion happens; anything outside the
// taxonomy is an unexpected internal failure, logged and turned generic here.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case apperr.IsNotFound(err):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case apperr.IsValidation(err):
		log.Warn(operation+" failed - validation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case apperr.IsAvailability(err):
		log.Warn(operation+" failed - interval conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case apperr.IsStatusTransition(err), apperr.IsState(err):
		log.Warn(operation+" failed - disallowed transition", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case apperr.IsBusiness(err):
		log.Warn(operation+" failed - business rule", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
