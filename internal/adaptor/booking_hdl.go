package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"equipment-rental/internal/dto/request"
	"equipment-rental/internal/dto/response"
	"equipment-rental/internal/usecase"
	"equipment-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service      usecase.BookingService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, availability usecase.AvailabilityService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:      service,
		availability: availability,
		log:          log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// CreateProjectBookings handles POST /api/bookings/batch
func (h *BookingHandler) CreateProjectBookings(w http.ResponseWriter, r *http.Request) {
	var req request.BatchBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.CreateProjectBookings(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create project bookings")
		return
	}

	if len(result.Failures) > 0 {
		utils.ResponseMultiStatus(w, "partial success", result)
		return
	}
	utils.ResponseCreated(w, "success", result)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetClientBookings handles GET /api/clients/{id}/bookings
func (h *BookingHandler) GetClientBookings(w http.ResponseWriter, r *http.Request) {
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	bookings, err := h.service.GetClientBookings(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get client bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ChangeBookingStatus handles PUT /api/bookings/{id}/status
func (h *BookingHandler) ChangeBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req request.ChangeBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.ChangeBookingStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		handleServiceError(h.log, w, err, "change booking status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ChangePaymentStatus handles PUT /api/bookings/{id}/payment-status
func (h *BookingHandler) ChangePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req request.ChangePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.ChangePaymentStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		handleServiceError(h.log, w, err, "change payment status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// DeleteBooking handles DELETE /api/bookings/{id}?hard=true
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	hard := r.URL.Query().Get("hard") == "true"

	if err := h.service.DeleteBooking(r.Context(), chi.URLParam(r, "id"), hard); err != nil {
		handleServiceError(h.log, w, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// MarkOverdue handles POST /api/bookings/mark-overdue, invoked by the
// external calendar-driven sweep.
func (h *BookingHandler) MarkOverdue(w http.ResponseWriter, r *http.Request) {
	marked, err := h.service.MarkOverdueBookings(r.Context(), time.Now())
	if err != nil {
		handleServiceError(h.log, w, err, "mark overdue bookings")
		return
	}

	utils.ResponseSuccess(w, "success", map[string]int64{"marked": marked})
}

// CheckAvailability handles GET /api/availability
func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	equipmentID, err := uuid.Parse(query.Get("equipment_id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid equipment_id", nil)
		return
	}

	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid start, must be RFC 3339", nil)
		return
	}

	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid end, must be RFC 3339", nil)
		return
	}

	var exclude *uuid.UUID
	if raw := query.Get("exclude_booking_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid exclude_booking_id", nil)
			return
		}
		exclude = &id
	}

	available, err := h.availability.CheckAvailability(r.Context(), equipmentID, start, end, exclude)
	if err != nil {
		handleServiceError(h.log, w, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", response.AvailabilityResponse{
		EquipmentID: equipmentID.String(),
		StartDate:   start,
		EndDate:     end,
		Available:   available,
	})
}
