package adaptor

import (
	"encoding/json"
	"net/http"

	"equipment-rental/internal/dto/request"
	"equipment-rental/internal/dto/response"
	"equipment-rental/internal/usecase"
	"equipment-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EquipmentHandler struct {
	service usecase.EquipmentService
	barcode usecase.BarcodeService
	log     *zap.Logger
}

func NewEquipmentHandler(service usecase.EquipmentService, barcode usecase.BarcodeService, log *zap.Logger) *EquipmentHandler {
	return &EquipmentHandler{
		service: service,
		barcode: barcode,
		log:     log.With(zap.String("handler", "equipment")),
	}
}

// CreateEquipment handles POST /api/equipment
func (h *EquipmentHandler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req request.CreateEquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	equipment, err := h.service.CreateEquipment(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create equipment")
		return
	}

	utils.ResponseCreated(w, "success", equipment)
}

// GetEquipment handles GET /api/equipment/{id}
func (h *EquipmentHandler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.service.GetEquipment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get equipment")
		return
	}

	utils.ResponseSuccess(w, "success", equipment)
}

// GetEquipmentByBarcode handles GET /api/equipment/barcode/{code}
func (h *EquipmentHandler) GetEquipmentByBarcode(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.service.GetEquipmentByBarcode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		handleServiceError(h.log, w, err, "get equipment by barcode")
		return
	}

	utils.ResponseSuccess(w, "success", equipment)
}

// ListEquipment handles GET /api/equipment
func (h *EquipmentHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	equipment, err := h.service.ListEquipment(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list equipment")
		return
	}

	utils.ResponseSuccess(w, "success", equipment)
}

// ChangeEquipmentStatus handles PUT /api/equipment/{id}/status
func (h *EquipmentHandler) ChangeEquipmentStatus(w http.ResponseWriter, r *http.Request) {
	var req request.ChangeEquipmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	equipment, err := h.service.ChangeEquipmentStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		handleServiceError(h.log, w, err, "change equipment status")
		return
	}

	utils.ResponseSuccess(w, "success", equipment)
}

// GenerateBarcode handles POST /api/barcodes
func (h *EquipmentHandler) GenerateBarcode(w http.ResponseWriter, r *http.Request) {
	code, err := h.barcode.Generate(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "generate barcode")
		return
	}

	utils.ResponseCreated(w, "success", response.BarcodeResponse{Barcode: code})
}

// ValidateBarcode handles GET /api/barcodes/{code}/validate
func (h *EquipmentHandler) ValidateBarcode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	utils.ResponseSuccess(w, "success", response.BarcodeValidationResponse{
		Barcode: code,
		Valid:   h.barcode.Validate(code),
	})
}
