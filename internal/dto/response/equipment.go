package response

import (
	"time"

	"equipment-rental/internal/data/entity"
)

type EquipmentResponse struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	Name         string    `json:"name"`
	SerialNumber *string   `json:"serial_number,omitempty"`
	Barcode      string    `json:"barcode"`
	DailyRate    string    `json:"daily_rate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func EquipmentToResponse(e *entity.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:           e.ID.String(),
		CategoryID:   e.CategoryID.String(),
		Name:         e.Name,
		SerialNumber: e.SerialNumber,
		Barcode:      e.Barcode,
		DailyRate:    e.DailyRate.String(),
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

type BarcodeResponse struct {
	Barcode string `json:"barcode"`
}

type BarcodeValidationResponse struct {
	Barcode string `json:"barcode"`
	Valid   bool   `json:"valid"`
}

type AvailabilityResponse struct {
	EquipmentID string    `json:"equipment_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Available   bool      `json:"available"`
}
