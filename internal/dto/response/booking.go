package response

import (
	"time"

	"equipment-rental/internal/data/entity"
)

type BookingResponse struct {
	ID            string    `json:"id"`
	EquipmentID   string    `json:"equipment_id"`
	ClientID      string    `json:"client_id"`
	ProjectID     *string   `json:"project_id,omitempty"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Quantity      int       `json:"quantity"`
	TotalAmount   string    `json:"total_amount"`
	PaidAmount    string    `json:"paid_amount"`
	DepositAmount string    `json:"deposit_amount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	var projectID *string
	if b.ProjectID != nil {
		id := b.ProjectID.String()
		projectID = &id
	}

	return BookingResponse{
		ID:            b.ID.String(),
		EquipmentID:   b.EquipmentID.String(),
		ClientID:      b.ClientID.String(),
		ProjectID:     projectID,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Quantity:      b.Quantity,
		TotalAmount:   b.TotalAmount.String(),
		PaidAmount:    b.PaidAmount.String(),
		DepositAmount: b.DepositAmount.String(),
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type BatchBookingFailure struct {
	EquipmentID string `json:"equipment_id"`
	Error       string `json:"error"`
}

type BatchBookingResponse struct {
	Created  []BookingResponse     `json:"created"`
	Failures []BatchBookingFailure `json:"failures"`
}
