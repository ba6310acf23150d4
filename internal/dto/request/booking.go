package request

type CreateBookingRequest struct {
	ClientID      string `json:"client_id" validate:"required,uuid"`
	EquipmentID   string `json:"equipment_id" validate:"required,uuid"`
	ProjectID     string `json:"project_id" validate:"omitempty,uuid"`
	StartDate     string `json:"start_date" validate:"required"`
	EndDate       string `json:"end_date" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
	TotalAmount   string `json:"total_amount" validate:"required"`
	DepositAmount string `json:"deposit_amount" validate:"omitempty"`
}

type BatchBookingItem struct {
	EquipmentID string `json:"equipment_id" validate:"required,uuid"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	TotalAmount string `json:"total_amount" validate:"required"`
}

type BatchBookingRequest struct {
	ProjectID string             `json:"project_id" validate:"required,uuid"`
	Items     []BatchBookingItem `json:"items" validate:"required,min=1,dive"`
}

type ChangeBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ChangePaymentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
