package request

type CreateEquipmentRequest struct {
	CategoryID   string `json:"category_id" validate:"required,uuid"`
	Name         string `json:"name" validate:"required,min=1,max=200"`
	SerialNumber string `json:"serial_number" validate:"omitempty,max=120"`
	DailyRate    string `json:"daily_rate" validate:"required"`
}

type ChangeEquipmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
