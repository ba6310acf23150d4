package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "available"
	EquipmentStatusRented      EquipmentStatus = "rented"
	EquipmentStatusMaintenance EquipmentStatus = "maintenance"
	EquipmentStatusBroken      EquipmentStatus = "broken"
	EquipmentStatusRetired     EquipmentStatus = "retired"
)

// equipmentTransitions covers direct status requests. Available <-> Rented is
// owned by the booking synchronizer and never requested directly, so Rented is
// absent from every target list. Retired is terminal.
var equipmentTransitions = map[EquipmentStatus][]EquipmentStatus{
	EquipmentStatusAvailable:   {EquipmentStatusMaintenance, EquipmentStatusBroken, EquipmentStatusRetired},
	EquipmentStatusRented:      {EquipmentStatusMaintenance, EquipmentStatusBroken, EquipmentStatusRetired},
	EquipmentStatusMaintenance: {EquipmentStatusAvailable, EquipmentStatusBroken, EquipmentStatusRetired},
	EquipmentStatusBroken:      {EquipmentStatusAvailable, EquipmentStatusMaintenance, EquipmentStatusRetired},
	EquipmentStatusRetired:     {},
}

// CanTransitionTo reports whether a direct request may move current -> next.
// Guards against active bookings are enforced separately by the usecase layer.
func (s EquipmentStatus) CanTransitionTo(next EquipmentStatus) bool {
	for _, allowed := range equipmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the directly requestable next-states from s.
func (s EquipmentStatus) AllowedTransitions() []EquipmentStatus {
	return equipmentTransitions[s]
}

// IsValid reports whether s is a known equipment status.
func (s EquipmentStatus) IsValid() bool {
	_, ok := equipmentTransitions[s]
	return ok
}

type Equipment struct {
	Base
	CategoryID   uuid.UUID       `db:"category_id"`
	Name         string          `db:"name"`
	SerialNumber *string         `db:"serial_number"`
	Barcode      string          `db:"barcode"`
	DailyRate    decimal.Decimal `db:"daily_rate"`
	Status       EquipmentStatus `db:"status"`
}

// IsConsumable reports whether the item is unconstrained stock. Equipment
// without a serial number never conflicts on booking intervals.
func (e *Equipment) IsConsumable() bool {
	return e.SerialNumber == nil || *e.SerialNumber == ""
}
