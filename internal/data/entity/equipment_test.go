package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquipmentStatusTransitions(t *testing.T) {
	tests := []struct {
		from EquipmentStatus
		to   EquipmentStatus
		want bool
	}{
		{EquipmentStatusAvailable, EquipmentStatusMaintenance, true},
		{EquipmentStatusAvailable, EquipmentStatusBroken, true},
		{EquipmentStatusAvailable, EquipmentStatusRetired, true},

		{EquipmentStatusMaintenance, EquipmentStatusAvailable, true},
		{EquipmentStatusMaintenance, EquipmentStatusBroken, true},
		{EquipmentStatusBroken, EquipmentStatusAvailable, true},
		{EquipmentStatusBroken, EquipmentStatusMaintenance, true},

		{EquipmentStatusRetired, EquipmentStatusAvailable, false},
		{EquipmentStatusRetired, EquipmentStatusMaintenance, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestEquipmentStatusRentedNeverRequestable(t *testing.T) {
	// Rented belongs to the booking synchronizer; no direct request may set it.
	for _, from := range []EquipmentStatus{
		EquipmentStatusAvailable, EquipmentStatusRented, EquipmentStatusMaintenance,
		EquipmentStatusBroken, EquipmentStatusRetired,
	} {
		assert.False(t, from.CanTransitionTo(EquipmentStatusRented), "from %s", from)
	}
}

func TestEquipmentStatusIsValid(t *testing.T) {
	assert.True(t, EquipmentStatusRented.IsValid())
	assert.False(t, EquipmentStatus("lost").IsValid())
}

func TestEquipmentIsConsumable(t *testing.T) {
	serial := "SN-1042"
	empty := ""

	assert.True(t, (&Equipment{}).IsConsumable())
	assert.True(t, (&Equipment{SerialNumber: &empty}).IsConsumable())
	assert.False(t, (&Equipment{SerialNumber: &serial}).IsConsumable())
}
