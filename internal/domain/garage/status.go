package garage

import (
	"strings"

	"github.com/BruksfildServices01/garage-coop/internal/httperr"
)

// ===============================
// Garage Unit Status
// ===============================

type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
		return st, nil
	}
	return "", httperr.ErrValidation("invalid_status", "Status must be available, occupied or maintenance.")
}

// ===============================
// Validations
// ===============================

// CanAssign: only an available unit can receive an owner.
func CanAssign(current Status) error {
	if current != StatusAvailable {
		return httperr.ErrConflict("garage_not_available", "Garage unit is not available.")
	}
	return nil
}

func CanRelease(current Status) error {
	if current != StatusOccupied {
		return httperr.ErrConflict("garage_not_occupied", "Garage unit is not occupied.")
	}
	return nil
}

// MaintenanceTransition returns the from/to pair for toggling maintenance.
func MaintenanceTransition(on bool) (from, to Status) {
	if on {
		return StatusAvailable, StatusMaintenance
	}
	return StatusMaintenance, StatusAvailable
}
