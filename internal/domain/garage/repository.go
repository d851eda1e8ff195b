package garage

import (
	"context"

	"github.com/BruksfildServices01/garage-coop/internal/models"
)

type Repository interface {
	Create(ctx context.Context, unit *models.GarageUnit) error
	GetByID(ctx context.Context, id uint) (*models.GarageUnit, error)
	List(ctx context.Context, status string) ([]models.GarageUnit, error)

	// -------- Conditional updates --------
	// Each reports whether the row matched its expected status and changed.

	Assign(ctx context.Context, unitID, ownerID uint) (bool, error)
	// Release also returns the owner that was actually released.
	Release(ctx context.Context, unitID uint) (previousOwner *uint, released bool, err error)
	SwapStatus(ctx context.Context, unitID uint, from, to Status) (bool, error)
}
