package garage

import (
	"context"

	"github.com/BruksfildServices01/garage-coop/internal/audit"
	domain "github.com/BruksfildServices01/garage-coop/internal/domain/garage"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

type MaintenanceInput struct {
	ActorID uint
	UnitID  uint
	On      bool
}

// SetMaintenance moves an available unit into maintenance or back. Occupied
// units must be released first.
type SetMaintenance struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetMaintenance(repo domain.Repository, audit *audit.Dispatcher) *SetMaintenance {
	return &SetMaintenance{repo: repo, audit: audit}
}

func (uc *SetMaintenance) Execute(ctx context.Context, input MaintenanceInput) (*models.GarageUnit, error) {

	from, to := domain.MaintenanceTransition(input.On)

	ok, err := uc.repo.SwapStatus(ctx, input.UnitID, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, err := uc.repo.GetByID(ctx, input.UnitID); err != nil {
			return nil, err
		}
		return nil, httperr.ErrConflict("invalid_state", "Garage unit must be "+string(from)+".")
	}

	unit, err := uc.repo.GetByID(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor(input.ActorID),
		Action:   "garage_status_changed",
		Entity:   "garage_unit",
		EntityID: &unit.ID,
		Metadata: map[string]string{"from": string(from), "to": string(to)},
	})

	return unit, nil
}
