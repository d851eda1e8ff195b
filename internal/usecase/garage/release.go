package garage

import (
	"context"

	"github.com/BruksfildServices01/garage-coop/internal/audit"
	domain "github.com/BruksfildServices01/garage-coop/internal/domain/garage"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

type ReleaseInput struct {
	ActorID uint
	UnitID  uint
}

type ReleaseGarage struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReleaseGarage(repo domain.Repository, audit *audit.Dispatcher) *ReleaseGarage {
	return &ReleaseGarage{repo: repo, audit: audit}
}

func (uc *ReleaseGarage) Execute(ctx context.Context, input ReleaseInput) (*models.GarageUnit, error) {

	previous, ok, err := uc.repo.Release(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}
	if !ok {
		unit, err := uc.repo.GetByID(ctx, input.UnitID)
		if err != nil {
			return nil, err
		}
		if err := domain.CanRelease(domain.Status(unit.Status)); err != nil {
			return nil, err
		}
		return nil, httperr.ErrConflict("garage_not_occupied", "Garage unit is not occupied.")
	}

	unit, err := uc.repo.GetByID(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}

	meta := map[string]any{}
	if previous != nil {
		meta["previous_owner_id"] = *previous
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor(input.ActorID),
		Action:   "garage_released",
		Entity:   "garage_unit",
		EntityID: &unit.ID,
		Metadata: meta,
	})

	return unit, nil
}
