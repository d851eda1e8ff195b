package garage

import (
	"context"

	"github.com/BruksfildServices01/garage-coop/internal/audit"
	accountDomain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	domain "github.com/BruksfildServices01/garage-coop/internal/domain/garage"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

var errNotAvailable = httperr.ErrConflict("garage_not_available", "Garage unit is not available.")

type AssignInput struct {
	ActorID uint
	UnitID  uint
	OwnerID uint
}

// AssignGarage hands an available unit to an owner. The status check and the
// write are one conditional update, so of two racing requests exactly one
// wins and the loser sees the unit as taken.
type AssignGarage struct {
	repo     domain.Repository
	accounts accountDomain.Repository
	audit    *audit.Dispatcher
}

func NewAssignGarage(
	repo domain.Repository,
	accounts accountDomain.Repository,
	audit *audit.Dispatcher,
) *AssignGarage {
	return &AssignGarage{
		repo:     repo,
		accounts: accounts,
		audit:    audit,
	}
}

func (uc *AssignGarage) Execute(ctx context.Context, input AssignInput) (*models.GarageUnit, error) {

	if input.OwnerID == 0 {
		return nil, httperr.ErrValidation("invalid_owner", "Owner is required.")
	}

	owner, err := uc.accounts.GetByID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if accountDomain.Status(owner.Status) != accountDomain.StatusActive {
		return nil, httperr.ErrValidation("invalid_owner", "Owner account is disabled.")
	}

	ok, err := uc.repo.Assign(ctx, input.UnitID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		unit, err := uc.repo.GetByID(ctx, input.UnitID)
		if err != nil {
			return nil, err
		}
		if err := domain.CanAssign(domain.Status(unit.Status)); err != nil {
			return nil, err
		}
		// became available again after losing the race
		return nil, errNotAvailable
	}

	unit, err := uc.repo.GetByID(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor(input.ActorID),
		Action:   "garage_assigned",
		Entity:   "garage_unit",
		EntityID: &unit.ID,
		Metadata: map[string]uint{"owner_id": input.OwnerID},
	})

	return unit, nil
}
