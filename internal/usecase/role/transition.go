package role

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/garage-coop/internal/audit"
	domain "github.com/BruksfildServices01/garage-coop/internal/domain/role"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
)

type TransitionInput struct {
	AccountID uint
	Role      string
	ActorID   uint
}

type TransitionResult struct {
	AccountID uint        `json:"account_id"`
	Role      domain.Role `json:"role"`
}

// Transition makes the target role the account's only role. It is the one
// code path allowed to write role records.
type Transition struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransition(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Transition {
	return &Transition{
		repo:  repo,
		audit: audit,
	}
}

func (uc *Transition) Execute(
	ctx context.Context,
	input TransitionInput,
) (*TransitionResult, error) {

	target, err := domain.Parse(input.Role)
	if err != nil {
		return nil, err
	}

	assignment, err := domain.NewAssignment(input.AccountID, target)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceRole(ctx, input.AccountID, assignment); err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"account_id": input.AccountID,
			"role":       target,
		}).WithError(err).Error("role transition rolled back")
		return nil, httperr.ErrInternal("role_update_failed", "failed to update role")
	}

	var actor *uint
	if input.ActorID != 0 {
		actor = &input.ActorID
	}
	accountID := input.AccountID

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor,
		Action:   "role_changed",
		Entity:   "account",
		EntityID: &accountID,
		Metadata: map[string]any{"role": target},
	})

	return &TransitionResult{
		AccountID: input.AccountID,
		Role:      target,
	}, nil
}
