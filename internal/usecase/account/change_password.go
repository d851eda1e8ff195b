package account

import (
	"context"

	"github.com/BruksfildServices01/garage-coop/internal/audit"
	domain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
)

type ChangePasswordInput struct {
	AccountID   uint
	OldPassword string
	NewPassword string
}

type ChangePassword struct {
	repo   domain.Repository
	hasher domain.PasswordHasher
	audit  *audit.Dispatcher
}

func NewChangePassword(
	repo domain.Repository,
	hasher domain.PasswordHasher,
	audit *audit.Dispatcher,
) *ChangePassword {
	return &ChangePassword{repo: repo, hasher: hasher, audit: audit}
}

func (uc *ChangePassword) Execute(ctx context.Context, input ChangePasswordInput) error {

	acc, err := uc.repo.GetByID(ctx, input.AccountID)
	if err != nil {
		return err
	}

	if err := uc.hasher.Compare(acc.PasswordHash, input.OldPassword); err != nil {
		return errInvalidCredentials
	}

	if err := domain.ValidatePassword(input.NewPassword); err != nil {
		return err
	}

	hashed, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	if err := uc.repo.UpdatePassword(ctx, acc.ID, hashed); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &acc.ID,
		Action:   "password_changed",
		Entity:   "account",
		EntityID: &acc.ID,
	})

	return nil
}
