package account

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/garage-coop/internal/audit"
	domain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/notify"
)

// ===============================
// Request
// ===============================

// RequestPasswordReset answers the same way whether or not the email is
// registered.
type RequestPasswordReset struct {
	repo     domain.Repository
	tokens   domain.TokenStore
	notifier *notify.Dispatcher
	ttl      time.Duration
}

func NewRequestPasswordReset(
	repo domain.Repository,
	tokens domain.TokenStore,
	notifier *notify.Dispatcher,
	ttl time.Duration,
) *RequestPasswordReset {
	return &RequestPasswordReset{
		repo:     repo,
		tokens:   tokens,
		notifier: notifier,
		ttl:      ttl,
	}
}

func (uc *RequestPasswordReset) Execute(ctx context.Context, email string) error {

	email = domain.NormalizeEmail(email)
	if err := domain.ValidateEmail(email); err != nil {
		return err
	}

	acc, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			logrus.Debug("password reset requested for unknown email")
			return nil
		}
		return err
	}

	if acc.Status != string(domain.StatusActive) {
		return nil
	}

	token, err := newToken()
	if err != nil {
		return err
	}

	if err := uc.tokens.Put(ctx, purposeReset, token, strconv.FormatUint(uint64(acc.ID), 10), uc.ttl); err != nil {
		return err
	}

	uc.notifier.Dispatch(notify.Message{
		Kind:    notify.KindPasswordReset,
		To:      acc.Email,
		Subject: "Reset your password",
		Body:    "Use this code to choose a new password: " + token,
		Meta:    map[string]string{"token": token},
	})

	return nil
}

// ===============================
// Reset
// ===============================

type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

type ResetPassword struct {
	repo   domain.Repository
	tokens domain.TokenStore
	hasher domain.PasswordHasher
	audit  *audit.Dispatcher
}

func NewResetPassword(
	repo domain.Repository,
	tokens domain.TokenStore,
	hasher domain.PasswordHasher,
	audit *audit.Dispatcher,
) *ResetPassword {
	return &ResetPassword{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		audit:  audit,
	}
}

func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) error {

	// validate first so a weak password does not burn the token
	if err := domain.ValidatePassword(input.NewPassword); err != nil {
		return err
	}
	if input.Token == "" {
		return errInvalidToken
	}

	payload, err := uc.tokens.Take(ctx, purposeReset, input.Token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return errInvalidToken
		}
		return err
	}

	id, err := strconv.ParseUint(payload, 10, 64)
	if err != nil {
		return errInvalidToken
	}

	acc, err := uc.repo.GetByID(ctx, uint(id))
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return errInvalidToken
		}
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
		Action:   "password_reset",
		Entity:   "account",
		EntityID: &acc.ID,
	})

	return nil
}
