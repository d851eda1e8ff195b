package account

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/BruksfildServices01/garage-coop/internal/audit"
	domain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
	"github.com/BruksfildServices01/garage-coop/internal/notify"
)

var errEmailTaken = httperr.ErrConflict("email_already_exists", "An account with this email already exists.")

type emailChangePayload struct {
	AccountID uint   `json:"account_id"`
	Email     string `json:"email"`
}

// ===============================
// Request
// ===============================

type RequestEmailChangeInput struct {
	AccountID uint
	NewEmail  string
}

type RequestEmailChange struct {
	repo        domain.Repository
	tokens      domain.TokenStore
	notifier    *notify.Dispatcher
	checkDomain domain.DomainChecker
	ttl         time.Duration
}

func NewRequestEmailChange(
	repo domain.Repository,
	tokens domain.TokenStore,
	notifier *notify.Dispatcher,
	checkDomain domain.DomainChecker,
	ttl time.Duration,
) *RequestEmailChange {
	return &RequestEmailChange{
		repo:        repo,
		tokens:      tokens,
		notifier:    notifier,
		checkDomain: checkDomain,
		ttl:         ttl,
	}
}

func (uc *RequestEmailChange) Execute(ctx context.Context, input RequestEmailChangeInput) error {

	email := domain.NormalizeEmail(input.NewEmail)
	if err := domain.ValidateEmail(email); err != nil {
		return err
	}

	acc, err := uc.repo.GetByID(ctx, input.AccountID)
	if err != nil {
		return err
	}
	if acc.Email == email {
		return httperr.ErrValidation("email_unchanged", "The new email matches the current one.")
	}

	if uc.checkDomain != nil && !uc.checkDomain(email) {
		return httperr.ErrValidation("invalid_email_domain", "The email domain does not look valid.")
	}

	taken, err := uc.repo.EmailTaken(ctx, email, acc.ID)
	if err != nil {
		return err
	}
	if taken {
		return errEmailTaken
	}

	token, err := newToken()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(emailChangePayload{AccountID: acc.ID, Email: email})
	if err != nil {
		return err
	}
	if err := uc.tokens.Put(ctx, purposeEmailChange, token, string(payload), uc.ttl); err != nil {
		return err
	}

	uc.notifier.Dispatch(notify.Message{
		Kind:    notify.KindEmailChange,
		To:      email,
		Subject: "Confirm your new email",
		Body:    "Use this code to confirm your new email address: " + token,
		Meta:    map[string]string{"token": token},
	})

	return nil
}

// ===============================
// Confirm
// ===============================

type ConfirmEmailChange struct {
	repo   domain.Repository
	tokens domain.TokenStore
	audit  *audit.Dispatcher
}

func NewConfirmEmailChange(
	repo domain.Repository,
	tokens domain.TokenStore,
	audit *audit.Dispatcher,
) *ConfirmEmailChange {
	return &ConfirmEmailChange{repo: repo, tokens: tokens, audit: audit}
}

func (uc *ConfirmEmailChange) Execute(ctx context.Context, token string) (*models.Account, error) {

	if token == "" {
		return nil, errInvalidToken
	}

	raw, err := uc.tokens.Take(ctx, purposeEmailChange, token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, errInvalidToken
		}
		return nil, err
	}

	var p emailChangePayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil || p.AccountID == 0 {
		return nil, errInvalidToken
	}

	acc, err := uc.repo.GetByID(ctx, p.AccountID)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, errInvalidToken
		}
		return nil, err
	}

	// someone may have registered the address since the request
	taken, err := uc.repo.EmailTaken(ctx, p.Email, acc.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errEmailTaken
	}

	previous := acc.Email
	if err := uc.repo.UpdateEmail(ctx, acc.ID, p.Email); err != nil {
		return nil, err
	}
	acc.Email = p.Email

	uc.audit.Dispatch(audit.Event{
		ActorID:  &acc.ID,
		Action:   "email_changed",
		Entity:   "account",
		EntityID: &acc.ID,
		Metadata: map[string]string{"from": previous, "to": acc.Email},
	})

	return acc, nil
}
