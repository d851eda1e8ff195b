package account

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *models.Account `json:"account"`
}

type Login struct {
	repo   domain.Repository
	hasher domain.PasswordHasher
	tokens domain.TokenIssuer
}

func NewLogin(
	repo domain.Repository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
) *Login {
	return &Login{repo: repo, hasher: hasher, tokens: tokens}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {

	acc, err := uc.repo.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := uc.hasher.Compare(acc.PasswordHash, input.Password); err != nil {
		return nil, errInvalidCredentials
	}

	// status is only reported once the password matched
	if acc.Status != string(domain.StatusActive) {
		return nil, httperr.ErrForbidden("account_disabled", "This account is disabled.")
	}

	token, exp, err := uc.tokens.Issue(acc.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: exp,
		Account:   acc,
	}, nil
}
