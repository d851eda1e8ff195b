package account

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/garage-coop/internal/audit"
	domain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Register creates an active account with no role record. Roles are granted
// separately through the role transition.
type Register struct {
	repo        domain.Repository
	hasher      domain.PasswordHasher
	checkDomain domain.DomainChecker
	audit       *audit.Dispatcher
}

func NewRegister(
	repo domain.Repository,
	hasher domain.PasswordHasher,
	checkDomain domain.DomainChecker,
	audit *audit.Dispatcher,
) *Register {
	return &Register{
		repo:        repo,
		hasher:      hasher,
		checkDomain: checkDomain,
		audit:       audit,
	}
}

func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*models.Account, error) {

	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > 100 {
		return nil, httperr.ErrValidation("invalid_name", "Name is required and must be at most 100 characters.")
	}

	email := domain.NormalizeEmail(input.Email)
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if uc.checkDomain != nil && !uc.checkDomain(email) {
		return nil, httperr.ErrValidation("invalid_email_domain", "The email domain does not look valid.")
	}

	hashed, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	acc := &models.Account{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hashed,
		Status:       string(domain.StatusActive),
	}

	if err := uc.repo.Create(ctx, acc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &acc.ID,
		Action:   "account_registered",
		Entity:   "account",
		EntityID: &acc.ID,
	})

	return acc, nil
}
