package role

import (
	"context"

	"github.com/sirupsen/logrus"

	accountDomain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	domain "github.com/BruksfildServices01/garage-coop/internal/domain/role"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
)

// BootstrapAdmin promotes a configured account to Admin at startup so a
// fresh install has someone able to grant roles.
type BootstrapAdmin struct {
	accounts   accountDomain.Repository
	resolver   *Resolver
	transition *Transition
}

func NewBootstrapAdmin(
	accounts accountDomain.Repository,
	resolver *Resolver,
	transition *Transition,
) *BootstrapAdmin {
	return &BootstrapAdmin{
		accounts:   accounts,
		resolver:   resolver,
		transition: transition,
	}
}

func (uc *BootstrapAdmin) Execute(ctx context.Context, email string) error {
	email = accountDomain.NormalizeEmail(email)
	if email == "" {
		return nil
	}

	acc, err := uc.accounts.GetByEmail(ctx, email)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			logrus.WithField("email", email).Warn("bootstrap admin account not registered yet")
			return nil
		}
		return err
	}

	current, err := uc.resolver.Resolve(ctx, acc.ID)
	if err != nil {
		return err
	}
	if current == domain.Admin {
		return nil
	}

	if _, err := uc.transition.Execute(ctx, TransitionInput{
		AccountID: acc.ID,
		Role:      string(domain.Admin),
	}); err != nil {
		return err
	}

	logrus.WithField("account_id", acc.ID).Info("bootstrap admin promoted")
	return nil
}
