package role

import (
	"context"

	"github.com/sirupsen/logrus"

	accountDomain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	domain "github.com/BruksfildServices01/garage-coop/internal/domain/role"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

const (
	DecisionAllow        = "allow"
	DecisionUnauthorized = "unauthorized"
	DecisionForbidden    = "forbidden"
	DecisionDisabled     = "disabled"
	DecisionError        = "error"
)

// DecisionObserver is told about every gate outcome (metrics).
type DecisionObserver func(threshold domain.Threshold, decision string)

// AccountReader is the slice of the account repository the gate needs.
type AccountReader interface {
	GetByID(ctx context.Context, id uint) (*models.Account, error)
}

// Gate decides per request whether a caller meets a role threshold. Nothing
// is cached: a role or status change applies to the very next request.
type Gate struct {
	accounts AccountReader
	resolver *Resolver
	observe  DecisionObserver
}

func NewGate(accounts AccountReader, resolver *Resolver, observe DecisionObserver) *Gate {
	if observe == nil {
		observe = func(domain.Threshold, string) {}
	}
	return &Gate{accounts: accounts, resolver: resolver, observe: observe}
}

var (
	errUnauthorized = httperr.ErrUnauthorized("unauthorized", "Unauthorized")
	errForbidden    = httperr.ErrForbidden("forbidden", "Forbidden")
	errDisabled     = httperr.ErrForbidden("account_disabled", "This account has been disabled.")
	errGate         = httperr.ErrInternal("authorization_failed", "Something went wrong. Please try again later.")
)

func (g *Gate) Check(ctx context.Context, threshold domain.Threshold, accountID uint) error {
	if accountID == 0 {
		g.observe(threshold, DecisionUnauthorized)
		return errUnauthorized
	}

	acc, err := g.accounts.GetByID(ctx, accountID)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			g.observe(threshold, DecisionUnauthorized)
			return errUnauthorized
		}
		logrus.WithField("account_id", accountID).WithError(err).Error("gate could not load account")
		g.observe(threshold, DecisionError)
		return errGate
	}
	if accountDomain.Status(acc.Status) != accountDomain.StatusActive {
		g.observe(threshold, DecisionDisabled)
		return errDisabled
	}

	if threshold == domain.ThresholdUser {
		g.observe(threshold, DecisionAllow)
		return nil
	}

	r, err := g.resolver.Resolve(ctx, accountID)
	if err != nil {
		logrus.WithField("account_id", accountID).WithError(err).Error("gate could not resolve role")
		g.observe(threshold, DecisionError)
		return errGate
	}

	if !threshold.Allows(r) {
		g.observe(threshold, DecisionForbidden)
		return errForbidden
	}

	g.observe(threshold, DecisionAllow)
	return nil
}
