package role

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/garage-coop/internal/domain/role"
)

// Resolver derives the single effective role of an account. Checks run in
// precedence order so an account that somehow holds two records still
// resolves to the higher one.
type Resolver struct {
	repo domain.Repository
}

func NewResolver(repo domain.Repository) *Resolver {
	return &Resolver{repo: repo}
}

func (uc *Resolver) Resolve(ctx context.Context, accountID uint) (domain.Role, error) {

	checks := []struct {
		role domain.Role
		has  func(context.Context, uint) (bool, error)
	}{
		{domain.Admin, uc.repo.HasAdministrator},
		{domain.Manager, uc.repo.HasManager},
		{domain.Member, uc.repo.HasMember},
	}

	for _, c := range checks {
		ok, err := c.has(ctx, accountID)
		if err != nil {
			return domain.Unknown, fmt.Errorf("resolve role for account %d: %w", accountID, err)
		}
		if ok {
			return c.role, nil
		}
	}

	return domain.Unknown, nil
}
