package role

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/garage-coop/internal/domain/role"
)

func TestResolver_Precedence(t *testing.T) {
	repo := newFakeRoleRepo()
	resolver := NewResolver(repo)
	ctx := context.Background()

	got, err := resolver.Resolve(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Unknown, got)

	repo.members[1] = true
	got, _ = resolver.Resolve(ctx, 1)
	assert.Equal(t, domain.Member, got)

	repo.managers[1] = true
	got, _ = resolver.Resolve(ctx, 1)
	assert.Equal(t, domain.Manager, got)

	repo.admins[1] = true
	got, _ = resolver.Resolve(ctx, 1)
	assert.Equal(t, domain.Admin, got)
}

func TestResolver_StorageErrorNeverYieldsRole(t *testing.T) {
	repo := newFakeRoleRepo()
	repo.admins[1] = true
	repo.lookupErr = errors.New("connection refused")

	got, err := NewResolver(repo).Resolve(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, domain.Unknown, got)
}
