package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/garage-coop/internal/domain/role"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

func countRoles(t *testing.T, repo *RoleGormRepository, accountID uint) (admin, manager, member bool) {
	t.Helper()
	ctx := context.Background()
	var err error
	admin, err = repo.HasAdministrator(ctx, accountID)
	require.NoError(t, err)
	manager, err = repo.HasManager(ctx, accountID)
	require.NoError(t, err)
	member, err = repo.HasMember(ctx, accountID)
	require.NoError(t, err)
	return
}

func TestRoleRepository_ReplaceRoleLeavesSingleRecord(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRoleGormRepository(gdb)
	acc := seedAccount(t, gdb, "a@coop.test")
	ctx := context.Background()

	for _, target := range []role.Role{role.Member, role.Manager, role.Admin, role.Member} {
		a, err := role.NewAssignment(acc.ID, target)
		require.NoError(t, err)
		require.NoError(t, repo.ReplaceRole(ctx, acc.ID, a))

		admin, manager, member := countRoles(t, repo, acc.ID)
		assert.Equal(t, target == role.Admin, admin, target)
		assert.Equal(t, target == role.Manager, manager, target)
		assert.Equal(t, target == role.Member, member, target)
	}
}

func TestRoleRepository_ReplaceRoleSameRoleIsIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRoleGormRepository(gdb)
	acc := seedAccount(t, gdb, "b@coop.test")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		a, err := role.NewAssignment(acc.ID, role.Manager)
		require.NoError(t, err)
		require.NoError(t, repo.ReplaceRole(ctx, acc.ID, a))
	}

	var n int64
	require.NoError(t, gdb.Model(&models.Manager{}).Where("account_id = ?", acc.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRoleRepository_ReplaceRoleUnknownAccount(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRoleGormRepository(gdb)

	a, err := role.NewAssignment(999, role.Admin)
	require.NoError(t, err)

	err = repo.ReplaceRole(context.Background(), 999, a)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "account_not_found"))

	var n int64
	require.NoError(t, gdb.Model(&models.Administrator{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRoleRepository_ReplaceRoleRollsBackOnInsertFailure(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRoleGormRepository(gdb)
	ctx := context.Background()

	first := seedAccount(t, gdb, "c@coop.test")
	second := seedAccount(t, gdb, "d@coop.test")

	a, err := role.NewAssignment(first.ID, role.Member)
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceRole(ctx, first.ID, a))

	mgr, err := role.NewAssignment(second.ID, role.Manager)
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceRole(ctx, second.ID, mgr))

	// Reusing the first membership id violates its unique index.
	clash, err := role.NewAssignment(second.ID, role.Member)
	require.NoError(t, err)
	clash.Member.MembershipID = a.Member.MembershipID

	require.Error(t, repo.ReplaceRole(ctx, second.ID, clash))

	admin, manager, member := countRoles(t, repo, second.ID)
	assert.False(t, admin)
	assert.True(t, manager, "previous role survives a failed transition")
	assert.False(t, member)
}

func TestRoleRepository_ReplaceRoleRejectsEmptyAssignment(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRoleGormRepository(gdb)
	acc := seedAccount(t, gdb, "e@coop.test")

	err := repo.ReplaceRole(context.Background(), acc.ID, role.Assignment{Role: role.Admin})
	require.Error(t, err)
}

func TestRoleRepository_MemberBalanceIsExact(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewRoleGormRepository(gdb)
	acc := seedAccount(t, gdb, "bal@coop.test")
	ctx := context.Background()

	a, err := role.NewAssignment(acc.ID, role.Member)
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceRole(ctx, acc.ID, a))

	var m models.Member
	require.NoError(t, gdb.Where("account_id = ?", acc.ID).Take(&m).Error)
	assert.Equal(t, models.Money(0), m.PaymentBalance)

	// ten cents, thirty times: 3.00 exactly
	for i := 0; i < 30; i++ {
		m.PaymentBalance += 10
	}
	require.NoError(t, gdb.Model(&m).Update("payment_balance", m.PaymentBalance).Error)

	var got models.Member
	require.NoError(t, gdb.Where("account_id = ?", acc.ID).Take(&got).Error)
	assert.Equal(t, models.Money(300), got.PaymentBalance)
	assert.Equal(t, "3.00", got.PaymentBalance.String())
}
