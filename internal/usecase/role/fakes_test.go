package role

import (
	"context"
	"sync"

	domain "github.com/BruksfildServices01/garage-coop/internal/domain/role"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

// fakeAccounts maps account id to status; absent ids are not found.
type fakeAccounts struct {
	mu       sync.Mutex
	statuses map[uint]string
	err      error
}

func activeAccounts(ids ...uint) *fakeAccounts {
	f := &fakeAccounts{statuses: map[uint]string{}}
	for _, id := range ids {
		f.statuses[id] = "active"
	}
	return f
}

func (f *fakeAccounts) set(id uint, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[id] = status
}

func (f *fakeAccounts) GetByID(_ context.Context, id uint) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	st, ok := f.statuses[id]
	if !ok {
		return nil, httperr.ErrNotFound("account_not_found", "Account not found.")
	}
	return &models.Account{ID: id, Status: st}, nil
}

type fakeRoleRepo struct {
	mu       sync.Mutex
	admins   map[uint]bool
	managers map[uint]bool
	members  map[uint]bool

	lookups    int
	lookupErr  error
	replaceErr error
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		admins:   map[uint]bool{},
		managers: map[uint]bool{},
		members:  map[uint]bool{},
	}
}

func (f *fakeRoleRepo) has(set map[uint]bool, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	return set[id], nil
}

func (f *fakeRoleRepo) HasAdministrator(_ context.Context, id uint) (bool, error) {
	return f.has(f.admins, id)
}

func (f *fakeRoleRepo) HasManager(_ context.Context, id uint) (bool, error) {
	return f.has(f.managers, id)
}

func (f *fakeRoleRepo) HasMember(_ context.Context, id uint) (bool, error) {
	return f.has(f.members, id)
}

func (f *fakeRoleRepo) ReplaceRole(_ context.Context, id uint, a domain.Assignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return f.replaceErr
	}
	delete(f.admins, id)
	delete(f.managers, id)
	delete(f.members, id)
	switch {
	case a.Administrator != nil:
		f.admins[id] = true
	case a.Manager != nil:
		f.managers[id] = true
	case a.Member != nil:
		f.members[id] = true
	}
	return nil
}
