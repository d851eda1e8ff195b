package role

import "context"

type Repository interface {
	// -------- Existence (resolver) --------
	HasAdministrator(ctx context.Context, accountID uint) (bool, error)
	HasManager(ctx context.Context, accountID uint) (bool, error)
	HasMember(ctx context.Context, accountID uint) (bool, error)

	// -------- Transition --------

	// ReplaceRole atomically deletes every role record of the account and
	// inserts the assignment's record. On failure nothing changes.
	ReplaceRole(ctx context.Context, accountID uint, a Assignment) error
}
