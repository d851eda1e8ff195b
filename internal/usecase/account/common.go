package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/BruksfildServices01/garage-coop/internal/domain/role"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
)

const (
	purposeReset       = "password_reset"
	purposeEmailChange = "email_change"
)

var (
	errInvalidCredentials = httperr.ErrUnauthorized("invalid_credentials", "Invalid email or password.")
	errInvalidToken       = httperr.ErrValidation("invalid_token", "The link is invalid or has expired.")
)

// RoleResolver is the read side of the role model as seen by account views.
type RoleResolver interface {
	Resolve(ctx context.Context, accountID uint) (role.Role, error)
}

// newToken returns 32 random bytes, hex encoded, for single-use links.
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
