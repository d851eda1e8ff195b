package account

import (
	"context"
	"io"
	"time"
)

// Collaborators consumed by the account use cases. Implementations live in
// internal/auth, internal/infra and internal/notify.

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(accountID uint) (token string, expiresAt time.Time, err error)
}

// TokenStore keeps single-use tokens for password reset and email change.
type TokenStore interface {
	Put(ctx context.Context, purpose, token, payload string, ttl time.Duration) error
	// Take returns the payload and deletes the token. A missing or expired
	// token yields ErrTokenNotFound.
	Take(ctx context.Context, purpose, token string) (string, error)
}

type PhotoStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

// DomainChecker reports whether the domain of an email can receive mail.
type DomainChecker func(email string) bool
