package account

import (
	"net/mail"
	"strings"

	"github.com/BruksfildServices01/garage-coop/internal/httperr"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

const MinPasswordLength = 6

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusActive, StatusDisabled:
		return st, nil
	}
	return "", httperr.ErrValidation("invalid_status", "Status must be active or disabled.")
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail expects an already normalised address.
func ValidateEmail(email string) error {
	if email == "" {
		return httperr.ErrValidation("invalid_email", "Email is required.")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return httperr.ErrValidation("invalid_email", "Email is not valid.")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return httperr.ErrValidation("weak_password", "Password must be at least 6 characters.")
	}
	return nil
}
