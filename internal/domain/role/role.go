package role

import (
	"strings"

	"github.com/BruksfildServices01/garage-coop/internal/httperr"
)

// ===============================
// Role
// ===============================

type Role string

const (
	Admin   Role = "Admin"
	Manager Role = "Manager"
	Member  Role = "Default member"
	Unknown Role = "Unknown"
)

var labels = map[string]Role{
	"admin":          Admin,
	"administrator":  Admin,
	"manager":        Manager,
	"default member": Member,
	"default_member": Member,
	"member":         Member,
}

// Parse maps a client-supplied label onto an assignable role. Unknown is
// never assignable.
func Parse(label string) (Role, error) {
	r, ok := labels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return Unknown, httperr.ErrValidation("invalid_role", "Invalid role specified")
	}
	return r, nil
}

// ===============================
// Threshold
// ===============================

type Threshold string

const (
	ThresholdUser    Threshold = "user"
	ThresholdManager Threshold = "manager"
	ThresholdAdmin   Threshold = "admin"
)

func ParseThreshold(s string) (Threshold, bool) {
	switch t := Threshold(strings.ToLower(strings.TrimSpace(s))); t {
	case ThresholdUser, ThresholdManager, ThresholdAdmin:
		return t, true
	}
	return "", false
}

// Allows reports whether a caller holding r passes t. Admin passes the
// manager threshold as a permission shortcut only; the role tables stay
// disjoint.
func (t Threshold) Allows(r Role) bool {
	switch t {
	case ThresholdUser:
		return true
	case ThresholdManager:
		return r == Manager || r == Admin
	case ThresholdAdmin:
		return r == Admin
	}
	return false
}
