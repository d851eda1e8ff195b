package account

import (
	"context"
	"encoding/json"
	"strings"

	domain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	"github.com/BruksfildServices01/garage-coop/internal/domain/role"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

// Profile is an account together with its resolved role.
type Profile struct {
	models.Account
	Role role.Role `json:"role"`
}

// ===============================
// Get
// ===============================

type GetProfile struct {
	repo     domain.Repository
	resolver RoleResolver
}

func NewGetProfile(repo domain.Repository, resolver RoleResolver) *GetProfile {
	return &GetProfile{repo: repo, resolver: resolver}
}

func (uc *GetProfile) Execute(ctx context.Context, accountID uint) (*Profile, error) {
	acc, err := uc.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	r, err := uc.resolver.Resolve(ctx, acc.ID)
	if err != nil {
		return nil, err
	}

	return &Profile{Account: *acc, Role: r}, nil
}

// ===============================
// Update
// ===============================

// UpdateProfileInput carries a partial update; nil fields are left alone.
type UpdateProfileInput struct {
	AccountID uint
	Name      *string
	Phone     *string
	Settings  json.RawMessage
}

type UpdateProfile struct {
	repo domain.Repository
}

func NewUpdateProfile(repo domain.Repository) *UpdateProfile {
	return &UpdateProfile{repo: repo}
}

func (uc *UpdateProfile) Execute(ctx context.Context, input UpdateProfileInput) (*models.Account, error) {

	var fields domain.ProfileFields

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > 100 {
			return nil, httperr.ErrValidation("invalid_name", "Name is required and must be at most 100 characters.")
		}
		fields.Name = &name
	}

	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if len(phone) > 20 {
			return nil, httperr.ErrValidation("invalid_phone", "Phone must be at most 20 characters.")
		}
		fields.Phone = &phone
	}

	if len(input.Settings) > 0 {
		var obj map[string]any
		if err := json.Unmarshal(input.Settings, &obj); err != nil || obj == nil {
			return nil, httperr.ErrValidation("invalid_settings", "Settings must be a JSON object.")
		}
		fields.Settings = []byte(input.Settings)
	}

	if err := uc.repo.UpdateProfileFields(ctx, input.AccountID, fields); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, input.AccountID)
}
