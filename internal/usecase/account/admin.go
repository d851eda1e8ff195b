package account

import (
	"context"

	"github.com/BruksfildServices01/garage-coop/internal/audit"
	domain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// ======================================================
// LIST
// ======================================================

type ListAccountsInput struct {
	Query  string
	Status string
	Page   int
	Limit  int
}

type AccountPage struct {
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
	Items []Profile `json:"items"`
}

type ListAccounts struct {
	repo     domain.Repository
	resolver RoleResolver
}

func NewListAccounts(repo domain.Repository, resolver RoleResolver) *ListAccounts {
	return &ListAccounts{repo: repo, resolver: resolver}
}

func (uc *ListAccounts) Execute(ctx context.Context, input ListAccountsInput) (*AccountPage, error) {

	page := input.Page
	if page <= 0 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}

	if input.Status != "" {
		if _, err := domain.ParseStatus(input.Status); err != nil {
			return nil, err
		}
	}

	accounts, total, err := uc.repo.List(ctx, domain.ListFilter{
		Query:  input.Query,
		Status: input.Status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]Profile, 0, len(accounts))
	for _, acc := range accounts {
		r, err := uc.resolver.Resolve(ctx, acc.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, Profile{Account: acc, Role: r})
	}

	return &AccountPage{
		Page:  page,
		Limit: limit,
		Total: total,
		Items: items,
	}, nil
}

// ======================================================
// STATUS
// ======================================================

type SetStatusInput struct {
	ActorID   uint
	AccountID uint
	Status    string
}

type SetStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetStatus(repo domain.Repository, audit *audit.Dispatcher) *SetStatus {
	return &SetStatus{repo: repo, audit: audit}
}

func (uc *SetStatus) Execute(ctx context.Context, input SetStatusInput) (*models.Account, error) {

	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	if input.ActorID == input.AccountID && status == domain.StatusDisabled {
		return nil, httperr.ErrValidation("cannot_disable_self", "You cannot disable your own account.")
	}

	acc, err := uc.repo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if acc.Status == string(status) {
		return acc, nil
	}

	if err := uc.repo.UpdateStatus(ctx, acc.ID, status); err != nil {
		return nil, err
	}
	acc.Status = string(status)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &input.ActorID,
		Action:   "account_status_changed",
		Entity:   "account",
		EntityID: &acc.ID,
		Metadata: map[string]string{"status": acc.Status},
	})

	return acc, nil
}
