package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/garage-coop/internal/domain/role"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

type RoleGormRepository struct {
	db *gorm.DB
}

func NewRoleGormRepository(db *gorm.DB) *RoleGormRepository {
	return &RoleGormRepository{db: db}
}

// --------------------------------------------------
// Existence
// --------------------------------------------------

func (r *RoleGormRepository) HasAdministrator(ctx context.Context, accountID uint) (bool, error) {
	return r.exists(ctx, &models.Administrator{}, accountID)
}

func (r *RoleGormRepository) HasManager(ctx context.Context, accountID uint) (bool, error) {
	return r.exists(ctx, &models.Manager{}, accountID)
}

func (r *RoleGormRepository) HasMember(ctx context.Context, accountID uint) (bool, error) {
	return r.exists(ctx, &models.Member{}, accountID)
}

func (r *RoleGormRepository) exists(ctx context.Context, model any, accountID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Transition
// --------------------------------------------------

func (r *RoleGormRepository) ReplaceRole(
	ctx context.Context,
	accountID uint,
	a domain.Assignment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Touching the account row takes its row lock, so concurrent
		// transitions for the same account run one after the other.
		res := tx.Model(&models.Account{}).
			Where("id = ?", accountID).
			Update("updated_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrNotFound("account_not_found", "Account not found.")
		}

		for _, model := range []any{&models.Administrator{}, &models.Manager{}, &models.Member{}} {
			if err := tx.Where("account_id = ?", accountID).Delete(model).Error; err != nil {
				return err
			}
		}

		var record any
		switch {
		case a.Administrator != nil:
			record = a.Administrator
		case a.Manager != nil:
			record = a.Manager
		case a.Member != nil:
			record = a.Member
		default:
			return fmt.Errorf("empty role assignment for %q", a.Role)
		}

		return tx.Create(record).Error
	})
}

// Compile-time check
var _ domain.Repository = (*RoleGormRepository)(nil)
