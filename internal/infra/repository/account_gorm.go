package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

var errEmailExists = httperr.ErrConflict("email_already_exists", "An account with this email already exists.")

func (r *AccountGormRepository) Create(ctx context.Context, acc *models.Account) error {
	if err := r.db.WithContext(ctx).Create(acc).Error; err != nil {
		if IsUniqueViolation(err) {
			return errEmailExists
		}
		return err
	}
	return nil
}

func (r *AccountGormRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	var acc models.Account
	if err := r.db.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &acc, nil
}

func (r *AccountGormRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc models.Account
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&acc).Error; err != nil {
		return nil, notFound(err)
	}
	return &acc, nil
}

func (r *AccountGormRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ======================================================
// TARGETED WRITES
// ======================================================

func (r *AccountGormRepository) updateColumns(ctx context.Context, id uint, values map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Updates(values)
	if res.Error != nil {
		if IsUniqueViolation(res.Error) {
			return errEmailExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *AccountGormRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.updateColumns(ctx, id, map[string]any{"password_hash": hash})
}

func (r *AccountGormRepository) UpdateStatus(ctx context.Context, id uint, status domain.Status) error {
	return r.updateColumns(ctx, id, map[string]any{"status": string(status)})
}

func (r *AccountGormRepository) UpdateProfileFields(ctx context.Context, id uint, fields domain.ProfileFields) error {
	values := map[string]any{}
	if fields.Name != nil {
		values["name"] = *fields.Name
	}
	if fields.Phone != nil {
		values["phone"] = *fields.Phone
	}
	if fields.Settings != nil {
		values["settings"] = datatypes.JSON(fields.Settings)
	}
	if len(values) == 0 {
		// still report a missing account
		_, err := r.GetByID(ctx, id)
		return err
	}
	return r.updateColumns(ctx, id, values)
}

func (r *AccountGormRepository) UpdateEmail(ctx context.Context, id uint, email string) error {
	return r.updateColumns(ctx, id, map[string]any{"email": email})
}

func (r *AccountGormRepository) UpdatePhotoKey(ctx context.Context, id uint, key string) error {
	return r.updateColumns(ctx, id, map[string]any{"photo_key": key})
}

func (r *AccountGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Account, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Account{})

	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []models.Account
	if err := q.
		Order("id ASC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&accounts).Error; err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound("account_not_found", "Account not found.")
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AccountGormRepository)(nil)
