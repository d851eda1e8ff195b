package account

import (
	"context"

	"github.com/BruksfildServices01/garage-coop/internal/models"
)

type ListFilter struct {
	Query  string
	Status string
	Page   int
	Limit  int
}

// ProfileFields is a partial profile write; nil fields are not touched.
type ProfileFields struct {
	Name     *string
	Phone    *string
	Settings []byte
}

// Each Update* method writes only its own columns and reports
// account_not_found when no row matched.
type Repository interface {
	Create(ctx context.Context, acc *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
	List(ctx context.Context, f ListFilter) ([]models.Account, int64, error)

	UpdatePassword(ctx context.Context, id uint, hash string) error
	UpdateStatus(ctx context.Context, id uint, status Status) error
	UpdateProfileFields(ctx context.Context, id uint, fields ProfileFields) error
	UpdateEmail(ctx context.Context, id uint, email string) error
	UpdatePhotoKey(ctx context.Context, id uint, key string) error
}
