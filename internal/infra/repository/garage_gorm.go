package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/garage-coop/internal/domain/garage"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

type GarageGormRepository struct {
	db *gorm.DB
}

func NewGarageGormRepository(db *gorm.DB) *GarageGormRepository {
	return &GarageGormRepository{db: db}
}

func (r *GarageGormRepository) Create(ctx context.Context, unit *models.GarageUnit) error {
	if err := r.db.WithContext(ctx).Create(unit).Error; err != nil {
		if IsUniqueViolation(err) {
			return httperr.ErrConflict("garage_number_exists", "A garage unit with this number already exists.")
		}
		return err
	}
	return nil
}

func (r *GarageGormRepository) GetByID(ctx context.Context, id uint) (*models.GarageUnit, error) {
	var unit models.GarageUnit
	if err := r.db.WithContext(ctx).First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("garage_not_found", "Garage unit not found.")
		}
		return nil, err
	}
	return &unit, nil
}

func (r *GarageGormRepository) List(ctx context.Context, status string) ([]models.GarageUnit, error) {
	q := r.db.WithContext(ctx).Model(&models.GarageUnit{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var units []models.GarageUnit
	if err := q.Order("garage_number ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// --------------------------------------------------
// Conditional updates (single statement compare-and-swap)
// --------------------------------------------------

func (r *GarageGormRepository) Assign(ctx context.Context, unitID, ownerID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.GarageUnit{}).
		Where("id = ? AND status = ? AND owner_id IS NULL", unitID, domain.StatusAvailable).
		Updates(map[string]any{
			"owner_id": ownerID,
			"status":   domain.StatusOccupied,
		})
	return res.RowsAffected > 0, res.Error
}

// Release locks the occupied row, so the owner it reads is the one it clears.
func (r *GarageGormRepository) Release(ctx context.Context, unitID uint) (*uint, bool, error) {
	var (
		previous *uint
		released bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var unit models.GarageUnit
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", unitID, domain.StatusOccupied).
			Take(&unit).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		res := tx.Model(&models.GarageUnit{}).
			Where("id = ? AND status = ?", unitID, domain.StatusOccupied).
			Updates(map[string]any{
				"owner_id": nil,
				"status":   domain.StatusAvailable,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			previous = unit.OwnerID
			released = true
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return previous, released, nil
}

func (r *GarageGormRepository) SwapStatus(
	ctx context.Context,
	unitID uint,
	from domain.Status,
	to domain.Status,
) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.GarageUnit{}).
		Where("id = ? AND status = ?", unitID, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}

// Compile-time check
var _ domain.Repository = (*GarageGormRepository)(nil)
