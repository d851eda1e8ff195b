package garage

import (
	"context"

	domain "github.com/BruksfildServices01/garage-coop/internal/domain/garage"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

type ListGarages struct {
	repo domain.Repository
}

func NewListGarages(repo domain.Repository) *ListGarages {
	return &ListGarages{repo: repo}
}

// Execute lists units ordered by garage number; an empty status lists all.
func (uc *ListGarages) Execute(ctx context.Context, status string) ([]models.GarageUnit, error) {
	if status != "" {
		st, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		status = string(st)
	}
	return uc.repo.List(ctx, status)
}

type GetGarage struct {
	repo domain.Repository
}

func NewGetGarage(repo domain.Repository) *GetGarage {
	return &GetGarage{repo: repo}
}

func (uc *GetGarage) Execute(ctx context.Context, id uint) (*models.GarageUnit, error) {
	return uc.repo.GetByID(ctx, id)
}
