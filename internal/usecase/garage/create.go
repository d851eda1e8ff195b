package garage

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/garage-coop/internal/audit"
	domain "github.com/BruksfildServices01/garage-coop/internal/domain/garage"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

type CreateInput struct {
	ActorID        uint
	GarageNumber   string
	Location       *string
	Size           *string
	AccessSettings json.RawMessage
	UtilityData    json.RawMessage
}

type CreateGarage struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateGarage(repo domain.Repository, audit *audit.Dispatcher) *CreateGarage {
	return &CreateGarage{repo: repo, audit: audit}
}

func (uc *CreateGarage) Execute(ctx context.Context, input CreateInput) (*models.GarageUnit, error) {

	number := strings.TrimSpace(input.GarageNumber)
	if number == "" || len(number) > 20 {
		return nil, httperr.ErrValidation("invalid_garage_number", "Garage number is required and must be at most 20 characters.")
	}

	access, err := jsonObject(input.AccessSettings, "invalid_access_settings")
	if err != nil {
		return nil, err
	}
	utility, err := jsonObject(input.UtilityData, "invalid_utility_data")
	if err != nil {
		return nil, err
	}

	unit := &models.GarageUnit{
		GarageNumber:   number,
		Location:       trimmed(input.Location),
		Size:           trimmed(input.Size),
		Status:         string(domain.StatusAvailable),
		AccessSettings: access,
		UtilityData:    utility,
	}

	if err := uc.repo.Create(ctx, unit); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor(input.ActorID),
		Action:   "garage_created",
		Entity:   "garage_unit",
		EntityID: &unit.ID,
		Metadata: map[string]string{"garage_number": unit.GarageNumber},
	})

	return unit, nil
}

func jsonObject(raw json.RawMessage, code string) (datatypes.JSON, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, httperr.ErrValidation(code, "Expected a JSON object.")
	}
	return datatypes.JSON(raw), nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func actor(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
