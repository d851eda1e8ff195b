package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/httpresp"
	"github.com/BruksfildServices01/garage-coop/internal/middleware"
	ucGarage "github.com/BruksfildServices01/garage-coop/internal/usecase/garage"
)

// ======================================================
// HANDLER
// ======================================================

type GarageHandler struct {
	create      *ucGarage.CreateGarage
	list        *ucGarage.ListGarages
	get         *ucGarage.GetGarage
	assign      *ucGarage.AssignGarage
	release     *ucGarage.ReleaseGarage
	maintenance *ucGarage.SetMaintenance
}

func NewGarageHandler(
	create *ucGarage.CreateGarage,
	list *ucGarage.ListGarages,
	get *ucGarage.GetGarage,
	assign *ucGarage.AssignGarage,
	release *ucGarage.ReleaseGarage,
	maintenance *ucGarage.SetMaintenance,
) *GarageHandler {
	return &GarageHandler{
		create:      create,
		list:        list,
		get:         get,
		assign:      assign,
		release:     release,
		maintenance: maintenance,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateGarageRequest struct {
	GarageNumber   string          `json:"garage_number" binding:"required"`
	Location       *string         `json:"location"`
	Size           *string         `json:"size"`
	AccessSettings json.RawMessage `json:"access_settings"`
	UtilityData    json.RawMessage `json:"utility_data"`
}

type AssignGarageRequest struct {
	OwnerID uint `json:"owner_id" binding:"required"`
}

type MaintenanceRequest struct {
	On *bool `json:"on" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *GarageHandler) Create(c *gin.Context) {
	var req CreateGarageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	unit, err := h.create.Execute(c.Request.Context(), ucGarage.CreateInput{
		ActorID:        middleware.AccountID(c),
		GarageNumber:   req.GarageNumber,
		Location:       req.Location,
		Size:           req.Size,
		AccessSettings: req.AccessSettings,
		UtilityData:    req.UtilityData,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, unit)
}

func (h *GarageHandler) List(c *gin.Context) {
	units, err := h.list.Execute(c.Request.Context(), c.Query("status"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, units)
}

func (h *GarageHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	unit, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, unit)
}

func (h *GarageHandler) Assign(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AssignGarageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	unit, err := h.assign.Execute(c.Request.Context(), ucGarage.AssignInput{
		ActorID: middleware.AccountID(c),
		UnitID:  id,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, unit)
}

func (h *GarageHandler) Release(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	unit, err := h.release.Execute(c.Request.Context(), ucGarage.ReleaseInput{
		ActorID: middleware.AccountID(c),
		UnitID:  id,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, unit)
}

func (h *GarageHandler) Maintenance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	unit, err := h.maintenance.Execute(c.Request.Context(), ucGarage.MaintenanceInput{
		ActorID: middleware.AccountID(c),
		UnitID:  id,
		On:      *req.On,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, unit)
}
