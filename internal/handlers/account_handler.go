package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/httpresp"
	"github.com/BruksfildServices01/garage-coop/internal/middleware"
	ucAccount "github.com/BruksfildServices01/garage-coop/internal/usecase/account"
	ucRole "github.com/BruksfildServices01/garage-coop/internal/usecase/role"
)

// ======================================================
// HANDLER
// ======================================================

// AccountHandler is the administrative surface over accounts and their roles.
type AccountHandler struct {
	list       *ucAccount.ListAccounts
	profile    *ucAccount.GetProfile
	setStatus  *ucAccount.SetStatus
	transition *ucRole.Transition
}

func NewAccountHandler(
	list *ucAccount.ListAccounts,
	profile *ucAccount.GetProfile,
	setStatus *ucAccount.SetStatus,
	transition *ucRole.Transition,
) *AccountHandler {
	return &AccountHandler{
		list:       list,
		profile:    profile,
		setStatus:  setStatus,
		transition: transition,
	}
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AccountHandler) List(c *gin.Context) {
	page, err := h.list.Execute(c.Request.Context(), ucAccount.ListAccountsInput{
		Query:  c.Query("q"),
		Status: c.Query("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", ucAccount.DefaultPageLimit),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Page(c, page.Items, page.Page, page.Limit, page.Total)
}

func (h *AccountHandler) GetRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.profile.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ucRole.TransitionResult{AccountID: p.ID, Role: p.Role})
}

func (h *AccountHandler) SetRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	res, err := h.transition.Execute(c.Request.Context(), ucRole.TransitionInput{
		AccountID: id,
		Role:      req.Role,
		ActorID:   middleware.AccountID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *AccountHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	acc, err := h.setStatus.Execute(c.Request.Context(), ucAccount.SetStatusInput{
		ActorID:   middleware.AccountID(c),
		AccountID: id,
		Status:    req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"account": acc})
}
