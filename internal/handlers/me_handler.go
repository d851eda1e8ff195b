package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/httpresp"
	"github.com/BruksfildServices01/garage-coop/internal/middleware"
	ucAccount "github.com/BruksfildServices01/garage-coop/internal/usecase/account"
)

// MaxPhotoBytes bounds the raw upload before decoding.
const MaxPhotoBytes = 5 << 20

type MeHandler struct {
	profile        *ucAccount.GetProfile
	update         *ucAccount.UpdateProfile
	changePassword *ucAccount.ChangePassword
	uploadPhoto    *ucAccount.UploadPhoto
	changeEmail    *ucAccount.RequestEmailChange
}

func NewMeHandler(
	profile *ucAccount.GetProfile,
	update *ucAccount.UpdateProfile,
	changePassword *ucAccount.ChangePassword,
	uploadPhoto *ucAccount.UploadPhoto,
	changeEmail *ucAccount.RequestEmailChange,
) *MeHandler {
	return &MeHandler{
		profile:        profile,
		update:         update,
		changePassword: changePassword,
		uploadPhoto:    uploadPhoto,
		changeEmail:    changeEmail,
	}
}

type UpdateMeRequest struct {
	Name     *string         `json:"name"`
	Phone    *string         `json:"phone"`
	Settings json.RawMessage `json:"settings"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type ChangeEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p, err := h.profile.Execute(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"account": p})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	acc, err := h.update.Execute(c.Request.Context(), ucAccount.UpdateProfileInput{
		AccountID: middleware.AccountID(c),
		Name:      req.Name,
		Phone:     req.Phone,
		Settings:  req.Settings,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"account": acc})
}

func (h *MeHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if err := h.changePassword.Execute(c.Request.Context(), ucAccount.ChangePasswordInput{
		AccountID:   middleware.AccountID(c),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *MeHandler) UploadPhoto(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxPhotoBytes)

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "invalid_upload", "Send the image as multipart field \"photo\" (max 5 MB).")
		return
	}
	defer file.Close()

	acc, err := h.uploadPhoto.Execute(c.Request.Context(), middleware.AccountID(c), file)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, gin.H{"account": acc})
}

func (h *MeHandler) RequestEmailChange(c *gin.Context) {
	var req ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if err := h.changeEmail.Execute(c.Request.Context(), ucAccount.RequestEmailChangeInput{
		AccountID: middleware.AccountID(c),
		NewEmail:  req.Email,
	}); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Accepted(c)
}
