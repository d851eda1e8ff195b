package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/httpresp"
	ucAccount "github.com/BruksfildServices01/garage-coop/internal/usecase/account"
)

type AuthHandler struct {
	register      *ucAccount.Register
	login         *ucAccount.Login
	requestReset  *ucAccount.RequestPasswordReset
	resetPassword *ucAccount.ResetPassword
	confirmEmail  *ucAccount.ConfirmEmailChange
}

func NewAuthHandler(
	register *ucAccount.Register,
	login *ucAccount.Login,
	requestReset *ucAccount.RequestPasswordReset,
	resetPassword *ucAccount.ResetPassword,
	confirmEmail *ucAccount.ConfirmEmailChange,
) *AuthHandler {
	return &AuthHandler{
		register:      register,
		login:         login,
		requestReset:  requestReset,
		resetPassword: resetPassword,
		confirmEmail:  confirmEmail,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ConfirmEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	acc, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"account": acc})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	res, err := h.login.Execute(c.Request.Context(), ucAccount.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if err := h.requestReset.Execute(c.Request.Context(), req.Email); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Accepted(c)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if err := h.resetPassword.Execute(c.Request.Context(), ucAccount.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.Password,
	}); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	var req ConfirmEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	acc, err := h.confirmEmail.Execute(c.Request.Context(), req.Token)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"account": acc})
}
