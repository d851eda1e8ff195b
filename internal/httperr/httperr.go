package httperr

import (
	"errors"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const genericMessage = "Something went wrong. Please try again later."

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func StatusOf(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as the JSON error envelope. Internal failures are logged
// and reported with full detail but only a generic message reaches the caller.
func Respond(c *gin.Context, err error) {
	status, body := translate(c, err)
	c.JSON(status, body)
}

// Abort is Respond for middleware: it stops the handler chain.
func Abort(c *gin.Context, err error) {
	status, body := translate(c, err)
	c.AbortWithStatusJSON(status, body)
}

func translate(c *gin.Context, err error) (int, HTTPError) {
	var be BusinessError
	if errors.As(err, &be) && be.Kind != KindInternal {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		return StatusOf(be.Kind), HTTPError{Code: be.Code, Message: msg}
	}

	code := "internal_error"
	if errors.As(err, &be) {
		code = be.Code
	}

	logrus.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
		"code":   code,
	}).WithError(err).Error("request failed")

	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}

	return http.StatusInternalServerError, HTTPError{Code: code, Message: genericMessage}
}
