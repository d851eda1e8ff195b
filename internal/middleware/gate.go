package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/garage-coop/internal/domain/role"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
)

type AccessChecker interface {
	Check(ctx context.Context, threshold role.Threshold, accountID uint) error
}

// RequireRole denies the request unless the caller meets threshold. It must
// run after AuthMiddleware.
func RequireRole(gate AccessChecker, threshold role.Threshold) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Check(c.Request.Context(), threshold, AccountID(c)); err != nil {
			httperr.Abort(c, err)
			return
		}
		c.Next()
	}
}
