package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/garage-coop/internal/httperr"
)

const ContextAccountID = "accountID"

// TokenVerifier extracts the account id from a bearer token.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// AuthMiddleware establishes caller identity only. Roles are resolved later
// by RequireRole, on every request.
func AuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, httperr.ErrUnauthorized("missing_authorization_header", "Unauthorized"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, httperr.ErrUnauthorized("invalid_authorization_header", "Unauthorized"))
			return
		}

		accountID, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, httperr.ErrUnauthorized("invalid_token", "Unauthorized"))
			return
		}

		c.Set(ContextAccountID, accountID)
		c.Next()
	}
}

// AccountID returns the authenticated caller, or 0 when none was set.
func AccountID(c *gin.Context) uint {
	v, ok := c.Get(ContextAccountID)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
