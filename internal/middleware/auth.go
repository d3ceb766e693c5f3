package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/babytracker/backend/internal/apierror"
	"github.com/JonnyWalker81/babytracker/backend/internal/logger"
	"github.com/JonnyWalker81/babytracker/backend/internal/repository"
)

// UserToken forwards a caller's bearer token to the record store so reads
// run under the caller's row-level security instead of the service key.
// Requests without an Authorization header pass through unchanged.
func UserToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			logger.Ctx(c.Request.Context()).Debug("rejected request: invalid authorization format")
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(
				apierror.GetRequestID(c),
				"Authorization header must use the Bearer scheme",
			))
			c.Abort()
			return
		}

		ctx := repository.WithUserToken(c.Request.Context(), parts[1])
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
