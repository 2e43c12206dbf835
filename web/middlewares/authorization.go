package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gestirh.com/gestirh/security"
	"gestirh.com/gestirh/web/common"
)

// RequireRole gates a route behind a minimum role. It runs after
// Authentication and never lets a handler partially execute on a denied
// caller.
func RequireRole(min security.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identite, ok := CurrentIdentite(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if !security.ParseRole(identite.Role).AtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("acces refuse"))
			return
		}

		c.Next()
	}
}
