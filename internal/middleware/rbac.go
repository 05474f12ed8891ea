package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
	"github.com/prepnerdz/prepnerdz-api/pkg/response"
)

// RequireRoles lets the request through only when the session carries one of
// the roles. It must run after JWT.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := CurrentUser(c)
		if claims == nil {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Abort(c, appErrors.Clone(appErrors.ErrForbidden, "admin access required"))
			return
		}
		c.Next()
	}
}

// AdminAuth gates resource uploads.
func AdminAuth() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}
