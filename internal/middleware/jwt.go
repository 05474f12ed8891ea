package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
	"github.com/prepnerdz/prepnerdz-api/internal/service"
	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
	"github.com/prepnerdz/prepnerdz-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

var _ tokenValidator = (*service.AuthService)(nil)

// JWT protects routes by requiring a valid session token, read from the
// session cookie or an Authorization bearer header.
func JWT(auth tokenValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c, cookieName)
		if !ok {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// OptionalJWT attaches claims when present but does not block.
func OptionalJWT(auth tokenValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := extractToken(c, cookieName); ok {
			if claims, err := auth.ValidateToken(token); err == nil {
				c.Set(ContextUserKey, claims)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the claims attached by JWT or OptionalJWT, or nil.
func CurrentUser(c *gin.Context) *models.JWTClaims {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*models.JWTClaims)
	return claims
}

func extractToken(c *gin.Context, cookieName string) (string, bool) {
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie, true
		}
	}

	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
