package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prepnerdz/prepnerdz-api/internal/middleware"
	"github.com/prepnerdz/prepnerdz-api/internal/models"
	"github.com/prepnerdz/prepnerdz-api/pkg/response"
)

type sessionService interface {
	Session(claims *models.JWTClaims) models.SessionResponse
}

// SessionHandler reports whether the caller holds a valid session.
type SessionHandler struct {
	service sessionService
}

// NewSessionHandler constructs a session handler.
func NewSessionHandler(svc sessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// Session godoc
// @Summary Current session
// @Description Never fails; an absent or invalid token reports isAuthenticated=false.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.SessionResponse
// @Router /auth/user/session [get]
func (h *SessionHandler) Session(c *gin.Context) {
	response.OK(c, h.service.Session(middleware.CurrentUser(c)))
}
