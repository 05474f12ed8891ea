package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepnerdz/prepnerdz-api/internal/middleware"
	"github.com/prepnerdz/prepnerdz-api/internal/models"
	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
	"github.com/prepnerdz/prepnerdz-api/pkg/response"
)

type bookmarkService interface {
	List(ctx context.Context, userID string, actor *models.JWTClaims) ([]models.Bookmark, error)
	Add(ctx context.Context, req models.BookmarkRequest, actor *models.JWTClaims) (models.Ack, error)
	Remove(ctx context.Context, req models.BookmarkRequest, actor *models.JWTClaims) (models.Ack, error)
}

// BookmarkHandler manages the caller's bookmarks. Rejections such as a
// duplicate bookmark answer 200 with success=false.
type BookmarkHandler struct {
	service bookmarkService
}

// NewBookmarkHandler constructs a bookmark handler.
func NewBookmarkHandler(svc bookmarkService) *BookmarkHandler {
	return &BookmarkHandler{service: svc}
}

// List godoc
// @Summary List a user's bookmarks
// @Tags Bookmarks
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.BookmarkList
// @Failure 401 {object} response.Failure
// @Failure 403 {object} response.Failure
// @Router /bookmark/user/{userId} [get]
func (h *BookmarkHandler) List(c *gin.Context) {
	bookmarks, err := h.service.List(c.Request.Context(), c.Param("userId"), middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, models.BookmarkList{Success: true, Data: bookmarks, Count: len(bookmarks)})
}

// Add godoc
// @Summary Bookmark a resource
// @Tags Bookmarks
// @Accept json
// @Produce json
// @Param payload body models.BookmarkRequest true "Bookmark payload"
// @Success 200 {object} models.Ack
// @Router /bookmark [post]
func (h *BookmarkHandler) Add(c *gin.Context) {
	h.mutate(c, h.service.Add)
}

// Remove godoc
// @Summary Remove a bookmark
// @Tags Bookmarks
// @Accept json
// @Produce json
// @Param payload body models.BookmarkRequest true "Bookmark payload"
// @Success 200 {object} models.Ack
// @Router /bookmark [delete]
func (h *BookmarkHandler) Remove(c *gin.Context) {
	h.mutate(c, h.service.Remove)
}

func (h *BookmarkHandler) mutate(c *gin.Context, apply func(context.Context, models.BookmarkRequest, *models.JWTClaims) (models.Ack, error)) {
	var req models.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ack, err := apply(c.Request.Context(), req, middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ack)
}
