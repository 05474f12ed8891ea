package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prepnerdz/prepnerdz-api/internal/middleware"
	"github.com/prepnerdz/prepnerdz-api/internal/models"
	"github.com/prepnerdz/prepnerdz-api/internal/service"
	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
	"github.com/prepnerdz/prepnerdz-api/pkg/response"
)

type resourceService interface {
	ListByType(ctx context.Context, rawType string) ([]models.Resource, error)
	Recent(ctx context.Context, limit int) ([]models.Resource, error)
	Search(ctx context.Context, filter models.SearchFilter) (*models.SearchPage, error)
	Get(ctx context.Context, id string) (*models.Resource, error)
	Add(ctx context.Context, req service.AddResourceRequest, uploaderID string) (*models.Resource, error)
}

// ResourceHandler serves resource listings and admin uploads.
type ResourceHandler struct {
	service resourceService
}

// NewResourceHandler constructs a resource handler.
func NewResourceHandler(svc resourceService) *ResourceHandler {
	return &ResourceHandler{service: svc}
}

// ListByType godoc
// @Summary List resources of a type
// @Description Returns every resource of the type, newest first, as a bare array.
// @Tags Resources
// @Produce json
// @Param type query string true "Resource type" Enums(SHIVANI_BOOKS, MID_SEM_PAPER, END_SEM_PAPER, IMP_QUESTION, IMP_TOPIC, NOTES, SYLLABUS, LAB_MANUAL)
// @Success 200 {array} models.Resource
// @Failure 400 {object} response.Failure
// @Router /resource [get]
func (h *ResourceHandler) ListByType(c *gin.Context) {
	resources, err := h.service.ListByType(c.Request.Context(), c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resources)
}

// Recent godoc
// @Summary List recently added resources
// @Tags Resources
// @Produce json
// @Param limit query int false "Maximum entries (default 10, max 50)"
// @Success 200 {array} models.Resource
// @Router /resource/recent [get]
func (h *ResourceHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	resources, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resources)
}

// Get godoc
// @Summary Show a resource
// @Description Returns one resource with its subject, semester and branch.
// @Tags Resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} models.Resource
// @Failure 404 {object} response.Failure
// @Router /resource/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	resource, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resource)
}

// Add godoc
// @Summary Add a resource
// @Description Admin only. Title and description are stripped of markup.
// @Tags Resources
// @Accept json
// @Produce json
// @Param payload body service.AddResourceRequest true "Resource payload"
// @Success 201 {object} models.ResourceCreated
// @Failure 400 {object} response.Failure
// @Failure 403 {object} response.Failure
// @Router /resource/add [post]
func (h *ResourceHandler) Add(c *gin.Context) {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.AddResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	resource, err := h.service.Add(c.Request.Context(), req, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, models.ResourceCreated{Success: true, Message: "Resource added successfully", Data: resource})
}
