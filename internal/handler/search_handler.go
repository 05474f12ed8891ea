package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
	"github.com/prepnerdz/prepnerdz-api/pkg/response"
)

// Search godoc
// @Summary Search resources
// @Description Filters by type, branch id, semester id and free text. Results are paged, newest first.
// @Tags Resources
// @Produce json
// @Param type query string false "Resource type"
// @Param branch query string false "Branch ID"
// @Param semester query string false "Semester ID"
// @Param query query string false "Free-text query"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (default 5, max 50)"
// @Success 200 {object} models.SearchPage
// @Failure 400 {object} response.Failure
// @Router /search [get]
func (h *ResourceHandler) Search(c *gin.Context) {
	filter := models.SearchFilter{
		Type:     models.ResourceType(c.Query("type")),
		Branch:   c.Query("branch"),
		Semester: c.Query("semester"),
		Query:    c.Query("query"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}

	page, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}
