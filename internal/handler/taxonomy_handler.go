package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
	"github.com/prepnerdz/prepnerdz-api/pkg/response"
)

type taxonomyService interface {
	BranchID(ctx context.Context, branchName string) (string, error)
	SemesterID(ctx context.Context, semNumber string) (string, error)
}

// TaxonomyHandler resolves branch and semester codes to ids.
type TaxonomyHandler struct {
	service taxonomyService
}

// NewTaxonomyHandler constructs a taxonomy handler.
func NewTaxonomyHandler(svc taxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: svc}
}

// BranchID godoc
// @Summary Resolve a branch code
// @Tags Taxonomy
// @Produce json
// @Param branchName query string true "Branch code, e.g. CSE or COMMON"
// @Success 200 {object} models.BranchIDResponse
// @Failure 404 {object} response.Failure
// @Router /getmyid/branchid [get]
func (h *TaxonomyHandler) BranchID(c *gin.Context) {
	id, err := h.service.BranchID(c.Request.Context(), c.Query("branchName"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, models.BranchIDResponse{BranchID: id})
}

// SemesterID godoc
// @Summary Resolve a semester number
// @Tags Taxonomy
// @Produce json
// @Param semNumber query string true "Semester number, 0 for the shared first year"
// @Success 200 {object} models.SemesterIDResponse
// @Failure 404 {object} response.Failure
// @Router /getmyid/semesterid [get]
func (h *TaxonomyHandler) SemesterID(c *gin.Context) {
	id, err := h.service.SemesterID(c.Request.Context(), c.Query("semNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, models.SemesterIDResponse{SemesterID: id})
}
