package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
)

type taxonomyRepository interface {
	BranchIDByName(ctx context.Context, name string) (string, error)
	SemesterIDByNumber(ctx context.Context, number int) (string, error)
}

// TaxonomyService resolves display codes of branches and semesters to ids.
type TaxonomyService struct {
	repo   taxonomyRepository
	logger *zap.Logger
}

// NewTaxonomyService creates a new taxonomy service.
func NewTaxonomyService(repo taxonomyRepository, logger *zap.Logger) *TaxonomyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaxonomyService{repo: repo, logger: logger}
}

// BranchID resolves a branch code such as "CSE" or "COMMON".
func (s *TaxonomyService) BranchID(ctx context.Context, branchName string) (string, error) {
	name := strings.ToUpper(strings.TrimSpace(branchName))
	if name == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "branchName is required")
	}
	id, err := s.repo.BranchIDByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "branch not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve branch")
	}
	return id, nil
}

// SemesterID resolves a semester number 0..8, where 0 is the shared first year.
func (s *TaxonomyService) SemesterID(ctx context.Context, semNumber string) (string, error) {
	number, err := strconv.Atoi(strings.TrimSpace(semNumber))
	if err != nil || number < 0 || number > 8 {
		return "", appErrors.Clone(appErrors.ErrValidation, "semNumber must be an integer between 0 and 8")
	}
	id, err := s.repo.SemesterIDByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "semester not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve semester")
	}
	return id, nil
}
