package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
	"github.com/prepnerdz/prepnerdz-api/pkg/cache"
	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 50
	defaultSearchLimit = 5
	maxSearchLimit     = 50
)

type resourceRepository interface {
	ListByType(ctx context.Context, resourceType models.ResourceType) ([]models.Resource, error)
	Recent(ctx context.Context, limit int) ([]models.Resource, error)
	FindByID(ctx context.Context, id string) (*models.Resource, error)
	Search(ctx context.Context, filter models.SearchFilter) ([]models.Resource, int, error)
	Create(ctx context.Context, resource *models.Resource) error
}

type subjectChecker interface {
	SubjectExists(ctx context.Context, id string) (bool, error)
}

// AddResourceRequest captures an admin upload of resource metadata. The file
// itself is stored elsewhere; only its reference is recorded.
type AddResourceRequest struct {
	Type        models.ResourceType `json:"type" validate:"required"`
	Title       string              `json:"title" validate:"required,max=200"`
	Description string              `json:"description" validate:"max=2000"`
	Year        string              `json:"year" validate:"omitempty,numeric,len=4"`
	Month       string              `json:"month" validate:"max=20"`
	FileURL     string              `json:"fileUrl" validate:"required,url"`
	FileSize    int64               `json:"fileSize" validate:"gte=0"`
	FileType    string              `json:"fileType" validate:"required,max=50"`
	SubjectID   string              `json:"subjectId" validate:"required"`
}

// ResourceService implements listing, search and admin upload of resources.
type ResourceService struct {
	repo      resourceRepository
	subjects  subjectChecker
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewResourceService creates a new resource service. cache and metrics may be nil.
func NewResourceService(repo resourceRepository, subjects subjectChecker, cacheSvc *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *ResourceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceService{
		repo:      repo,
		subjects:  subjects,
		cache:     cacheSvc,
		metrics:   metrics,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// ListByType returns every resource of the given type, newest first.
func (s *ResourceService) ListByType(ctx context.Context, rawType string) ([]models.Resource, error) {
	resourceType, err := parseResourceType(rawType)
	if err != nil {
		return nil, err
	}

	var resources []models.Resource
	err = s.cache.Remember(ctx, cache.Key("resources", "type", string(resourceType)), s.cacheTTL, &resources, func(ctx context.Context) error {
		list, err := s.repo.ListByType(ctx, resourceType)
		if err != nil {
			return err
		}
		resources = list
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list resources")
	}
	if resources == nil {
		resources = []models.Resource{}
	}
	return resources, nil
}

// Recent returns the newest resources across types. limit is clamped to 1..50 (default 10).
func (s *ResourceService) Recent(ctx context.Context, limit int) ([]models.Resource, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	var resources []models.Resource
	err := s.cache.Remember(ctx, cache.Key("resources", "recent", fmt.Sprintf("%d", limit)), s.cacheTTL, &resources, func(ctx context.Context) error {
		list, err := s.repo.Recent(ctx, limit)
		if err != nil {
			return err
		}
		resources = list
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list recent resources")
	}
	if resources == nil {
		resources = []models.Resource{}
	}
	return resources, nil
}

// Search returns one page of resources matching the filter.
func (s *ResourceService) Search(ctx context.Context, filter models.SearchFilter) (*models.SearchPage, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown resource type")
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultSearchLimit
	}
	if filter.Limit > maxSearchLimit {
		filter.Limit = maxSearchLimit
	}
	filter.Query = strings.TrimSpace(filter.Query)

	resources, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search resources")
	}
	if resources == nil {
		resources = []models.Resource{}
	}
	s.metrics.RecordSearch(string(filter.Type), filter.Page)

	return &models.SearchPage{
		Data:    resources,
		Total:   total,
		HasMore: filter.Page*filter.Limit < total,
	}, nil
}

// Get returns a single resource with its subject chain.
func (s *ResourceService) Get(ctx context.Context, id string) (*models.Resource, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "resource not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load resource")
	}
	return res, nil
}

// Add records a new resource uploaded by an admin and invalidates cached listings.
func (s *ResourceService) Add(ctx context.Context, req AddResourceRequest, uploaderID string) (*models.Resource, error) {
	req.Title = strings.TrimSpace(s.sanitizer.Sanitize(req.Title))
	req.Description = strings.TrimSpace(s.sanitizer.Sanitize(req.Description))
	req.Type = models.ResourceType(strings.ToUpper(strings.TrimSpace(string(req.Type))))

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid resource payload")
	}
	if !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown resource type")
	}

	exists, err := s.subjects.SubjectExists(ctx, req.SubjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}

	resource := &models.Resource{
		Type:         req.Type,
		Title:        req.Title,
		Description:  req.Description,
		Year:         req.Year,
		Month:        req.Month,
		FileURL:      req.FileURL,
		FileSize:     req.FileSize,
		FileType:     req.FileType,
		SubjectID:    req.SubjectID,
		UploadedByID: uploaderID,
	}
	if err := s.repo.Create(ctx, resource); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create resource")
	}

	if err := s.cache.Invalidate(ctx, cache.Key("resources", "*")); err != nil {
		s.logger.Warn("resource cache not invalidated", zap.String("resource_id", resource.ID), zap.Error(err))
	}
	s.logger.Info("resource added",
		zap.String("resource_id", resource.ID),
		zap.String("type", string(resource.Type)),
		zap.String("uploaded_by", uploaderID),
	)
	return resource, nil
}

func parseResourceType(raw string) (models.ResourceType, error) {
	resourceType := models.ResourceType(strings.ToUpper(strings.TrimSpace(raw)))
	if resourceType == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "type is required")
	}
	if !resourceType.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown resource type")
	}
	return resourceType, nil
}
