package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
)

type bookmarkRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Bookmark, error)
	Exists(ctx context.Context, userID, resourceID string) (bool, error)
	Create(ctx context.Context, bookmark *models.Bookmark) error
	Delete(ctx context.Context, userID, resourceID string) (bool, error)
}

type resourceFinder interface {
	FindByID(ctx context.Context, id string) (*models.Resource, error)
}

// BookmarkService manages user bookmarks. Callers may only act on their own.
type BookmarkService struct {
	repo      bookmarkRepository
	resources resourceFinder
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(repo bookmarkRepository, resources resourceFinder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BookmarkService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookmarkService{repo: repo, resources: resources, metrics: metrics, validator: validate, logger: logger}
}

// List returns the bookmarks of userID.
func (s *BookmarkService) List(ctx context.Context, userID string, actor *models.JWTClaims) ([]models.Bookmark, error) {
	if err := authorizeOwner(actor, userID); err != nil {
		return nil, err
	}
	bookmarks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookmarks")
	}
	if bookmarks == nil {
		bookmarks = []models.Bookmark{}
	}
	return bookmarks, nil
}

// Add bookmarks a resource. Rejections the user can act on are returned as a
// negative Ack rather than an error.
func (s *BookmarkService) Add(ctx context.Context, req models.BookmarkRequest, actor *models.JWTClaims) (models.Ack, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Ack{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bookmark payload")
	}
	if err := authorizeOwner(actor, req.UserID); err != nil {
		return models.Ack{}, err
	}

	if _, err := s.resources.FindByID(ctx, req.ResourceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.RecordBookmarkChange("create", false)
			return models.Ack{Success: false, Message: "Resource not found"}, nil
		}
		return models.Ack{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load resource")
	}

	exists, err := s.repo.Exists(ctx, req.UserID, req.ResourceID)
	if err != nil {
		return models.Ack{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check bookmark")
	}
	if exists {
		s.metrics.RecordBookmarkChange("create", false)
		return models.Ack{Success: false, Message: "Resource already bookmarked"}, nil
	}

	if err := s.repo.Create(ctx, &models.Bookmark{UserID: req.UserID, ResourceID: req.ResourceID}); err != nil {
		return models.Ack{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create bookmark")
	}
	s.metrics.RecordBookmarkChange("create", true)
	return models.Ack{Success: true, Message: "Bookmarked"}, nil
}

// Remove deletes a bookmark.
func (s *BookmarkService) Remove(ctx context.Context, req models.BookmarkRequest, actor *models.JWTClaims) (models.Ack, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Ack{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bookmark payload")
	}
	if err := authorizeOwner(actor, req.UserID); err != nil {
		return models.Ack{}, err
	}

	removed, err := s.repo.Delete(ctx, req.UserID, req.ResourceID)
	if err != nil {
		return models.Ack{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete bookmark")
	}
	s.metrics.RecordBookmarkChange("delete", removed)
	if !removed {
		return models.Ack{Success: false, Message: "Bookmark not found"}, nil
	}
	return models.Ack{Success: true, Message: "Bookmark removed"}, nil
}

func authorizeOwner(actor *models.JWTClaims, userID string) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	if actor.UserID != userID {
		return appErrors.Clone(appErrors.ErrForbidden, "cannot access another user's bookmarks")
	}
	return nil
}
