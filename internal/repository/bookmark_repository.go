package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
)

// bookmarkRow is a bookmark left-joined with its resource. A resource that
// was removed after bookmarking leaves the resource columns NULL.
type bookmarkRow struct {
	ID                string         `db:"id"`
	UserID            string         `db:"user_id"`
	ResourceID        string         `db:"resource_id"`
	CreatedAt         time.Time      `db:"created_at"`
	LinkedID          sql.NullString `db:"linked_id"`
	Type              sql.NullString `db:"type"`
	Title             sql.NullString `db:"title"`
	Description       sql.NullString `db:"description"`
	Year              sql.NullString `db:"year"`
	Month             sql.NullString `db:"month"`
	FileURL           sql.NullString `db:"file_url"`
	FileSize          sql.NullInt64  `db:"file_size"`
	FileType          sql.NullString `db:"file_type"`
	SubjectID         sql.NullString `db:"subject_id"`
	UploadedByID      sql.NullString `db:"uploaded_by_id"`
	Verified          sql.NullBool   `db:"verified"`
	ResourceCreatedAt sql.NullTime   `db:"resource_created_at"`
	ResourceUpdatedAt sql.NullTime   `db:"resource_updated_at"`
}

func (row bookmarkRow) toModel() models.Bookmark {
	bm := models.Bookmark{
		ID:         row.ID,
		UserID:     row.UserID,
		ResourceID: row.ResourceID,
		CreatedAt:  row.CreatedAt,
	}
	if row.LinkedID.Valid {
		bm.Resource = &models.Resource{
			ID:           row.LinkedID.String,
			Type:         models.ResourceType(row.Type.String),
			Title:        row.Title.String,
			Description:  row.Description.String,
			Year:         row.Year.String,
			Month:        row.Month.String,
			FileURL:      row.FileURL.String,
			FileSize:     row.FileSize.Int64,
			FileType:     row.FileType.String,
			SubjectID:    row.SubjectID.String,
			UploadedByID: row.UploadedByID.String,
			Verified:     row.Verified.Bool,
			CreatedAt:    row.ResourceCreatedAt.Time,
			UpdatedAt:    row.ResourceUpdatedAt.Time,
		}
	}
	return bm
}

// BookmarkRepository persists user bookmarks.
type BookmarkRepository struct {
	db *sqlx.DB
}

// NewBookmarkRepository creates a new repository instance.
func NewBookmarkRepository(db *sqlx.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

// ListByUser returns the user's bookmarks, newest first.
func (r *BookmarkRepository) ListByUser(ctx context.Context, userID string) ([]models.Bookmark, error) {
	const query = `SELECT bm.id, bm.user_id, bm.resource_id, bm.created_at, r.id AS linked_id, r.type, r.title, r.description, r.year, r.month, r.file_url, r.file_size, r.file_type, r.subject_id, r.uploaded_by_id, r.verified, r.created_at AS resource_created_at, r.updated_at AS resource_updated_at FROM bookmarks bm LEFT JOIN resources r ON r.id = bm.resource_id WHERE bm.user_id = $1 ORDER BY bm.created_at DESC`
	var rows []bookmarkRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	bookmarks := make([]models.Bookmark, 0, len(rows))
	for _, row := range rows {
		bookmarks = append(bookmarks, row.toModel())
	}
	return bookmarks, nil
}

// Exists reports whether the user already bookmarked the resource.
func (r *BookmarkRepository) Exists(ctx context.Context, userID, resourceID string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM bookmarks WHERE user_id = $1 AND resource_id = $2 LIMIT 1`, userID, resourceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check bookmark: %w", err)
	}
	return true, nil
}

// Create persists a new bookmark.
func (r *BookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	if bookmark.ID == "" {
		bookmark.ID = uuid.NewString()
	}
	if bookmark.CreatedAt.IsZero() {
		bookmark.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO bookmarks (id, user_id, resource_id, created_at) VALUES (:id, :user_id, :resource_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, bookmark); err != nil {
		return fmt.Errorf("create bookmark: %w", err)
	}
	return nil
}

// Delete removes the user's bookmark of a resource and reports whether one existed.
func (r *BookmarkRepository) Delete(ctx context.Context, userID, resourceID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE user_id = $1 AND resource_id = $2`, userID, resourceID)
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete bookmark rows: %w", err)
	}
	return affected > 0, nil
}
