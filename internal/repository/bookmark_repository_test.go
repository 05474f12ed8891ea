package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
)

func TestBookmarkListByUserKeepsUnlinkedEntries(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookmarkRepository(db)

	now := time.Now()
	cols := []string{"id", "user_id", "resource_id", "created_at", "linked_id", "type", "title", "description", "year", "month", "file_url", "file_size", "file_type", "subject_id", "uploaded_by_id", "verified", "resource_created_at", "resource_updated_at"}
	rows := sqlmock.NewRows(cols).
		AddRow("bm1", "u1", "r1", now, "r1", "NOTES", "DBMS", "", "2024", "May", "https://cdn/r1.pdf", 10, "pdf", "sub1", "u9", true, now, now).
		AddRow("bm2", "u1", "r-deleted", now, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookmarks bm LEFT JOIN resources r ON r.id = bm.resource_id WHERE bm.user_id = $1")).
		WithArgs("u1").
		WillReturnRows(rows)

	bookmarks, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, bookmarks, 2)
	require.NotNil(t, bookmarks[0].Resource)
	assert.Equal(t, models.ResourceNotes, bookmarks[0].Resource.Type)
	assert.Nil(t, bookmarks[1].Resource)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookmarkRepository(db)

	mock.ExpectExec("INSERT INTO bookmarks").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookmarks WHERE user_id = $1 AND resource_id = $2")).
		WithArgs("u1", "r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookmarks WHERE user_id = $1 AND resource_id = $2")).
		WithArgs("u1", "r2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	bm := &models.Bookmark{UserID: "u1", ResourceID: "r1"}
	require.NoError(t, repo.Create(context.Background(), bm))
	assert.NotEmpty(t, bm.ID)

	removed, err := repo.Delete(context.Background(), "u1", "r1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(context.Background(), "u1", "r2")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
