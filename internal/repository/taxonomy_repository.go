package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TaxonomyRepository resolves branch, semester and subject identifiers.
type TaxonomyRepository struct {
	db *sqlx.DB
}

// NewTaxonomyRepository creates a new repository instance.
func NewTaxonomyRepository(db *sqlx.DB) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

// BranchIDByName returns the id of the branch with the given code.
// It returns sql.ErrNoRows when no such branch exists.
func (r *TaxonomyRepository) BranchIDByName(ctx context.Context, name string) (string, error) {
	const query = `SELECT id FROM branches WHERE UPPER(branch_name) = UPPER($1) LIMIT 1`
	var id string
	if err := r.db.GetContext(ctx, &id, query, name); err != nil {
		return "", err
	}
	return id, nil
}

// SemesterIDByNumber returns the id of a semester with the given number.
// It returns sql.ErrNoRows when no such semester exists.
func (r *TaxonomyRepository) SemesterIDByNumber(ctx context.Context, number int) (string, error) {
	const query = `SELECT id FROM semesters WHERE sem_number = $1 ORDER BY id LIMIT 1`
	var id string
	if err := r.db.GetContext(ctx, &id, query, number); err != nil {
		return "", err
	}
	return id, nil
}

// SubjectExists reports whether a subject with the id exists.
func (r *TaxonomyRepository) SubjectExists(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM subjects WHERE id = $1 LIMIT 1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check subject: %w", err)
	}
	return true, nil
}
