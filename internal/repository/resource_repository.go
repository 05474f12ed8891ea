package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
)

const resourceSelect = `SELECT r.id, r.type, r.title, r.description, r.year, r.month, r.file_url, r.file_size, r.file_type, r.subject_id, r.uploaded_by_id, r.verified, r.created_at, r.updated_at, s.subject_name, s.subject_code, s.semester_id, sem.sem_number, sem.branch_id, b.branch_name, u.username`

const resourceJoins = ` FROM resources r LEFT JOIN subjects s ON s.id = r.subject_id LEFT JOIN semesters sem ON sem.id = s.semester_id LEFT JOIN branches b ON b.id = sem.branch_id LEFT JOIN users u ON u.id = r.uploaded_by_id`

// resourceRow is a resource joined with its subject chain and uploader.
type resourceRow struct {
	models.Resource
	SubjectName      sql.NullString `db:"subject_name"`
	SubjectCode      sql.NullString `db:"subject_code"`
	SemesterID       sql.NullString `db:"semester_id"`
	SemNumber        sql.NullInt64  `db:"sem_number"`
	BranchID         sql.NullString `db:"branch_id"`
	BranchName       sql.NullString `db:"branch_name"`
	UploaderUsername sql.NullString `db:"username"`
}

func (row resourceRow) toModel() models.Resource {
	res := row.Resource
	if row.SubjectName.Valid {
		subject := &models.Subject{
			ID:          res.SubjectID,
			SubjectName: row.SubjectName.String,
			SubjectCode: row.SubjectCode.String,
			SemesterID:  row.SemesterID.String,
		}
		if row.SemNumber.Valid {
			semester := &models.Semester{
				ID:        row.SemesterID.String,
				SemNumber: int(row.SemNumber.Int64),
				BranchID:  row.BranchID.String,
			}
			if row.BranchName.Valid {
				semester.Branch = &models.Branch{ID: row.BranchID.String, BranchName: row.BranchName.String}
			}
			subject.Semester = semester
		}
		res.Subject = subject
	}
	if row.UploaderUsername.Valid {
		res.UploadedBy = &models.Uploader{Username: row.UploaderUsername.String}
	}
	return res
}

func rowsToResources(rows []resourceRow) []models.Resource {
	resources := make([]models.Resource, 0, len(rows))
	for _, row := range rows {
		resources = append(resources, row.toModel())
	}
	return resources
}

// ResourceRepository handles persistence for study resources.
type ResourceRepository struct {
	db *sqlx.DB
}

// NewResourceRepository creates a new repository instance.
func NewResourceRepository(db *sqlx.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// ListByType returns every resource of the given type, newest first.
func (r *ResourceRepository) ListByType(ctx context.Context, resourceType models.ResourceType) ([]models.Resource, error) {
	query := resourceSelect + resourceJoins + " WHERE r.type = $1 ORDER BY r.created_at DESC"
	var rows []resourceRow
	if err := r.db.SelectContext(ctx, &rows, query, resourceType); err != nil {
		return nil, fmt.Errorf("list resources by type: %w", err)
	}
	return rowsToResources(rows), nil
}

// Recent returns the newest resources across all types.
func (r *ResourceRepository) Recent(ctx context.Context, limit int) ([]models.Resource, error) {
	query := resourceSelect + resourceJoins + " ORDER BY r.created_at DESC LIMIT $1"
	var rows []resourceRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list recent resources: %w", err)
	}
	return rowsToResources(rows), nil
}

// FindByID returns a resource by id.
func (r *ResourceRepository) FindByID(ctx context.Context, id string) (*models.Resource, error) {
	query := resourceSelect + resourceJoins + " WHERE r.id = $1"
	var row resourceRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	res := row.toModel()
	return &res, nil
}

// Search returns a page of resources matching the filter and the total match count.
// The semester identifier matches every semester sharing its number, so the
// same id resolves within whichever branch the filter names.
func (r *ResourceRepository) Search(ctx context.Context, filter models.SearchFilter) ([]models.Resource, int, error) {
	var conditions []string
	var args []interface{}

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("r.type = $%d", len(args)+1))
		args = append(args, filter.Type)
	}
	if filter.Branch != "" {
		conditions = append(conditions, fmt.Sprintf("sem.branch_id = $%d", len(args)+1))
		args = append(args, filter.Branch)
	}
	if filter.Semester != "" {
		conditions = append(conditions, fmt.Sprintf("sem.sem_number = (SELECT sem_number FROM semesters WHERE id = $%d)", len(args)+1))
		args = append(args, filter.Semester)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		n := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(LOWER(r.title) LIKE $%d OR LOWER(r.description) LIKE $%d OR LOWER(s.subject_name) LIKE $%d OR LOWER(s.subject_code) LIKE $%d)", n, n, n, n))
		args = append(args, "%"+strings.ToLower(q)+"%")
	}

	where := " WHERE 1=1"
	if len(conditions) > 0 {
		where += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.Limit
	if size <= 0 {
		size = 5
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("%s%s%s ORDER BY r.created_at DESC, r.id LIMIT %d OFFSET %d", resourceSelect, resourceJoins, where, size, offset)
	var rows []resourceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search resources: %w", err)
	}

	countQuery := "SELECT COUNT(*)" + resourceJoins + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count resources: %w", err)
	}

	return rowsToResources(rows), total, nil
}

// Create persists a new resource.
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	if resource.ID == "" {
		resource.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = now
	}
	resource.UpdatedAt = now

	const query = `INSERT INTO resources (id, type, title, description, year, month, file_url, file_size, file_type, subject_id, uploaded_by_id, verified, created_at, updated_at) VALUES (:id, :type, :title, :description, :year, :month, :file_url, :file_size, :file_type, :subject_id, :uploaded_by_id, :verified, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, resource); err != nil {
		return fmt.Errorf("create resource: %w", err)
	}
	return nil
}
