package postgres

import (
	"context"

	"job-portal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `id::text, job_id::text, student_id::text, status, applied_at, updated_at`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	err := row.Scan(&app.ID, &app.JobID, &app.StudentID, &app.Status, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

// Create inserts a new application. The (job_id, student_id) unique index
// turns a concurrent second insert into ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, job_id, student_id, status, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		app.ID, app.JobID, app.StudentID, app.Status, app.AppliedAt, app.UpdatedAt,
	)
	return translate(err)
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return scanApplication(r.db.QueryRow(ctx, query, id))
}

// CheckExists checks if a student has already applied to a job
func (r *applicationRepo) CheckExists(ctx context.Context, jobID, studentID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND student_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, studentID).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE student_id = $1 ORDER BY applied_at DESC, id`
	return r.list(ctx, query, studentID)
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 ORDER BY applied_at, id`
	return r.list(ctx, query, jobID)
}

// UpdateStatus persists app.Status and app.UpdatedAt.
func (r *applicationRepo) UpdateStatus(ctx context.Context, app *domain.Application) error {
	query := `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, app.ID, app.Status, app.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}
