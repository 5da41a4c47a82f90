package postgres

import (
	"context"

	"job-portal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id::text, title, company, description, salary, location, skills_required, recruiter_id::text, status, created_at`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var skills []string
	err := row.Scan(
		&job.ID, &job.Title, &job.Company, &job.Description, &job.Salary, &job.Location,
		pq.Array(&skills), &job.RecruiterID, &job.Status, &job.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	if skills == nil {
		skills = []string{}
	}
	job.SkillsRequired = skills
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (id, title, company, description, salary, location, skills_required, recruiter_id, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Company, job.Description, job.Salary, job.Location,
		pq.Array(job.SkillsRequired), job.RecruiterID, job.Status, job.CreatedAt,
	)
	return translate(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(r.db.QueryRow(ctx, query, id))
}

func (r *jobRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Job, error) {
	if len(ids) == 0 {
		return []domain.Job{}, nil
	}
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ANY($1::uuid[])`
	return r.list(ctx, query, pq.Array(ids))
}

// List returns every job in insertion order.
func (r *jobRepo) List(ctx context.Context) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at, id`
	return r.list(ctx, query)
}

func (r *jobRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE recruiter_id = $1 ORDER BY created_at, id`
	return r.list(ctx, query, recruiterID)
}

func (r *jobRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}
