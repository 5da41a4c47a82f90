package domain

import (
	"context"
	"time"
)

const JobStatusOpen = "Open"

// Job is owned by exactly one recruiter. The catalog is append-only.
type Job struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Description    string    `json:"description"`
	Salary         string    `json:"salary"`
	Location       string    `json:"location"`
	SkillsRequired []string  `json:"skills_required"`
	RecruiterID    string    `json:"recruiter_id"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type JobInput struct {
	Title          string   `json:"title" validate:"notblank"`
	Company        string   `json:"company" validate:"notblank"`
	Description    string   `json:"description" validate:"notblank"`
	Salary         string   `json:"salary"`
	Location       string   `json:"location"`
	SkillsRequired []string `json:"skills_required"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	GetByIDs(ctx context.Context, ids []string) ([]Job, error)
	List(ctx context.Context) ([]Job, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]Job, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, identity Identity, input JobInput) (*Job, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context) ([]Job, error)
	ListOwnedJobs(ctx context.Context, identity Identity) ([]Job, error)
}
