package domain

import (
	"context"
	"time"
)

// ApplicationStatus is a closed set. Applied is the only initial state and
// any other state can be reached from any state by the owning recruiter.
type ApplicationStatus string

const (
	ApplicationStatusApplied      ApplicationStatus = "Applied"
	ApplicationStatusShortlisted  ApplicationStatus = "Shortlisted"
	ApplicationStatusInterviewing ApplicationStatus = "Interviewing"
	ApplicationStatusRejected     ApplicationStatus = "Rejected"
)

// ApplicationStatuses lists every accepted status in display order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusApplied,
	ApplicationStatusShortlisted,
	ApplicationStatusInterviewing,
	ApplicationStatusRejected,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	status := ApplicationStatus(s)
	return status, status.Valid()
}

// Application is a student's claim on one job, unique per (job, student).
type Application struct {
	ID        string            `json:"id"`
	JobID     string            `json:"job_id"`
	StudentID string            `json:"student_id"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"applied_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// JobSummary is the read-only projection of a job shown to applicants.
type JobSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// StudentApplication is an application joined with its job summary.
// Job is nil when the referenced job no longer resolves.
type StudentApplication struct {
	Application
	Job *JobSummary `json:"job"`
}

type ApplicantSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EmptyObject serializes as {}.
type EmptyObject struct{}

// EnrichedApplication is what a recruiter sees for each applicant.
// StudentProfile holds either a *StudentProfile or EmptyObject.
type EnrichedApplication struct {
	Application
	Student        *ApplicantSummary `json:"student"`
	StudentProfile interface{}       `json:"student_profile"`
}

type ApplicationRepository interface {
	// Create must return ErrDuplicate when (job_id, student_id) already exists.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	CheckExists(ctx context.Context, jobID, studentID string) (bool, error)
	ListByStudent(ctx context.Context, studentID string) ([]Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	UpdateStatus(ctx context.Context, app *Application) error
}

type ApplicationUsecase interface {
	// Student operations
	Apply(ctx context.Context, identity Identity, jobID string) (*Application, error)
	ListForStudent(ctx context.Context, identity Identity) ([]StudentApplication, error)

	// Recruiter operations
	ListForJob(ctx context.Context, identity Identity, jobID string) ([]EnrichedApplication, error)
	UpdateStatus(ctx context.Context, identity Identity, applicationID string, status string) (*Application, error)
}
