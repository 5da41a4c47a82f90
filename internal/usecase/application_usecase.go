package usecase

import (
	"context"
	"errors"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/logger"
	"job-portal-backend/pkg/metrics"

	"github.com/google/uuid"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	userRepo        domain.UserRepository
	profileRepo     domain.StudentProfileRepository
	recorder        metrics.WorkflowRecorder
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	profileRepo domain.StudentProfileRepository,
	recorder metrics.WorkflowRecorder,
) domain.ApplicationUsecase {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		recorder:        recorder,
	}
}

// Apply creates an Applied application for the calling student.
func (uc *applicationUsecase) Apply(ctx context.Context, identity domain.Identity, jobID string) (*domain.Application, error) {
	if err := AuthorizeRole(identity, domain.RoleStudent); err != nil {
		return nil, err
	}

	// 1. Job must exist
	if _, err := uc.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	// 2. Check for duplicate application
	exists, err := uc.applicationRepo.CheckExists(ctx, jobID, identity.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		uc.recorder.RecordDuplicateApplication()
		return nil, apperror.Conflict("You have already applied for this job")
	}

	// 3. Create application; a concurrent twin loses on the unique index
	now := time.Now().UTC()
	app := &domain.Application{
		ID:        uuid.NewString(),
		JobID:     jobID,
		StudentID: identity.ID,
		Status:    domain.ApplicationStatusApplied,
		AppliedAt: now,
		UpdatedAt: now,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			uc.recorder.RecordDuplicateApplication()
			return nil, apperror.Conflict("You have already applied for this job")
		}
		return nil, apperror.Internal(err)
	}

	uc.recorder.RecordApplicationSubmitted()
	return app, nil
}

// ListForStudent returns the caller's applications joined with a job summary.
func (uc *applicationUsecase) ListForStudent(ctx context.Context, identity domain.Identity) ([]domain.StudentApplication, error) {
	if err := AuthorizeRole(identity, domain.RoleStudent); err != nil {
		return nil, err
	}

	apps, err := uc.applicationRepo.ListByStudent(ctx, identity.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	jobIDs := make([]string, 0, len(apps))
	seen := make(map[string]bool, len(apps))
	for _, app := range apps {
		if !seen[app.JobID] {
			seen[app.JobID] = true
			jobIDs = append(jobIDs, app.JobID)
		}
	}

	jobs, err := uc.jobRepo.GetByIDs(ctx, jobIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	summaries := make(map[string]*domain.JobSummary, len(jobs))
	for _, job := range jobs {
		summaries[job.ID] = &domain.JobSummary{
			ID:       job.ID,
			Title:    job.Title,
			Company:  job.Company,
			Location: job.Location,
			Status:   job.Status,
		}
	}

	result := make([]domain.StudentApplication, 0, len(apps))
	for _, app := range apps {
		summary := summaries[app.JobID]
		if summary == nil {
			logger.Log.Warn("Application references missing job", "application_id", app.ID, "job_id", app.JobID)
		}
		result = append(result, domain.StudentApplication{Application: app, Job: summary})
	}
	return result, nil
}

// ListForJob returns every applicant of a job owned by the caller, with
// identity and student profile merged in.
func (uc *applicationUsecase) ListForJob(ctx context.Context, identity domain.Identity, jobID string) ([]domain.EnrichedApplication, error) {
	if err := AuthorizeRole(identity, domain.RoleRecruiter); err != nil {
		return nil, err
	}

	// 1. Validate employer owns this job
	if err := uc.validateJobOwnership(ctx, identity, jobID); err != nil {
		return nil, err
	}

	// 2. Fetch applications
	apps, err := uc.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// 3. Batch-fetch applicants and their profiles
	studentIDs := make([]string, 0, len(apps))
	seen := make(map[string]bool, len(apps))
	for _, app := range apps {
		if !seen[app.StudentID] {
			seen[app.StudentID] = true
			studentIDs = append(studentIDs, app.StudentID)
		}
	}

	users, err := uc.userRepo.GetByIDs(ctx, studentIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	profiles, err := uc.profileRepo.GetByUserIDs(ctx, studentIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	applicants := make(map[string]*domain.ApplicantSummary, len(users))
	for _, user := range users {
		applicants[user.ID] = &domain.ApplicantSummary{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	profileByUser := make(map[string]*domain.StudentProfile, len(profiles))
	for i := range profiles {
		profileByUser[profiles[i].UserID] = &profiles[i]
	}

	// 4. Merge; a missing profile renders as {}
	result := make([]domain.EnrichedApplication, 0, len(apps))
	for _, app := range apps {
		enriched := domain.EnrichedApplication{
			Application:    app,
			Student:        applicants[app.StudentID],
			StudentProfile: domain.EmptyObject{},
		}
		if p, ok := profileByUser[app.StudentID]; ok {
			enriched.StudentProfile = p
		}
		result = append(result, enriched)
	}
	return result, nil
}

// UpdateStatus moves an application to any of the four statuses. Only the
// recruiter owning the job may do so.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, identity domain.Identity, applicationID string, status string) (*domain.Application, error) {
	if err := AuthorizeRole(identity, domain.RoleRecruiter); err != nil {
		return nil, err
	}

	newStatus, ok := domain.ParseApplicationStatus(status)
	if !ok {
		return nil, apperror.Validation("Invalid status", []string{
			"Status must be one of: Applied, Shortlisted, Interviewing, Rejected",
		})
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	job, err := uc.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Log.Error("Integrity error: application references missing job",
				"application_id", app.ID, "job_id", app.JobID)
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if err := AuthorizeOwnership(identity, job.RecruiterID); err != nil {
		return nil, err
	}

	previous := app.Status
	app.Status = newStatus
	app.UpdatedAt = time.Now().UTC()
	if err := uc.applicationRepo.UpdateStatus(ctx, app); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	uc.recorder.RecordStatusChange(string(previous), string(newStatus))
	logger.Log.Info("Application status changed",
		"application_id", app.ID,
		"job_id", app.JobID,
		"recruiter_id", identity.ID,
		"from", previous,
		"to", newStatus,
	)
	return app, nil
}

// validateJobOwnership checks the job exists and belongs to the caller.
func (uc *applicationUsecase) validateJobOwnership(ctx context.Context, identity domain.Identity, jobID string) error {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return AuthorizeOwnership(identity, job.RecruiterID)
}
