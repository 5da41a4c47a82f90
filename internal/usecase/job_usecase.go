package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type jobUsecase struct {
	jobRepo   domain.JobRepository
	validate  *validator.Validate
	sanitizer domain.ContentSanitizer
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate, sanitizer domain.ContentSanitizer) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:   jobRepo,
		validate:  validate,
		sanitizer: sanitizer,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, identity domain.Identity, input domain.JobInput) (*domain.Job, error) {
	if err := AuthorizeRole(identity, domain.RoleRecruiter); err != nil {
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Company = strings.TrimSpace(input.Company)
	input.Description = u.sanitizer.Sanitize(input.Description)
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.Validation("Please add all required fields", validation.FormatValidationErrors(err))
	}

	job := &domain.Job{
		ID:             uuid.NewString(),
		Title:          input.Title,
		Company:        input.Company,
		Description:    input.Description,
		Salary:         strings.TrimSpace(input.Salary),
		Location:       strings.TrimSpace(input.Location),
		SkillsRequired: cleanStrings(input.SkillsRequired),
		RecruiterID:    identity.ID,
		Status:         domain.JobStatusOpen,
		CreatedAt:      time.Now().UTC(),
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := u.jobRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) ListOwnedJobs(ctx context.Context, identity domain.Identity) ([]domain.Job, error) {
	if err := AuthorizeRole(identity, domain.RoleRecruiter); err != nil {
		return nil, err
	}
	jobs, err := u.jobRepo.ListByRecruiter(ctx, identity.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}
