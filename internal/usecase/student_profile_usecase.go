package usecase

import (
	"context"
	"errors"
	"strings"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type studentProfileUsecase struct {
	profileRepo domain.StudentProfileRepository
	validate    *validator.Validate
	attachments domain.AttachmentValidator
}

func NewStudentProfileUsecase(
	profileRepo domain.StudentProfileRepository,
	validate *validator.Validate,
	attachments domain.AttachmentValidator,
) domain.StudentProfileUsecase {
	return &studentProfileUsecase{
		profileRepo: profileRepo,
		validate:    validate,
		attachments: attachments,
	}
}

// GetProfile never fails for a student without a stored profile; it returns
// the unsaved default instead.
func (u *studentProfileUsecase) GetProfile(ctx context.Context, identity domain.Identity) (*domain.StudentProfile, error) {
	if err := AuthorizeRole(identity, domain.RoleStudent); err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.GetByUserID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultStudentProfile(identity.ID), nil
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// UpsertProfile replaces the caller's profile wholesale.
func (u *studentProfileUsecase) UpsertProfile(ctx context.Context, identity domain.Identity, profile *domain.StudentProfile) (*domain.StudentProfile, error) {
	if err := AuthorizeRole(identity, domain.RoleStudent); err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.BadRequest("Invalid request body")
	}

	// Force owner from identity; the body cannot choose it
	profile.UserID = identity.ID
	profile.CreatedAt = nil
	profile.UpdatedAt = nil
	profile.Normalize()

	if err := u.validate.Struct(profile); err != nil {
		return nil, apperror.Validation("Validation failed", validation.FormatValidationErrors(err))
	}

	if strings.TrimSpace(profile.ResumeBlob) == "" {
		profile.ResumeBlob = ""
	} else if err := u.attachments.Validate(profile.ResumeFilename, profile.ResumeBlob); err != nil {
		return nil, apperror.Validation("Invalid resume", []string{err.Error()})
	}

	if err := u.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}
	return profile, nil
}
