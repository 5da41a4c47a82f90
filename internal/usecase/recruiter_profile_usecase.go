package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const companySizeRule = "oneof=1-10 11-50 51-200 200+"

type recruiterProfileUsecase struct {
	profileRepo domain.RecruiterProfileRepository
	userRepo    domain.UserRepository
	validate    *validator.Validate
	sanitizer   domain.ContentSanitizer
}

func NewRecruiterProfileUsecase(
	profileRepo domain.RecruiterProfileRepository,
	userRepo domain.UserRepository,
	validate *validator.Validate,
	sanitizer domain.ContentSanitizer,
) domain.RecruiterProfileUsecase {
	return &recruiterProfileUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		validate:    validate,
		sanitizer:   sanitizer,
	}
}

func (u *recruiterProfileUsecase) GetProfile(ctx context.Context, identity domain.Identity) (*domain.RecruiterProfile, error) {
	if err := AuthorizeRole(identity, domain.RoleRecruiter); err != nil {
		return nil, err
	}
	return u.load(ctx, identity.ID)
}

func (u *recruiterProfileUsecase) CreateProfile(ctx context.Context, identity domain.Identity, input domain.RecruiterProfileInput) (*domain.RecruiterProfile, error) {
	if err := AuthorizeRole(identity, domain.RoleRecruiter); err != nil {
		return nil, err
	}

	if _, err := u.profileRepo.GetByUserID(ctx, identity.ID); err == nil {
		return nil, apperror.Conflict("Recruiter profile already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	now := time.Now().UTC()
	profile := &domain.RecruiterProfile{
		UserID:             identity.ID,
		VerificationStatus: domain.VerificationPending,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	input.ApplyTo(profile)
	u.normalize(profile)

	details := profile.MissingMandatoryFields()
	details = append(details, u.checkCompanySize(profile.CompanySize)...)
	if len(details) > 0 {
		return nil, apperror.Validation("Validation failed", details)
	}

	if err := u.ensureEmailAvailable(ctx, identity.ID, profile.Email); err != nil {
		return nil, err
	}

	profile.RefreshCompletion()
	if err := u.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Recruiter profile already exists")
		}
		return nil, apperror.Internal(err)
	}

	if err := u.syncIdentity(ctx, identity.ID, profile.FullName, profile.Email); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile applies only the fields present in input. Clearing a
// mandatory field is allowed and lowers the completion score.
func (u *recruiterProfileUsecase) UpdateProfile(ctx context.Context, identity domain.Identity, input domain.RecruiterProfileInput) (*domain.RecruiterProfile, error) {
	if err := AuthorizeRole(identity, domain.RoleRecruiter); err != nil {
		return nil, err
	}

	profile, err := u.load(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive {
		return nil, errProfileDeactivated()
	}

	input.ApplyTo(profile)
	u.normalize(profile)

	if details := u.checkCompanySize(profile.CompanySize); len(details) > 0 {
		return nil, apperror.Validation("Validation failed", details)
	}

	syncName := input.FullName != nil && strings.TrimSpace(*input.FullName) != ""
	syncEmail := input.Email != nil && strings.TrimSpace(*input.Email) != ""
	if syncEmail {
		if err := u.ensureEmailAvailable(ctx, identity.ID, profile.Email); err != nil {
			return nil, err
		}
	}

	profile.UpdatedAt = time.Now().UTC()
	profile.RefreshCompletion()
	if err := u.profileRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrInactive) {
			return nil, errProfileDeactivated()
		}
		return nil, apperror.Internal(err)
	}

	if syncName || syncEmail {
		user, err := u.userRepo.GetByID(ctx, identity.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		name, email := user.Name, user.Email
		if syncName {
			name = profile.FullName
		}
		if syncEmail {
			email = profile.Email
		}
		if err := u.syncIdentity(ctx, identity.ID, name, email); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// DeactivateProfile soft-deletes the profile. Repeating it is a no-op.
func (u *recruiterProfileUsecase) DeactivateProfile(ctx context.Context, identity domain.Identity) error {
	if err := AuthorizeRole(identity, domain.RoleRecruiter); err != nil {
		return err
	}

	profile, err := u.load(ctx, identity.ID)
	if err != nil {
		return err
	}
	if !profile.IsActive {
		return nil
	}

	if err := u.profileRepo.Deactivate(ctx, identity.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Recruiter profile not found")
		}
		return apperror.Internal(err)
	}
	logger.Log.Info("Recruiter profile deactivated", "user_id", identity.ID)
	return nil
}

func errProfileDeactivated() error {
	return apperror.Forbidden("Profile is deactivated. Contact support.")
}

func (u *recruiterProfileUsecase) load(ctx context.Context, userID string) (*domain.RecruiterProfile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Recruiter profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (u *recruiterProfileUsecase) normalize(p *domain.RecruiterProfile) {
	p.Email = normalizeEmail(p.Email)
	p.CompanySize = strings.TrimSpace(p.CompanySize)
	p.CompanyDescription = u.sanitizer.Sanitize(p.CompanyDescription)
}

func (u *recruiterProfileUsecase) checkCompanySize(size string) []string {
	if size == "" {
		return nil
	}
	if err := u.validate.Var(size, companySizeRule); err != nil {
		return []string{size + " is not a valid company size"}
	}
	return nil
}

// ensureEmailAvailable runs before the profile save so the identity sync
// afterwards cannot fail on a taken email.
func (u *recruiterProfileUsecase) ensureEmailAvailable(ctx context.Context, userID, email string) error {
	if email == "" {
		return nil
	}
	owner, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return apperror.Internal(err)
	}
	if owner.ID != userID {
		return apperror.Conflict("Email is already in use by another account")
	}
	return nil
}

func (u *recruiterProfileUsecase) syncIdentity(ctx context.Context, userID, name, email string) error {
	if err := u.userRepo.UpdateContact(ctx, userID, name, email); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return apperror.Conflict("Email is already in use by another account")
		}
		return apperror.Internal(err)
	}
	return nil
}
