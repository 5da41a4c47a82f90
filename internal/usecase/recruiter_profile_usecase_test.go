package usecase_test

import (
	"context"
	"math"
	"net/http"
	"testing"

	"job-portal-backend/internal/domain"
	"job-portal-backend/internal/usecase"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/security"
	"job-portal-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func completeRecruiterInput() domain.RecruiterProfileInput {
	return domain.RecruiterProfileInput{
		FullName:           str("Rita Recruiter"),
		Email:              str("Rita@Acme.io"),
		Phone:              str("+15550100"),
		Designation:        str("Talent Lead"),
		CompanyName:        str("Acme"),
		CompanyWebsite:     str("https://acme.io"),
		Industry:           str("Software"),
		CompanySize:        str("11-50"),
		CompanyLocation:    str("Berlin"),
		CompanyDescription: str("We <b>build</b> things"),
		CompanyEmailDomain: str("acme.io"),
		LinkedInURL:        str("https://linkedin.com/company/acme"),
	}
}

func TestCreateRecruiterProfile(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec := e.recruiter(t, "r@acme.io")

	p, err := e.recruiters.CreateProfile(ctx, rec, completeRecruiterInput())
	require.NoError(t, err)
	assert.Equal(t, 100, p.ProfileCompletion)
	assert.Equal(t, "rita@acme.io", p.Email)
	assert.Equal(t, "We build things", p.CompanyDescription)
	assert.True(t, p.IsActive)
	assert.False(t, p.IsVerified)
	assert.Equal(t, domain.VerificationPending, p.VerificationStatus)

	user, err := e.store.Users().GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rita Recruiter", user.Name)
	assert.Equal(t, "rita@acme.io", user.Email)

	_, err = e.recruiters.CreateProfile(ctx, rec, completeRecruiterInput())
	assertCode(t, err, http.StatusConflict)
}

func TestCreateRecruiterProfile_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec := e.recruiter(t, "r@acme.io")

	t.Run("missing mandatory fields are listed", func(t *testing.T) {
		in := completeRecruiterInput()
		in.Phone = nil
		in.LinkedInURL = str("   ")
		_, err := e.recruiters.CreateProfile(ctx, rec, in)
		assertCode(t, err, http.StatusBadRequest)

		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"Phone is required", "LinkedIn URL is required"}, appErr.Details)
	})

	t.Run("company size outside the bands", func(t *testing.T) {
		in := completeRecruiterInput()
		in.CompanySize = str("5000")
		_, err := e.recruiters.CreateProfile(ctx, rec, in)
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("email owned by another identity", func(t *testing.T) {
		e.student(t, "taken@uni.edu")
		in := completeRecruiterInput()
		in.Email = str("taken@uni.edu")
		_, err := e.recruiters.CreateProfile(ctx, rec, in)
		assertCode(t, err, http.StatusConflict)

		_, err = e.store.RecruiterProfiles().GetByUserID(ctx, rec.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("students cannot create", func(t *testing.T) {
		_, err := e.recruiters.CreateProfile(ctx, e.student(t, "s@uni.edu"), completeRecruiterInput())
		assertCode(t, err, http.StatusForbidden)
	})
}

func TestUpdateRecruiterProfile(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec := e.recruiter(t, "r@acme.io")

	_, err := e.recruiters.UpdateProfile(ctx, rec, domain.RecruiterProfileInput{Industry: str("Fintech")})
	assertCode(t, err, http.StatusNotFound)

	_, err = e.recruiters.CreateProfile(ctx, rec, completeRecruiterInput())
	require.NoError(t, err)

	t.Run("clearing a field lowers completion", func(t *testing.T) {
		p, err := e.recruiters.UpdateProfile(ctx, rec, domain.RecruiterProfileInput{Industry: str("")})
		require.NoError(t, err)
		assert.Equal(t, 92, p.ProfileCompletion)
		assert.Equal(t, "Acme", p.CompanyName)
	})

	t.Run("whitespace-only value counts as cleared", func(t *testing.T) {
		p, err := e.recruiters.UpdateProfile(ctx, rec, domain.RecruiterProfileInput{Industry: str("Software"), CompanyLocation: str("   ")})
		require.NoError(t, err)
		assert.Equal(t, 92, p.ProfileCompletion)

		p, err = e.recruiters.UpdateProfile(ctx, rec, domain.RecruiterProfileInput{Industry: str("\t ")})
		require.NoError(t, err)
		assert.Equal(t, 83, p.ProfileCompletion)

		p, err = e.recruiters.UpdateProfile(ctx, rec, domain.RecruiterProfileInput{Industry: str("Software"), CompanyLocation: str("Berlin")})
		require.NoError(t, err)
		assert.Equal(t, 100, p.ProfileCompletion)
	})

	t.Run("company description keeps ampersands and apostrophes", func(t *testing.T) {
		p, err := e.recruiters.UpdateProfile(ctx, rec, domain.RecruiterProfileInput{CompanyDescription: str("Tom's R&D lab")})
		require.NoError(t, err)
		assert.Equal(t, "Tom's R&D lab", p.CompanyDescription)

		p, err = e.recruiters.UpdateProfile(ctx, rec, domain.RecruiterProfileInput{Industry: str("Software")})
		require.NoError(t, err)
		assert.Equal(t, "Tom's R&D lab", p.CompanyDescription)
	})

	t.Run("name change is synced to the identity", func(t *testing.T) {
		_, err := e.recruiters.UpdateProfile(ctx, rec, domain.RecruiterProfileInput{FullName: str("Rita R.")})
		require.NoError(t, err)

		user, err := e.store.Users().GetByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rita R.", user.Name)
		assert.Equal(t, "rita@acme.io", user.Email)
	})

	t.Run("deactivate is idempotent and blocks updates", func(t *testing.T) {
		require.NoError(t, e.recruiters.DeactivateProfile(ctx, rec))
		require.NoError(t, e.recruiters.DeactivateProfile(ctx, rec))

		p, err := e.recruiters.GetProfile(ctx, rec)
		require.NoError(t, err)
		assert.False(t, p.IsActive)

		_, err = e.recruiters.UpdateProfile(ctx, rec, domain.RecruiterProfileInput{Industry: str("Fintech")})
		assertCode(t, err, http.StatusForbidden)
	})
}

func TestRecruiterProfile_CompletionScale(t *testing.T) {
	setters := []func(p *domain.RecruiterProfile){
		func(p *domain.RecruiterProfile) { p.FullName = "a" },
		func(p *domain.RecruiterProfile) { p.Email = "a" },
		func(p *domain.RecruiterProfile) { p.Phone = "a" },
		func(p *domain.RecruiterProfile) { p.Designation = "a" },
		func(p *domain.RecruiterProfile) { p.CompanyName = "a" },
		func(p *domain.RecruiterProfile) { p.CompanyWebsite = "a" },
		func(p *domain.RecruiterProfile) { p.Industry = "a" },
		func(p *domain.RecruiterProfile) { p.CompanySize = "a" },
		func(p *domain.RecruiterProfile) { p.CompanyLocation = "a" },
		func(p *domain.RecruiterProfile) { p.CompanyDescription = "a" },
		func(p *domain.RecruiterProfile) { p.CompanyEmailDomain = "a" },
		func(p *domain.RecruiterProfile) { p.LinkedInURL = "a" },
	}

	p := &domain.RecruiterProfile{}
	assert.Equal(t, 0, p.ComputeCompletion())
	for k, set := range setters {
		set(p)
		want := int(math.Round(100 * float64(k+1) / 12))
		assert.Equal(t, want, p.ComputeCompletion(), "filled=%d", k+1)
	}
	assert.Equal(t, 100, p.ComputeCompletion())
}

// deactivatingRepo deactivates the stored profile right after the next load,
// so the caller holds a copy that still reads active.
type deactivatingRepo struct {
	domain.RecruiterProfileRepository
	armed bool
}

func (r *deactivatingRepo) GetByUserID(ctx context.Context, userID string) (*domain.RecruiterProfile, error) {
	p, err := r.RecruiterProfileRepository.GetByUserID(ctx, userID)
	if err == nil && r.armed {
		r.armed = false
		if derr := r.RecruiterProfileRepository.Deactivate(ctx, userID); derr != nil {
			return nil, derr
		}
	}
	return p, err
}

func TestUpdateRecruiterProfile_ConcurrentDeactivateWins(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec := e.recruiter(t, "r@acme.io")

	repo := &deactivatingRepo{RecruiterProfileRepository: e.store.RecruiterProfiles()}
	recruiters := usecase.NewRecruiterProfileUsecase(repo, e.store.Users(), validation.New(), security.NewTextSanitizer())

	_, err := recruiters.CreateProfile(ctx, rec, completeRecruiterInput())
	require.NoError(t, err)

	repo.armed = true
	_, err = recruiters.UpdateProfile(ctx, rec, domain.RecruiterProfileInput{Industry: str("Fintech")})
	assertCode(t, err, http.StatusForbidden)

	stored, err := e.store.RecruiterProfiles().GetByUserID(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, "Software", stored.Industry)
}
