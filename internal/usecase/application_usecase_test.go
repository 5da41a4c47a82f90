package usecase_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"job-portal-backend/internal/domain"
	"job-portal-backend/internal/usecase"
	"job-portal-backend/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec := e.recruiter(t, "r@acme.io")
	stu := e.student(t, "s@uni.edu")
	job := e.job(t, rec)

	app, err := e.applications.Apply(ctx, stu, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusApplied, app.Status)
	assert.Equal(t, stu.ID, app.StudentID)
	assert.False(t, app.AppliedAt.IsZero())

	_, err = e.applications.Apply(ctx, stu, job.ID)
	assertCode(t, err, http.StatusConflict)
	assert.Equal(t, "You have already applied for this job", err.Error())

	apps, err := e.store.Applications().ListByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
	assert.Equal(t, 1, e.recorder.submitted)
	assert.Equal(t, 1, e.recorder.duplicates)

	_, err = e.applications.Apply(ctx, rec, job.ID)
	assertCode(t, err, http.StatusForbidden)

	_, err = e.applications.Apply(ctx, stu, "7d3c4b8e-0000-4000-8000-000000000000")
	assertCode(t, err, http.StatusNotFound)
}

func TestApply_ConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	job := e.job(t, e.recruiter(t, "r@acme.io"))
	stu := e.student(t, "s@uni.edu")

	const callers = 20
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.applications.Apply(ctx, stu, job.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assertCode(t, err, http.StatusConflict)
	}
	assert.Equal(t, 1, succeeded)

	apps, err := e.store.Applications().ListByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestApply_StoreDuplicateBecomesConflict(t *testing.T) {
	ctx := context.Background()
	apps := new(MockApplicationRepo)
	jobs := new(MockJobRepo)
	jobs.On("GetByID", mock.Anything, "j1").Return(&domain.Job{ID: "j1", RecruiterID: "r1"}, nil)
	apps.On("CheckExists", mock.Anything, "j1", "s1").Return(false, nil)
	apps.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(domain.ErrDuplicate)

	uc := usecase.NewApplicationUsecase(apps, jobs, nil, nil, metrics.Nop{})
	_, err := uc.Apply(ctx, domain.Identity{ID: "s1", Role: domain.RoleStudent}, "j1")
	assertCode(t, err, http.StatusConflict)
	apps.AssertExpectations(t)
}

func TestListForStudent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec := e.recruiter(t, "r@acme.io")
	stu := e.student(t, "s@uni.edu")
	other := e.student(t, "o@uni.edu")
	job := e.job(t, rec)

	_, err := e.applications.Apply(ctx, stu, job.ID)
	require.NoError(t, err)
	_, err = e.applications.Apply(ctx, other, job.ID)
	require.NoError(t, err)

	list, err := e.applications.ListForStudent(ctx, stu)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Job)
	assert.Equal(t, domain.JobSummary{ID: job.ID, Title: job.Title, Company: job.Company, Location: job.Location, Status: domain.JobStatusOpen}, *list[0].Job)

	_, err = e.applications.ListForStudent(ctx, rec)
	assertCode(t, err, http.StatusForbidden)
}

func TestListForJob(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec := e.recruiter(t, "r@acme.io")
	intruder := e.recruiter(t, "x@evil.io")
	withProfile := e.student(t, "p@uni.edu")
	withoutProfile := e.student(t, "n@uni.edu")
	job := e.job(t, rec)

	_, err := e.students.UpsertProfile(ctx, withProfile, &domain.StudentProfile{Title: "Gopher", Skills: []domain.Skill{{Name: "Go"}}})
	require.NoError(t, err)
	for _, s := range []domain.Identity{withProfile, withoutProfile} {
		_, err := e.applications.Apply(ctx, s, job.ID)
		require.NoError(t, err)
	}

	list, err := e.applications.ListForJob(ctx, rec, job.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byStudent := map[string]domain.EnrichedApplication{}
	for _, a := range list {
		byStudent[a.StudentID] = a
	}

	enriched := byStudent[withProfile.ID]
	require.NotNil(t, enriched.Student)
	assert.Equal(t, "p@uni.edu", enriched.Student.Email)
	profile, ok := enriched.StudentProfile.(*domain.StudentProfile)
	require.True(t, ok)
	assert.Equal(t, "Gopher", profile.Title)
	assert.Equal(t, domain.SkillLevelIntermediate, profile.Skills[0].Level)

	bare := byStudent[withoutProfile.ID]
	require.NotNil(t, bare.Student)
	assert.Equal(t, domain.EmptyObject{}, bare.StudentProfile)

	_, err = e.applications.ListForJob(ctx, intruder, job.ID)
	assertCode(t, err, http.StatusForbidden)

	_, err = e.applications.ListForJob(ctx, rec, "1b2c3d4e-0000-4000-8000-000000000000")
	assertCode(t, err, http.StatusNotFound)

	_, err = e.applications.ListForJob(ctx, withProfile, job.ID)
	assertCode(t, err, http.StatusForbidden)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec := e.recruiter(t, "r@acme.io")
	other := e.recruiter(t, "r2@acme.io")
	stu := e.student(t, "s@uni.edu")
	job := e.job(t, rec)
	app, err := e.applications.Apply(ctx, stu, job.ID)
	require.NoError(t, err)

	t.Run("any status is reachable from any status", func(t *testing.T) {
		for _, next := range []string{"Shortlisted", "Rejected", "Interviewing", "Applied", "Shortlisted"} {
			updated, err := e.applications.UpdateStatus(ctx, rec, app.ID, next)
			require.NoError(t, err)
			assert.Equal(t, domain.ApplicationStatus(next), updated.Status)
		}
		assert.Equal(t, []string{
			"Applied->Shortlisted", "Shortlisted->Rejected", "Rejected->Interviewing",
			"Interviewing->Applied", "Applied->Shortlisted",
		}, e.recorder.changes)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, err := e.applications.UpdateStatus(ctx, rec, app.ID, "Hired")
		assertCode(t, err, http.StatusBadRequest)

		stored, err := e.store.Applications().GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusShortlisted, stored.Status)
	})

	t.Run("cross-tenant recruiter is forbidden", func(t *testing.T) {
		_, err := e.applications.UpdateStatus(ctx, other, app.ID, "Rejected")
		assertCode(t, err, http.StatusForbidden)

		stored, err := e.store.Applications().GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusShortlisted, stored.Status)
	})

	t.Run("students are forbidden", func(t *testing.T) {
		_, err := e.applications.UpdateStatus(ctx, stu, app.ID, "Shortlisted")
		assertCode(t, err, http.StatusForbidden)
	})

	t.Run("missing application", func(t *testing.T) {
		_, err := e.applications.UpdateStatus(ctx, rec, "00000000-0000-4000-8000-000000000000", "Shortlisted")
		assertCode(t, err, http.StatusNotFound)
	})
}

func TestUpdateStatus_OrphanedApplication(t *testing.T) {
	ctx := context.Background()
	apps := new(MockApplicationRepo)
	jobs := new(MockJobRepo)
	apps.On("GetByID", mock.Anything, "a1").Return(&domain.Application{ID: "a1", JobID: "gone", Status: domain.ApplicationStatusApplied}, nil)
	jobs.On("GetByID", mock.Anything, "gone").Return(nil, domain.ErrNotFound)

	uc := usecase.NewApplicationUsecase(apps, jobs, nil, nil, nil)
	_, err := uc.UpdateStatus(ctx, domain.Identity{ID: "r1", Role: domain.RoleRecruiter}, "a1", "Shortlisted")
	assertCode(t, err, http.StatusNotFound)
	apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestListForJob_UnownedJobIsForbidden(t *testing.T) {
	ctx := context.Background()
	apps := new(MockApplicationRepo)
	jobs := new(MockJobRepo)
	jobs.On("GetByID", mock.Anything, "j1").Return(&domain.Job{ID: "j1", RecruiterID: ""}, nil)

	uc := usecase.NewApplicationUsecase(apps, jobs, nil, nil, nil)
	_, err := uc.ListForJob(ctx, domain.Identity{ID: "r1", Role: domain.RoleRecruiter}, "j1")
	assertCode(t, err, http.StatusForbidden)
	apps.AssertNotCalled(t, "ListByJob", mock.Anything, mock.Anything)
}
