package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJob(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	rec := e.recruiter(t, "r@acme.io")
	stu := e.student(t, "s@uni.edu")

	t.Run("students cannot post", func(t *testing.T) {
		_, err := e.jobs.CreateJob(ctx, stu, domain.JobInput{Title: "T", Company: "C", Description: "D"})
		assertCode(t, err, http.StatusForbidden)
	})

	t.Run("required fields are reported individually", func(t *testing.T) {
		_, err := e.jobs.CreateJob(ctx, rec, domain.JobInput{Title: "  ", Description: "<script>x</script>"})
		assertCode(t, err, http.StatusBadRequest)

		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, "Please add all required fields", appErr.Message)
		assert.ElementsMatch(t, []string{"Title is required", "Company is required", "Description is required"}, appErr.Details)
	})

	t.Run("owner and defaults are server assigned", func(t *testing.T) {
		job, err := e.jobs.CreateJob(ctx, rec, domain.JobInput{
			Title:          " Go Dev ",
			Company:        "Acme",
			Description:    "<p>Ship <b>things</b></p>",
			SkillsRequired: []string{"go", " ", "sql"},
		})
		require.NoError(t, err)
		assert.Equal(t, rec.ID, job.RecruiterID)
		assert.Equal(t, "Go Dev", job.Title)
		assert.Equal(t, "Ship things", job.Description)
		assert.Equal(t, domain.JobStatusOpen, job.Status)
		assert.Equal(t, []string{"go", "sql"}, job.SkillsRequired)
	})

	t.Run("description is stored as plain text", func(t *testing.T) {
		job, err := e.jobs.CreateJob(ctx, rec, domain.JobInput{Title: "Research", Company: "Tom's Lab", Description: "R&D <3 Go"})
		require.NoError(t, err)
		assert.Equal(t, "R&D <3 Go", job.Description)

		stored, err := e.jobs.GetJob(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, "R&D <3 Go", stored.Description)
	})
}

func TestListJobs(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	r1 := e.recruiter(t, "r1@acme.io")
	r2 := e.recruiter(t, "r2@acme.io")
	j1 := e.job(t, r1)
	j2 := e.job(t, r2)
	j3 := e.job(t, r1)

	all, err := e.jobs.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{j1.ID, j2.ID, j3.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	mine, err := e.jobs.ListOwnedJobs(ctx, r1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, j := range mine {
		assert.Equal(t, r1.ID, j.RecruiterID)
	}

	_, err = e.jobs.ListOwnedJobs(ctx, e.student(t, "s@uni.edu"))
	assertCode(t, err, http.StatusForbidden)

	got, err := e.jobs.GetJob(ctx, j2.ID)
	require.NoError(t, err)
	assert.Equal(t, j2.ID, got.ID)

	_, err = e.jobs.GetJob(ctx, "3f1f9a7e-0000-4000-8000-000000000000")
	assertCode(t, err, http.StatusNotFound)
}
