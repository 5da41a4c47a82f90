package usecase_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentProfile_DefaultWhenMissing(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stu := e.student(t, "s@uni.edu")

	p, err := e.students.GetProfile(ctx, stu)
	require.NoError(t, err)
	assert.Equal(t, stu.ID, p.UserID)
	assert.Equal(t, domain.DefaultStudentTitle, p.Title)
	assert.Empty(t, p.Skills)
	assert.NotNil(t, p.Skills)
	assert.Nil(t, p.CreatedAt)

	_, err = e.store.StudentProfiles().GetByUserID(ctx, stu.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.students.GetProfile(ctx, e.recruiter(t, "r@acme.io"))
	assertCode(t, err, http.StatusForbidden)
}

func TestStudentProfile_Upsert(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stu := e.student(t, "s@uni.edu")
	other := e.student(t, "o@uni.edu")

	saved, err := e.students.UpsertProfile(ctx, stu, &domain.StudentProfile{
		UserID: other.ID,
		Title:  "Gopher",
		Skills: []domain.Skill{{Name: "Go"}, {Name: "SQL", Level: domain.SkillLevelExpert}},
	})
	require.NoError(t, err)
	assert.Equal(t, stu.ID, saved.UserID)
	assert.Equal(t, domain.SkillLevelIntermediate, saved.Skills[0].Level)
	assert.Equal(t, domain.SkillLevelExpert, saved.Skills[1].Level)
	require.NotNil(t, saved.CreatedAt)
	firstCreated := *saved.CreatedAt

	_, err = e.store.StudentProfiles().GetByUserID(ctx, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	replaced, err := e.students.UpsertProfile(ctx, stu, &domain.StudentProfile{Title: "Senior Gopher"})
	require.NoError(t, err)
	assert.Empty(t, replaced.Skills)
	assert.Equal(t, firstCreated, *replaced.CreatedAt)

	got, err := e.students.GetProfile(ctx, stu)
	require.NoError(t, err)
	assert.Equal(t, "Senior Gopher", got.Title)
}

func TestStudentProfile_Rejections(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stu := e.student(t, "s@uni.edu")

	t.Run("unknown skill level", func(t *testing.T) {
		_, err := e.students.UpsertProfile(ctx, stu, &domain.StudentProfile{
			Skills: []domain.Skill{{Name: "Go", Level: "Guru"}},
		})
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("resume with disallowed extension", func(t *testing.T) {
		_, err := e.students.UpsertProfile(ctx, stu, &domain.StudentProfile{
			ResumeFilename: "cv.exe",
			ResumeBlob:     base64.StdEncoding.EncodeToString([]byte("MZ")),
		})
		assertCode(t, err, http.StatusBadRequest)
		appErr, _ := apperror.As(err)
		assert.Equal(t, "Invalid resume", appErr.Message)
	})

	t.Run("resume content does not match extension", func(t *testing.T) {
		_, err := e.students.UpsertProfile(ctx, stu, &domain.StudentProfile{
			ResumeFilename: "cv.pdf",
			ResumeBlob:     base64.StdEncoding.EncodeToString([]byte("<html>not a pdf</html>")),
		})
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("recruiters cannot write", func(t *testing.T) {
		_, err := e.students.UpsertProfile(ctx, e.recruiter(t, "r@acme.io"), &domain.StudentProfile{})
		assertCode(t, err, http.StatusForbidden)
	})

	_, err := e.store.StudentProfiles().GetByUserID(ctx, stu.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
