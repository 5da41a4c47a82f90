package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/internal/usecase"
	"job-portal-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores role payload and issues a token", func(t *testing.T) {
		e := newEnv(t)
		res, err := e.auth.Register(ctx, domain.RecruiterRegistration{
			Creds:   domain.Credentials{Name: " Rita ", Email: " Rita@Acme.io ", Password: "pw"},
			Company: "Acme",
		})
		require.NoError(t, err)
		assert.Equal(t, "Rita", res.Name)
		assert.Equal(t, "rita@acme.io", res.Email)
		assert.Equal(t, domain.RoleRecruiter, res.Role)
		assert.NotEmpty(t, res.Token)

		user, err := e.store.Users().GetByID(ctx, res.ID)
		require.NoError(t, err)
		require.NotNil(t, user.Company)
		assert.Equal(t, "Acme", *user.Company)
		assert.NotEqual(t, "pw", user.PasswordHash)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		e := newEnv(t)
		e.student(t, "sam@uni.edu")
		_, err := e.auth.Register(ctx, domain.StudentRegistration{
			Creds: domain.Credentials{Name: "Other", Email: "SAM@uni.edu", Password: "pw"},
		})
		assertCode(t, err, http.StatusConflict)
		assert.Equal(t, "User already exists", err.Error())
	})

	t.Run("missing fields", func(t *testing.T) {
		e := newEnv(t)
		_, err := e.auth.Register(ctx, domain.StudentRegistration{Creds: domain.Credentials{Email: "x@y.z"}})
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("store-level duplicate is a conflict", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "a@b.c").Return(nil, domain.ErrNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(domain.ErrDuplicate)

		uc := usecase.NewAuthUsecase(repo, auth.NewTokenManager("s", time.Hour), auth.NewBcryptHasher(bcrypt.MinCost))
		_, err := uc.Register(ctx, domain.StudentRegistration{Creds: domain.Credentials{Name: "A", Email: "a@b.c", Password: "pw"}})
		assertCode(t, err, http.StatusConflict)
		repo.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	id := e.student(t, "sam@uni.edu")

	res, err := e.auth.Login(ctx, "SAM@uni.edu", "password1")
	require.NoError(t, err)
	assert.Equal(t, id.ID, res.ID)

	_, err = e.auth.Login(ctx, "sam@uni.edu", "wrong")
	assertCode(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid credentials", err.Error())

	_, err = e.auth.Login(ctx, "nobody@uni.edu", "password1")
	assertCode(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	res, err := e.auth.Register(ctx, domain.StudentRegistration{
		Creds: domain.Credentials{Name: "S", Email: "s@uni.edu", Password: "pw"},
	})
	require.NoError(t, err)

	identity, err := e.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{ID: res.ID, Role: domain.RoleStudent}, *identity)

	_, err = e.auth.Authenticate(ctx, "")
	assertCode(t, err, http.StatusUnauthorized)

	_, err = e.auth.Authenticate(ctx, "garbage")
	assertCode(t, err, http.StatusUnauthorized)

	orphan, err := auth.NewTokenManager("test-secret", time.Hour).Issue("ghost", "student")
	require.NoError(t, err)
	_, err = e.auth.Authenticate(ctx, orphan)
	assertCode(t, err, http.StatusUnauthorized)
}

func TestAuthenticate_StoreFailureIsInternal(t *testing.T) {
	repo := new(MockUserRepo)
	tokens := auth.NewTokenManager("s", time.Hour)
	token, err := tokens.Issue("u1", "student")
	require.NoError(t, err)
	repo.On("GetByID", mock.Anything, "u1").Return(nil, errors.New("connection reset"))

	uc := usecase.NewAuthUsecase(repo, tokens, auth.NewBcryptHasher(bcrypt.MinCost))
	_, err = uc.Authenticate(context.Background(), token)
	assertCode(t, err, http.StatusInternalServerError)
}
