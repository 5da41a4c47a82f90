package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/logger"

	"github.com/google/uuid"
)

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   domain.TokenIssuer
	hasher   domain.PasswordHasher
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens domain.TokenIssuer, hasher domain.PasswordHasher) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *authUsecase) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	if reg == nil {
		return nil, apperror.BadRequest("Please add all fields")
	}
	creds := reg.Credentials()
	name := strings.TrimSpace(creds.Name)
	email := normalizeEmail(creds.Email)

	var missing []string
	if name == "" {
		missing = append(missing, "Name is required")
	}
	if email == "" {
		missing = append(missing, "Email is required")
	}
	if creds.Password == "" {
		missing = append(missing, "Password is required")
	}
	if len(missing) > 0 {
		return nil, apperror.Validation("Please add all fields", missing)
	}

	// Fast path; the unique index on email is authoritative
	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("User already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	hash, err := u.hasher.Hash(creds.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         reg.Role(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch r := reg.(type) {
	case domain.StudentRegistration:
		user.Skills = cleanStrings(r.Skills)
	case domain.RecruiterRegistration:
		if company := strings.TrimSpace(r.Company); company != "" {
			user.Company = &company
		}
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("User already exists")
		}
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("User registered", "user_id", user.ID, "role", user.Role)
	return u.issue(user)
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest("Invalid credentials")
		}
		return nil, apperror.Internal(err)
	}
	if err := u.hasher.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.BadRequest("Invalid credentials")
	}
	return u.issue(user)
}

// Authenticate resolves a bearer token to the identity it names. The role
// comes from the stored user, never from the token.
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, apperror.Unauthorized("Not authorized, no token")
	}
	subject, err := u.tokens.Parse(token)
	if err != nil {
		return nil, apperror.Unauthorized("Not authorized, token failed")
	}
	user, err := u.userRepo.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Not authorized, user not found")
		}
		return nil, apperror.Internal(err)
	}
	return &domain.Identity{ID: user.ID, Role: user.Role}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	user, err := u.userRepo.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *authUsecase) issue(user *domain.User) (*domain.AuthResult, error) {
	token, err := u.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthResult{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}, nil
}

// cleanStrings trims entries and drops blanks. Never returns nil.
func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
