package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
)

// ParseRole accepts only the two roles known to the system.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleRecruiter:
		return Role(s), true
	}
	return "", false
}

// User is the identity record. Role never changes after registration.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Company      *string   `json:"company,omitempty"` // recruiters only
	Skills       []string  `json:"skills,omitempty"`  // students only
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated principal every gated operation receives.
type Identity struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

type Credentials struct {
	Name     string
	Email    string
	Password string
}

// Registration is a role-tagged registration payload: either
// StudentRegistration or RecruiterRegistration.
type Registration interface {
	Role() Role
	Credentials() Credentials
	isRegistration()
}

type StudentRegistration struct {
	Creds  Credentials
	Skills []string
}

func (r StudentRegistration) Role() Role               { return RoleStudent }
func (r StudentRegistration) Credentials() Credentials { return r.Creds }
func (StudentRegistration) isRegistration()            {}

type RecruiterRegistration struct {
	Creds   Credentials
	Company string
}

func (r RecruiterRegistration) Role() Role               { return RoleRecruiter }
func (r RecruiterRegistration) Credentials() Credentials { return r.Creds }
func (RecruiterRegistration) isRegistration()            {}

// AuthResult is returned by register and login.
type AuthResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Token string `json:"token"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []string) ([]User, error)
	UpdateContact(ctx context.Context, id, name, email string) error
}

// TokenIssuer issues and resolves opaque bearer credentials.
type TokenIssuer interface {
	Issue(subject string, role string) (string, error)
	Parse(token string) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

type AuthUsecase interface {
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Authenticate(ctx context.Context, token string) (*Identity, error)
	GetCurrentUser(ctx context.Context, identity Identity) (*User, error)
}
