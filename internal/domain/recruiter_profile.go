package domain

import (
	"context"
	"math"
	"strings"
	"time"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// CompanySizes are the accepted bands for RecruiterProfile.CompanySize.
var CompanySizes = []string{"1-10", "11-50", "51-200", "200+"}

const MandatoryRecruiterFieldCount = 12

// RecruiterProfile is one-to-one with a recruiter identity. FullName and
// Email mirror the identity record and are synced back to it on save.
type RecruiterProfile struct {
	UserID             string             `json:"user_id"`
	FullName           string             `json:"full_name"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone"`
	Designation        string             `json:"designation"`
	CompanyName        string             `json:"company_name"`
	CompanyWebsite     string             `json:"company_website"`
	Industry           string             `json:"industry"`
	CompanySize        string             `json:"company_size"`
	CompanyLocation    string             `json:"company_location"`
	CompanyDescription string             `json:"company_description"`
	CompanyEmailDomain string             `json:"company_email_domain"`
	LinkedInURL        string             `json:"linkedin_url"`
	RegistrationID     *string            `json:"registration_id,omitempty"`
	IsVerified         bool               `json:"is_verified"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	ProfileCompletion  int                `json:"profile_completion"`
	IsActive           bool               `json:"is_active"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type mandatoryField struct {
	label string
	value func(p *RecruiterProfile) string
}

var mandatoryRecruiterFields = []mandatoryField{
	{"Full Name", func(p *RecruiterProfile) string { return p.FullName }},
	{"Email", func(p *RecruiterProfile) string { return p.Email }},
	{"Phone", func(p *RecruiterProfile) string { return p.Phone }},
	{"Designation", func(p *RecruiterProfile) string { return p.Designation }},
	{"Company Name", func(p *RecruiterProfile) string { return p.CompanyName }},
	{"Company Website", func(p *RecruiterProfile) string { return p.CompanyWebsite }},
	{"Industry", func(p *RecruiterProfile) string { return p.Industry }},
	{"Company Size", func(p *RecruiterProfile) string { return p.CompanySize }},
	{"Company Location", func(p *RecruiterProfile) string { return p.CompanyLocation }},
	{"Company Description", func(p *RecruiterProfile) string { return p.CompanyDescription }},
	{"Company Email Domain", func(p *RecruiterProfile) string { return p.CompanyEmailDomain }},
	{"LinkedIn URL", func(p *RecruiterProfile) string { return p.LinkedInURL }},
}

// MissingMandatoryFields returns one message per blank mandatory field.
func (p *RecruiterProfile) MissingMandatoryFields() []string {
	var missing []string
	for _, f := range mandatoryRecruiterFields {
		if strings.TrimSpace(f.value(p)) == "" {
			missing = append(missing, f.label+" is required")
		}
	}
	return missing
}

// ComputeCompletion is round(100 * filled / 12). Whitespace-only counts as empty.
func (p *RecruiterProfile) ComputeCompletion() int {
	filled := 0
	for _, f := range mandatoryRecruiterFields {
		if strings.TrimSpace(f.value(p)) != "" {
			filled++
		}
	}
	return int(math.Round(100 * float64(filled) / MandatoryRecruiterFieldCount))
}

func (p *RecruiterProfile) RefreshCompletion() {
	p.ProfileCompletion = p.ComputeCompletion()
}

// RecruiterProfileInput carries client-updatable fields only. A nil pointer
// means the field was absent from the request. Verification, completion and
// activity flags have no input field.
type RecruiterProfileInput struct {
	FullName           *string `json:"full_name"`
	Email              *string `json:"email"`
	Phone              *string `json:"phone"`
	Designation        *string `json:"designation"`
	CompanyName        *string `json:"company_name"`
	CompanyWebsite     *string `json:"company_website"`
	Industry           *string `json:"industry"`
	CompanySize        *string `json:"company_size"`
	CompanyLocation    *string `json:"company_location"`
	CompanyDescription *string `json:"company_description"`
	CompanyEmailDomain *string `json:"company_email_domain"`
	LinkedInURL        *string `json:"linkedin_url"`
	RegistrationID     *string `json:"registration_id"`
}

// ApplyTo copies every present field onto p.
func (in *RecruiterProfileInput) ApplyTo(p *RecruiterProfile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.FullName, in.FullName)
	set(&p.Email, in.Email)
	set(&p.Phone, in.Phone)
	set(&p.Designation, in.Designation)
	set(&p.CompanyName, in.CompanyName)
	set(&p.CompanyWebsite, in.CompanyWebsite)
	set(&p.Industry, in.Industry)
	set(&p.CompanySize, in.CompanySize)
	set(&p.CompanyLocation, in.CompanyLocation)
	set(&p.CompanyDescription, in.CompanyDescription)
	set(&p.CompanyEmailDomain, in.CompanyEmailDomain)
	set(&p.LinkedInURL, in.LinkedInURL)
	if in.RegistrationID != nil {
		v := *in.RegistrationID
		p.RegistrationID = &v
	}
}

type RecruiterProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*RecruiterProfile, error)
	// Create must return ErrDuplicate when a profile already exists for the user.
	Create(ctx context.Context, profile *RecruiterProfile) error
	// Update never changes the active flag. It returns ErrInactive when the
	// stored profile has been deactivated.
	Update(ctx context.Context, profile *RecruiterProfile) error
	Deactivate(ctx context.Context, userID string) error
}

// ContentSanitizer strips markup from user-supplied free text.
type ContentSanitizer interface {
	Sanitize(s string) string
}

type RecruiterProfileUsecase interface {
	GetProfile(ctx context.Context, identity Identity) (*RecruiterProfile, error)
	CreateProfile(ctx context.Context, identity Identity, input RecruiterProfileInput) (*RecruiterProfile, error)
	UpdateProfile(ctx context.Context, identity Identity, input RecruiterProfileInput) (*RecruiterProfile, error)
	DeactivateProfile(ctx context.Context, identity Identity) error
}
