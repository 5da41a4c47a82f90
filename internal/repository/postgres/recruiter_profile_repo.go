package postgres

import (
	"context"
	"errors"

	"job-portal-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type recruiterProfileRepo struct {
	db *pgxpool.Pool
}

func NewRecruiterProfileRepository(db *pgxpool.Pool) domain.RecruiterProfileRepository {
	return &recruiterProfileRepo{db: db}
}

const recruiterProfileColumns = `user_id::text, full_name, email, phone, designation,
	company_name, company_website, industry, company_size, company_location,
	company_description, company_email_domain, linkedin_url, registration_id,
	is_verified, verification_status, profile_completion, is_active, created_at, updated_at`

func (r *recruiterProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.RecruiterProfile, error) {
	query := `SELECT ` + recruiterProfileColumns + ` FROM recruiter_profiles WHERE user_id = $1`

	var p domain.RecruiterProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.Email, &p.Phone, &p.Designation,
		&p.CompanyName, &p.CompanyWebsite, &p.Industry, &p.CompanySize, &p.CompanyLocation,
		&p.CompanyDescription, &p.CompanyEmailDomain, &p.LinkedInURL, &p.RegistrationID,
		&p.IsVerified, &p.VerificationStatus, &p.ProfileCompletion, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *recruiterProfileRepo) Create(ctx context.Context, p *domain.RecruiterProfile) error {
	query := `
		INSERT INTO recruiter_profiles (
			user_id, full_name, email, phone, designation,
			company_name, company_website, industry, company_size, company_location,
			company_description, company_email_domain, linkedin_url, registration_id,
			is_verified, verification_status, profile_completion, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err := r.db.Exec(ctx, query,
		p.UserID, p.FullName, p.Email, p.Phone, p.Designation,
		p.CompanyName, p.CompanyWebsite, p.Industry, p.CompanySize, p.CompanyLocation,
		p.CompanyDescription, p.CompanyEmailDomain, p.LinkedInURL, p.RegistrationID,
		p.IsVerified, p.VerificationStatus, p.ProfileCompletion, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	return translate(err)
}

// Update rewrites the client-editable columns plus completion, and only while
// the profile is active. Verification state is never written from here.
func (r *recruiterProfileRepo) Update(ctx context.Context, p *domain.RecruiterProfile) error {
	query := `
		UPDATE recruiter_profiles SET
			full_name = $2, email = $3, phone = $4, designation = $5,
			company_name = $6, company_website = $7, industry = $8, company_size = $9,
			company_location = $10, company_description = $11, company_email_domain = $12,
			linkedin_url = $13, registration_id = $14, profile_completion = $15,
			updated_at = $16
		WHERE user_id = $1 AND is_active`

	tag, err := r.db.Exec(ctx, query,
		p.UserID, p.FullName, p.Email, p.Phone, p.Designation,
		p.CompanyName, p.CompanyWebsite, p.Industry, p.CompanySize,
		p.CompanyLocation, p.CompanyDescription, p.CompanyEmailDomain,
		p.LinkedInURL, p.RegistrationID, p.ProfileCompletion,
		p.UpdatedAt,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrInactive(ctx, p.UserID)
	}
	return nil
}

func (r *recruiterProfileRepo) Deactivate(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE recruiter_profiles SET is_active = FALSE, updated_at = NOW() WHERE user_id = $1 AND is_active`,
		userID,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		if err := r.missingOrInactive(ctx, userID); !errors.Is(err, domain.ErrInactive) {
			return err
		}
	}
	return nil
}

func (r *recruiterProfileRepo) missingOrInactive(ctx context.Context, userID string) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM recruiter_profiles WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return translate(err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInactive
}
