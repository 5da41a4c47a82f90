package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"job-portal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type studentProfileRepo struct {
	db *pgxpool.Pool
}

func NewStudentProfileRepository(db *pgxpool.Pool) domain.StudentProfileRepository {
	return &studentProfileRepo{db: db}
}

const studentProfileColumns = `user_id::text, title, bio, location, phone,
	skills, education, projects, certifications, social_links,
	resume_filename, resume_blob, created_at, updated_at`

func scanStudentProfile(row pgx.Row) (*domain.StudentProfile, error) {
	var p domain.StudentProfile
	var skills, education, projects, certifications, socialLinks []byte
	err := row.Scan(
		&p.UserID, &p.Title, &p.Bio, &p.Location, &p.Phone,
		&skills, &education, &projects, &certifications, &socialLinks,
		&p.ResumeFilename, &p.ResumeBlob, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}

	for _, col := range []struct {
		raw []byte
		dst interface{}
	}{
		{skills, &p.Skills},
		{education, &p.Education},
		{projects, &p.Projects},
		{certifications, &p.Certifications},
		{socialLinks, &p.SocialLinks},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("decode student profile %s: %w", p.UserID, err)
		}
	}
	p.Normalize()
	return &p, nil
}

func (r *studentProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.StudentProfile, error) {
	query := `SELECT ` + studentProfileColumns + ` FROM student_profiles WHERE user_id = $1`
	return scanStudentProfile(r.db.QueryRow(ctx, query, userID))
}

func (r *studentProfileRepo) GetByUserIDs(ctx context.Context, userIDs []string) ([]domain.StudentProfile, error) {
	if len(userIDs) == 0 {
		return []domain.StudentProfile{}, nil
	}
	query := `SELECT ` + studentProfileColumns + ` FROM student_profiles WHERE user_id = ANY($1::uuid[])`
	rows, err := r.db.Query(ctx, query, pq.Array(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []domain.StudentProfile{}
	for rows.Next() {
		p, err := scanStudentProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// Upsert writes the whole profile in one statement keyed by user_id and
// fills the stored timestamps back into profile.
func (r *studentProfileRepo) Upsert(ctx context.Context, profile *domain.StudentProfile) error {
	encode := func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	}
	var cols [5]string
	for i, v := range []interface{}{profile.Skills, profile.Education, profile.Projects, profile.Certifications, profile.SocialLinks} {
		s, err := encode(v)
		if err != nil {
			return fmt.Errorf("encode student profile: %w", err)
		}
		cols[i] = s
	}

	query := `
		INSERT INTO student_profiles (
			user_id, title, bio, location, phone,
			skills, education, projects, certifications, social_links,
			resume_filename, resume_blob, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8::jsonb, $9::jsonb, $10::jsonb, $11, $12, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			title = EXCLUDED.title,
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			phone = EXCLUDED.phone,
			skills = EXCLUDED.skills,
			education = EXCLUDED.education,
			projects = EXCLUDED.projects,
			certifications = EXCLUDED.certifications,
			social_links = EXCLUDED.social_links,
			resume_filename = EXCLUDED.resume_filename,
			resume_blob = EXCLUDED.resume_blob,
			updated_at = NOW()
		RETURNING created_at, updated_at`

	return translate(r.db.QueryRow(ctx, query,
		profile.UserID, profile.Title, profile.Bio, profile.Location, profile.Phone,
		cols[0], cols[1], cols[2], cols[3], cols[4],
		profile.ResumeFilename, profile.ResumeBlob,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt))
}
