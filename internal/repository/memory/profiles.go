package memory

import (
	"context"
	"time"

	"job-portal-backend/internal/domain"
)

type studentProfileRepo struct{ s *Store }

func cloneStudentProfile(p domain.StudentProfile) domain.StudentProfile {
	p.Skills = append([]domain.Skill(nil), p.Skills...)
	p.Education = append([]domain.Education(nil), p.Education...)
	p.Projects = append([]domain.Project(nil), p.Projects...)
	p.Certifications = append([]domain.Certification(nil), p.Certifications...)
	p.Normalize()
	if p.CreatedAt != nil {
		t := *p.CreatedAt
		p.CreatedAt = &t
	}
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		p.UpdatedAt = &t
	}
	return p
}

func (r studentProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.StudentProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.studentProfiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneStudentProfile(p)
	return &out, nil
}

func (r studentProfileRepo) GetByUserIDs(ctx context.Context, userIDs []string) ([]domain.StudentProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.StudentProfile{}
	for _, id := range userIDs {
		if p, ok := r.s.studentProfiles[id]; ok {
			out = append(out, cloneStudentProfile(p))
		}
	}
	return out, nil
}

func (r studentProfileRepo) Upsert(ctx context.Context, profile *domain.StudentProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()
	created := now
	if existing, ok := r.s.studentProfiles[profile.UserID]; ok && existing.CreatedAt != nil {
		created = *existing.CreatedAt
	}
	profile.CreatedAt = &created
	profile.UpdatedAt = &now
	r.s.studentProfiles[profile.UserID] = cloneStudentProfile(*profile)
	return nil
}

type recruiterProfileRepo struct{ s *Store }

func cloneRecruiterProfile(p domain.RecruiterProfile) domain.RecruiterProfile {
	if p.RegistrationID != nil {
		v := *p.RegistrationID
		p.RegistrationID = &v
	}
	return p
}

func (r recruiterProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.RecruiterProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.recruiterProfiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneRecruiterProfile(p)
	return &out, nil
}

func (r recruiterProfileRepo) Create(ctx context.Context, profile *domain.RecruiterProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.recruiterProfiles[profile.UserID]; ok {
		return domain.ErrDuplicate
	}
	r.s.recruiterProfiles[profile.UserID] = cloneRecruiterProfile(*profile)
	return nil
}

// Update leaves verification state and the active flag as stored, matching
// the postgres repository.
func (r recruiterProfileRepo) Update(ctx context.Context, profile *domain.RecruiterProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.recruiterProfiles[profile.UserID]
	if !ok {
		return domain.ErrNotFound
	}
	if !stored.IsActive {
		return domain.ErrInactive
	}
	next := cloneRecruiterProfile(*profile)
	next.IsVerified = stored.IsVerified
	next.VerificationStatus = stored.VerificationStatus
	next.IsActive = stored.IsActive
	next.CreatedAt = stored.CreatedAt
	r.s.recruiterProfiles[profile.UserID] = next
	return nil
}

func (r recruiterProfileRepo) Deactivate(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.recruiterProfiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.IsActive {
		stored.IsActive = false
		stored.UpdatedAt = time.Now().UTC()
		r.s.recruiterProfiles[userID] = stored
	}
	return nil
}
