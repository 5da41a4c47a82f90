// Package memory is an in-process implementation of the repository
// interfaces. It enforces the same unique constraints as the postgres
// schema and returns copies so callers never alias stored records.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"job-portal-backend/internal/domain"
)

type Store struct {
	mu sync.RWMutex

	users      map[string]domain.User
	usersEmail map[string]string // email -> id

	jobs     map[string]domain.Job
	jobOrder []string

	applications   map[string]domain.Application
	applicationKey map[string]string // job|student -> id
	appOrder       []string

	studentProfiles   map[string]domain.StudentProfile
	recruiterProfiles map[string]domain.RecruiterProfile
}

func NewStore() *Store {
	return &Store{
		users:             make(map[string]domain.User),
		usersEmail:        make(map[string]string),
		jobs:              make(map[string]domain.Job),
		applications:      make(map[string]domain.Application),
		applicationKey:    make(map[string]string),
		studentProfiles:   make(map[string]domain.StudentProfile),
		recruiterProfiles: make(map[string]domain.RecruiterProfile),
	}
}

// Ping always succeeds. It lets the store stand in for a database health check.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Users() domain.UserRepository                         { return userRepo{s} }
func (s *Store) Jobs() domain.JobRepository                           { return jobRepo{s} }
func (s *Store) Applications() domain.ApplicationRepository           { return applicationRepo{s} }
func (s *Store) StudentProfiles() domain.StudentProfileRepository     { return studentProfileRepo{s} }
func (s *Store) RecruiterProfiles() domain.RecruiterProfileRepository { return recruiterProfileRepo{s} }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func emailKey(email string) string {
	return strings.ToLower(email)
}

// --- users ---

type userRepo struct{ s *Store }

func cloneUser(u domain.User) domain.User {
	u.Skills = cloneStrings(u.Skills)
	if u.Company != nil {
		c := *u.Company
		u.Company = &c
	}
	return u
}

func (r userRepo) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.usersEmail[emailKey(user.Email)]; ok {
		return domain.ErrDuplicate
	}
	r.s.users[user.ID] = cloneUser(*user)
	r.s.usersEmail[emailKey(user.Email)] = user.ID
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.usersEmail[emailKey(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneUser(r.s.users[id])
	return &out, nil
}

func (r userRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r userRepo) UpdateContact(ctx context.Context, id, name, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	if owner, taken := r.s.usersEmail[emailKey(email)]; taken && owner != id {
		return domain.ErrDuplicate
	}
	delete(r.s.usersEmail, emailKey(u.Email))
	u.Name = name
	u.Email = email
	r.s.users[id] = u
	r.s.usersEmail[emailKey(email)] = id
	return nil
}

// --- jobs ---

type jobRepo struct{ s *Store }

func cloneJob(j domain.Job) domain.Job {
	j.SkillsRequired = cloneStrings(j.SkillsRequired)
	return j
}

func (r jobRepo) Create(ctx context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[job.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.jobs[job.ID] = cloneJob(*job)
	r.s.jobOrder = append(r.s.jobOrder, job.ID)
	return nil
}

func (r jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	j, ok := r.s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneJob(j)
	return &out, nil
}

func (r jobRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Job{}
	for _, id := range ids {
		if j, ok := r.s.jobs[id]; ok {
			out = append(out, cloneJob(j))
		}
	}
	return out, nil
}

func (r jobRepo) List(ctx context.Context) ([]domain.Job, error) {
	return r.filter(func(domain.Job) bool { return true }), nil
}

func (r jobRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.Job, error) {
	return r.filter(func(j domain.Job) bool { return j.RecruiterID == recruiterID }), nil
}

func (r jobRepo) filter(keep func(domain.Job) bool) []domain.Job {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Job{}
	for _, id := range r.s.jobOrder {
		if j := r.s.jobs[id]; keep(j) {
			out = append(out, cloneJob(j))
		}
	}
	return out
}

// --- applications ---

type applicationRepo struct{ s *Store }

func applicationPairKey(jobID, studentID string) string {
	return jobID + "|" + studentID
}

func (r applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := applicationPairKey(app.JobID, app.StudentID)
	if _, ok := r.s.applicationKey[key]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.applications[app.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.applications[app.ID] = *app
	r.s.applicationKey[key] = app.ID
	r.s.appOrder = append(r.s.appOrder, app.ID)
	return nil
}

func (r applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	app, ok := r.s.applications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &app, nil
}

func (r applicationRepo) CheckExists(ctx context.Context, jobID, studentID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.applicationKey[applicationPairKey(jobID, studentID)]
	return ok, nil
}

// ListByStudent returns newest first, like the postgres repository.
func (r applicationRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.Application, error) {
	out := r.filter(func(a domain.Application) bool { return a.StudentID == studentID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (r applicationRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	return r.filter(func(a domain.Application) bool { return a.JobID == jobID }), nil
}

func (r applicationRepo) UpdateStatus(ctx context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.applications[app.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = app.Status
	stored.UpdatedAt = app.UpdatedAt
	r.s.applications[app.ID] = stored
	return nil
}

func (r applicationRepo) filter(keep func(domain.Application) bool) []domain.Application {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.Application{}
	for _, id := range r.s.appOrder {
		if a := r.s.applications[id]; keep(a) {
			out = append(out, a)
		}
	}
	return out
}
