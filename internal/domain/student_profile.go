package domain

import (
	"context"
	"time"
)

const DefaultStudentTitle = "Aspiring Professional"

type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "Beginner"
	SkillLevelIntermediate SkillLevel = "Intermediate"
	SkillLevelExpert       SkillLevel = "Expert"
)

type Skill struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level" validate:"omitempty,oneof=Beginner Intermediate Expert"`
}

type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
	Grade  string `json:"grade"`
}

type Project struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Link  string `json:"link"`
}

type Certification struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

type SocialLinks struct {
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

// StudentProfile is one-to-one with a student identity. The resume is an
// inline attachment (base64) rather than a reference to external storage.
type StudentProfile struct {
	UserID         string          `json:"user_id"`
	Title          string          `json:"title"`
	Bio            string          `json:"bio"`
	Location       string          `json:"location"`
	Phone          string          `json:"phone"`
	Skills         []Skill         `json:"skills" validate:"dive"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	SocialLinks    SocialLinks     `json:"social_links"`
	ResumeFilename string          `json:"resume_filename"`
	ResumeBlob     string          `json:"resume_blob"`
	CreatedAt      *time.Time      `json:"created_at,omitempty"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}

// DefaultStudentProfile is returned, unsaved, to students who never saved one.
func DefaultStudentProfile(userID string) *StudentProfile {
	p := &StudentProfile{
		UserID: userID,
		Title:  DefaultStudentTitle,
	}
	p.Normalize()
	return p
}

// Normalize replaces nil lists with empty ones and fills default skill levels.
func (p *StudentProfile) Normalize() {
	if p.Skills == nil {
		p.Skills = []Skill{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	if p.Certifications == nil {
		p.Certifications = []Certification{}
	}
	for i := range p.Skills {
		if p.Skills[i].Level == "" {
			p.Skills[i].Level = SkillLevelIntermediate
		}
	}
}

type StudentProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*StudentProfile, error)
	GetByUserIDs(ctx context.Context, userIDs []string) ([]StudentProfile, error)
	// Upsert replaces the profile keyed by user_id, creating it on first call.
	Upsert(ctx context.Context, profile *StudentProfile) error
}

// AttachmentValidator checks an inline encoded file.
type AttachmentValidator interface {
	Validate(filename, encoded string) error
}

type StudentProfileUsecase interface {
	GetProfile(ctx context.Context, identity Identity) (*StudentProfile, error)
	UpsertProfile(ctx context.Context, identity Identity, profile *StudentProfile) (*StudentProfile, error)
}
