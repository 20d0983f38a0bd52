package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	RoleJobSeeker = "job_seeker"
	RoleRecruiter = "recruiter"
)

// User mirrors an account at the external identity provider. Rows are created
// either by provider lifecycle webhooks or provisioned on first job post.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Subject identifier assigned by the identity provider.
	ClerkID string `gorm:"uniqueIndex;not null" json:"clerk_id"`
	Email   string `gorm:"index" json:"email"`
	Name    string `json:"name"`
	Role    string `gorm:"default:'job_seeker'" json:"role"`
}

// Job is the canonical listing record. The original data had two divergent
// job shapes; this is the superset, with old field names accepted as aliases
// at the DTO boundary.
type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title           string         `gorm:"not null" json:"title"`
	CompanyName     string         `gorm:"not null;index" json:"company_name"`
	CompanyLogoURL  string         `json:"company_logo_url,omitempty"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	EmploymentType  string         `gorm:"not null;index" json:"employment_type"`
	ExperienceLevel string         `gorm:"not null;index" json:"experience_level"`
	Category        string         `gorm:"not null;index" json:"category"`
	RequiredSkills  pq.StringArray `gorm:"type:text[]" json:"required_skills"`
	Location        string         `gorm:"not null" json:"location"`
	SalaryMin       int            `gorm:"not null" json:"salary_min"`
	SalaryMax       int            `gorm:"not null" json:"salary_max"`
	Deadline        *time.Time     `json:"deadline,omitempty"`
	TestRequired    bool           `gorm:"default:false" json:"test_required"`
	Openings        int            `json:"openings,omitempty"`
	ContactEmail    string         `gorm:"not null" json:"contact_email"`

	RecruiterID uint `gorm:"index" json:"recruiter_id"`
	Recruiter   User `json:"recruiter,omitempty"`

	// Best-effort display counter, incremented on detail fetch.
	ViewCount int `gorm:"default:0" json:"view_count"`

	Applications []Application `json:"applications,omitempty"`
}

const (
	ApplicationPending  = "pending"
	ApplicationReviewed = "reviewed"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

type Application struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	JobID uint `gorm:"index;not null" json:"job_id"`
	Job   Job  `json:"job,omitempty"`

	ApplicantID uint `gorm:"index;not null" json:"applicant_id"`
	Applicant   User `json:"applicant,omitempty"`

	CoverLetter string    `gorm:"type:text" json:"cover_letter,omitempty"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	Status      string    `gorm:"default:'pending'" json:"status"`
	Score       *int      `json:"score,omitempty"`
	AppliedAt   time.Time `gorm:"autoCreateTime" json:"applied_at"`
}
