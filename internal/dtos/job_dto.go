package dtos

import (
	"strings"
	"time"

	"jobboard-api/internal/models"
	"jobboard-api/internal/query"
)

// JobRequest is the creation payload. The original system shipped two
// incompatible job shapes; the old field names are accepted here as deprecated
// aliases and folded into the canonical fields by Normalize.
type JobRequest struct {
	Title           string     `json:"title"`
	CompanyName     string     `json:"company_name"`
	CompanyLogoURL  string     `json:"company_logo_url"`
	Description     string     `json:"description"`
	EmploymentType  string     `json:"employment_type"`
	ExperienceLevel string     `json:"experience_level"`
	Category        string     `json:"category"`
	RequiredSkills  []string   `json:"required_skills"`
	Location        string     `json:"location"`
	SalaryMin       int        `json:"salary_min"`
	SalaryMax       int        `json:"salary_max"`
	Deadline        *time.Time `json:"deadline"`
	TestRequired    bool       `json:"test_required"`
	Openings        int        `json:"openings"`
	ContactEmail    string     `json:"contact_email"`

	// Deprecated aliases from the older job shape.
	LegacyTitle          string   `json:"jobTitle"`
	LegacyCompanyName    string   `json:"companyName"`
	LegacyCompanyLogo    string   `json:"companyLogo"`
	LegacyDescription    string   `json:"jobDescription"`
	LegacyEmploymentType string   `json:"jobType"`
	LegacyLevel          string   `json:"experienceLevel"`
	LegacySkills         []string `json:"requiredSkills"`
	LegacySalaryMin      int      `json:"salaryMin"`
	LegacySalaryMax      int      `json:"salaryMax"`
	LegacyTestRequired   bool     `json:"isTestRequired"`
	LegacyContactEmail   string   `json:"contactEmail"`
}

// Normalize resolves the deprecated aliases; canonical fields win when both
// are supplied.
func (r *JobRequest) Normalize() {
	if r.Title == "" {
		r.Title = r.LegacyTitle
	}
	if r.CompanyName == "" {
		r.CompanyName = r.LegacyCompanyName
	}
	if r.CompanyLogoURL == "" {
		r.CompanyLogoURL = r.LegacyCompanyLogo
	}
	if r.Description == "" {
		r.Description = r.LegacyDescription
	}
	if r.EmploymentType == "" {
		r.EmploymentType = r.LegacyEmploymentType
	}
	if r.ExperienceLevel == "" {
		r.ExperienceLevel = r.LegacyLevel
	}
	if len(r.RequiredSkills) == 0 {
		r.RequiredSkills = r.LegacySkills
	}
	if r.SalaryMin == 0 {
		r.SalaryMin = r.LegacySalaryMin
	}
	if r.SalaryMax == 0 {
		r.SalaryMax = r.LegacySalaryMax
	}
	if !r.TestRequired {
		r.TestRequired = r.LegacyTestRequired
	}
	if r.ContactEmail == "" {
		r.ContactEmail = r.LegacyContactEmail
	}
}

// MissingFields reports which required creation fields are absent after
// normalization.
func (r *JobRequest) MissingFields() []string {
	var missing []string
	required := []struct {
		name  string
		empty bool
	}{
		{"title", r.Title == ""},
		{"company_name", r.CompanyName == ""},
		{"description", r.Description == ""},
		{"employment_type", r.EmploymentType == ""},
		{"experience_level", r.ExperienceLevel == ""},
		{"category", r.Category == ""},
		{"location", r.Location == ""},
		{"contact_email", r.ContactEmail == ""},
		{"salary_min", r.SalaryMin < 0},
		{"salary_max", r.SalaryMax < 0},
	}
	for _, field := range required {
		if field.empty {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// ToModel builds the canonical job record. Caller sets RecruiterID.
func (r *JobRequest) ToModel() models.Job {
	return models.Job{
		Title:           strings.TrimSpace(r.Title),
		CompanyName:     strings.TrimSpace(r.CompanyName),
		CompanyLogoURL:  r.CompanyLogoURL,
		Description:     r.Description,
		EmploymentType:  r.EmploymentType,
		ExperienceLevel: r.ExperienceLevel,
		Category:        r.Category,
		RequiredSkills:  r.RequiredSkills,
		Location:        r.Location,
		SalaryMin:       r.SalaryMin,
		SalaryMax:       r.SalaryMax,
		Deadline:        r.Deadline,
		TestRequired:    r.TestRequired,
		Openings:        r.Openings,
		ContactEmail:    r.ContactEmail,
	}
}

// JobListResponse is the listing envelope: one window of jobs plus the
// pagination metadata for the full match set.
type JobListResponse struct {
	Jobs       []models.Job     `json:"jobs"`
	Pagination query.Pagination `json:"pagination"`
}

// CompanyResponse aggregates listings under one company name.
type CompanyResponse struct {
	Name          string       `json:"name"`
	LogoURL       string       `json:"logo_url,omitempty"`
	OpenPositions int          `json:"open_positions"`
	Jobs          []models.Job `json:"jobs"`
}
