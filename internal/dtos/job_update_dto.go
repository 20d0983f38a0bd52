package dtos

import (
	"time"

	"github.com/lib/pq"
)

// JobUpdateRequest is the partial-update payload. Every field is a pointer so
// that a supplied zero value (empty string, 0, false) is applied rather than
// silently skipped; a nil field was simply not sent. The deprecated aliases
// from the older job shape are accepted here too.
type JobUpdateRequest struct {
	Title           *string    `json:"title"`
	CompanyName     *string    `json:"company_name"`
	CompanyLogoURL  *string    `json:"company_logo_url"`
	Description     *string    `json:"description"`
	EmploymentType  *string    `json:"employment_type"`
	ExperienceLevel *string    `json:"experience_level"`
	Category        *string    `json:"category"`
	RequiredSkills  *[]string  `json:"required_skills"`
	Location        *string    `json:"location"`
	SalaryMin       *int       `json:"salary_min"`
	SalaryMax       *int       `json:"salary_max"`
	Deadline        *time.Time `json:"deadline"`
	TestRequired    *bool      `json:"test_required"`
	Openings        *int       `json:"openings"`
	ContactEmail    *string    `json:"contact_email"`

	// Deprecated aliases from the older job shape.
	LegacyTitle          *string   `json:"jobTitle"`
	LegacyCompanyName    *string   `json:"companyName"`
	LegacyCompanyLogo    *string   `json:"companyLogo"`
	LegacyDescription    *string   `json:"jobDescription"`
	LegacyEmploymentType *string   `json:"jobType"`
	LegacyLevel          *string   `json:"experienceLevel"`
	LegacySkills         *[]string `json:"requiredSkills"`
	LegacySalaryMin      *int      `json:"salaryMin"`
	LegacySalaryMax      *int      `json:"salaryMax"`
	LegacyTestRequired   *bool     `json:"isTestRequired"`
	LegacyContactEmail   *string   `json:"contactEmail"`
}

// Normalize resolves the deprecated aliases; canonical fields win when both
// are supplied.
func (r *JobUpdateRequest) Normalize() {
	if r.Title == nil {
		r.Title = r.LegacyTitle
	}
	if r.CompanyName == nil {
		r.CompanyName = r.LegacyCompanyName
	}
	if r.CompanyLogoURL == nil {
		r.CompanyLogoURL = r.LegacyCompanyLogo
	}
	if r.Description == nil {
		r.Description = r.LegacyDescription
	}
	if r.EmploymentType == nil {
		r.EmploymentType = r.LegacyEmploymentType
	}
	if r.ExperienceLevel == nil {
		r.ExperienceLevel = r.LegacyLevel
	}
	if r.RequiredSkills == nil {
		r.RequiredSkills = r.LegacySkills
	}
	if r.SalaryMin == nil {
		r.SalaryMin = r.LegacySalaryMin
	}
	if r.SalaryMax == nil {
		r.SalaryMax = r.LegacySalaryMax
	}
	if r.TestRequired == nil {
		r.TestRequired = r.LegacyTestRequired
	}
	if r.ContactEmail == nil {
		r.ContactEmail = r.LegacyContactEmail
	}
}

// Changes builds the column assignments for the supplied fields only.
func (r *JobUpdateRequest) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.CompanyName != nil {
		changes["company_name"] = *r.CompanyName
	}
	if r.CompanyLogoURL != nil {
		changes["company_logo_url"] = *r.CompanyLogoURL
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.EmploymentType != nil {
		changes["employment_type"] = *r.EmploymentType
	}
	if r.ExperienceLevel != nil {
		changes["experience_level"] = *r.ExperienceLevel
	}
	if r.Category != nil {
		changes["category"] = *r.Category
	}
	if r.RequiredSkills != nil {
		changes["required_skills"] = pq.StringArray(*r.RequiredSkills)
	}
	if r.Location != nil {
		changes["location"] = *r.Location
	}
	if r.SalaryMin != nil {
		changes["salary_min"] = *r.SalaryMin
	}
	if r.SalaryMax != nil {
		changes["salary_max"] = *r.SalaryMax
	}
	if r.Deadline != nil {
		changes["deadline"] = *r.Deadline
	}
	if r.TestRequired != nil {
		changes["test_required"] = *r.TestRequired
	}
	if r.Openings != nil {
		changes["openings"] = *r.Openings
	}
	if r.ContactEmail != nil {
		changes["contact_email"] = *r.ContactEmail
	}
	return changes
}
