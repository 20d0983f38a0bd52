package dtos

// ApplicationRequest is the apply payload. "resume" is the deprecated alias
// from the older application shape.
type ApplicationRequest struct {
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url"`

	LegacyCoverLetter string `json:"coverLetter"`
	LegacyResume      string `json:"resume"`
	LegacyResumeURL   string `json:"resumeURL"`
}

func (r *ApplicationRequest) Normalize() {
	if r.CoverLetter == "" {
		r.CoverLetter = r.LegacyCoverLetter
	}
	if r.ResumeURL == "" {
		r.ResumeURL = r.LegacyResumeURL
	}
	if r.ResumeURL == "" {
		r.ResumeURL = r.LegacyResume
	}
}
