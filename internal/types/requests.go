package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// JobRequest is the body of POST /api/job. Exactly one of Description or URL is set.
type JobRequest struct {
	Description string `json:"description,omitempty" validate:"required_without=URL,excluded_with=URL"`
	URL         string `json:"url,omitempty" validate:"required_without=Description,omitempty,http_url"`
}

// Normalize trims surrounding whitespace so blank input counts as missing.
func (r *JobRequest) Normalize() {
	r.Description = strings.TrimSpace(r.Description)
	r.URL = strings.TrimSpace(r.URL)
}

// Validate validates the JobRequest using the validator.
func (r *JobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// StateResponse is the session snapshot returned by GET /api/state.
type StateResponse struct {
	Job           *JobPostingData `json:"job,omitempty"`
	ResumePreview string          `json:"resume_preview,omitempty"`
	HasResume     bool            `json:"has_resume"`
	Suggestions   []Suggestion    `json:"suggestions"`
	Loading       bool            `json:"loading"`
	CanAnalyze    bool            `json:"can_analyze"`
	APIKeySet     bool            `json:"api_key_set"`
}

// AnalyzeResponse is returned by POST /api/analyze.
type AnalyzeResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// ResumeResponse is returned by POST /api/resume.
type ResumeResponse struct {
	Filename   string `json:"filename"`
	Characters int    `json:"characters"`
	Preview    string `json:"preview"`
}
