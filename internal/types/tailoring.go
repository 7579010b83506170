// Package types provides type definitions for the data that flows between ingestion,
// summarization, suggestion extraction and the HTTP API.
package types

// JobDescriptionTitle is the fixed title given to every summarized job posting.
const JobDescriptionTitle = "Job Description"

// ResumePreviewLength is the number of resume characters exposed in previews.
const ResumePreviewLength = 500

// JobPostingData is a summarized job posting. Description always holds model output,
// never the raw text the user entered.
type JobPostingData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ResumeData holds the full text extracted from an uploaded resume.
type ResumeData struct {
	Text string `json:"text"`
}

// Preview returns the first ResumePreviewLength characters of the resume text.
func (r *ResumeData) Preview() string {
	if r == nil {
		return ""
	}
	runes := []rune(r.Text)
	if len(runes) <= ResumePreviewLength {
		return r.Text
	}
	return string(runes[:ResumePreviewLength]) + "..."
}

// SuggestionType labels what a suggestion targets.
type SuggestionType string

const (
	// SuggestionKeyword is a keyword to add or change
	SuggestionKeyword SuggestionType = "keyword"
	// SuggestionSection is a section to add or modify
	SuggestionSection SuggestionType = "section"
)

// Known reports whether t is one of the labels the prompt asks for.
// Other labels are kept as returned by the model.
func (t SuggestionType) Known() bool {
	return t == SuggestionKeyword || t == SuggestionSection
}

// Suggestion is one recommendation parsed from the model response.
type Suggestion struct {
	Type    SuggestionType `json:"type"`
	Message string         `json:"message"`
}
