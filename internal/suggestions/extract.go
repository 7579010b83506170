package suggestions

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
)

// MaxSuggestions is the number of suggestions the prompt asks for. It is not
// enforced on the parsed result.
const MaxSuggestions = 5

// Extract asks the model for tailoring suggestions and parses the response.
// On failure it returns a nil slice and an *APICallError.
func Extract(ctx context.Context, client llm.Client, resume *types.ResumeData, job *types.JobPostingData) ([]types.Suggestion, error) {
	if resume == nil {
		return nil, &InputError{Field: "resume"}
	}
	if job == nil {
		return nil, &InputError{Field: "job"}
	}

	prompt, err := BuildPrompt(resume, job)
	if err != nil {
		return nil, err
	}

	responseText, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate suggestions",
			Cause:   err,
		}
	}

	report := ParseWithReport(llm.NormalizeNewlines(responseText))
	if report.Incomplete > 0 {
		log.Printf("[suggestions] dropped %d incomplete Type/Message pair(s) in %d line(s)", report.Incomplete, report.Lines)
	}
	// Unknown labels are kept; the UI renders any label.
	if labels := unknownLabels(report.Suggestions); len(labels) > 0 {
		log.Printf("[suggestions] unexpected type label(s): %s", strings.Join(labels, ", "))
	}

	return report.Suggestions, nil
}

// unknownLabels returns the distinct labels that are neither keyword nor section,
// in order of first appearance.
func unknownLabels(list []types.Suggestion) []string {
	var labels []string
	seen := make(map[types.SuggestionType]bool)
	for _, s := range list {
		if s.Type.Known() || seen[s.Type] {
			continue
		}
		seen[s.Type] = true
		labels = append(labels, strconv.Quote(string(s.Type)))
	}
	return labels
}

// BuildPrompt embeds the resume text and the job title and description in the
// suggestion prompt template.
func BuildPrompt(resume *types.ResumeData, job *types.JobPostingData) (string, error) {
	return prompts.Render("suggestions.json", "tailor-resume", map[string]string{
		"ResumeText":     resume.Text,
		"JobTitle":       job.Title,
		"JobDescription": job.Description,
		"MaxSuggestions": strconv.Itoa(MaxSuggestions),
	})
}
