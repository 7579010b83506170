// Package session holds the transient per-user state of the tailoring flow: the
// summarized job, the extracted resume and the current suggestions.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/jonathan/resume-tailor/internal/types"
)

var (
	// ErrNotReady is returned when analyze runs without both a resume and a job
	ErrNotReady = errors.New("please upload a resume and enter a job description")
	// ErrMissingAPIKey is returned when no generative-language API key is configured
	ErrMissingAPIKey = errors.New("API key not found")
)

// ExtractFunc produces suggestions for a resume and job.
type ExtractFunc func(ctx context.Context, resume *types.ResumeData, job *types.JobPostingData) ([]types.Suggestion, error)

// Controller owns one session's state. Concurrent analyze calls are not fenced:
// whichever completes last determines the suggestion list.
type Controller struct {
	mu          sync.Mutex
	job         *types.JobPostingData
	resume      *types.ResumeData
	suggestions []types.Suggestion
	loading     bool

	extract ExtractFunc
}

// NewController creates a Controller. A nil extract means no API key is configured
// and every analyze fails with ErrMissingAPIKey.
func NewController(extract ExtractFunc) *Controller {
	return &Controller{
		suggestions: []types.Suggestion{},
		extract:     extract,
	}
}

// SetJob replaces the job posting.
func (c *Controller) SetJob(job *types.JobPostingData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.job = job
}

// SetResume replaces the resume.
func (c *Controller) SetResume(resume *types.ResumeData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resume = resume
}

// CanAnalyze reports whether both a resume and a job are present.
func (c *Controller) CanAnalyze() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canAnalyzeLocked()
}

func (c *Controller) canAnalyzeLocked() bool {
	return c.job != nil && c.resume != nil
}

// Snapshot is a copy of the session state.
type Snapshot struct {
	Job         *types.JobPostingData
	Resume      *types.ResumeData
	Suggestions []types.Suggestion
	Loading     bool
	CanAnalyze  bool
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Job:         c.job,
		Resume:      c.resume,
		Suggestions: append([]types.Suggestion{}, c.suggestions...),
		Loading:     c.loading,
		CanAnalyze:  c.canAnalyzeLocked(),
	}
}

// Analyze replaces the suggestion list with a fresh extraction. The list is
// cleared before the call and stays empty on failure; loading is reset however
// the call ends.
func (c *Controller) Analyze(ctx context.Context) ([]types.Suggestion, error) {
	if c.extract == nil {
		return nil, ErrMissingAPIKey
	}

	c.mu.Lock()
	if !c.canAnalyzeLocked() {
		c.mu.Unlock()
		return nil, ErrNotReady
	}
	resume, job := c.resume, c.job
	c.loading = true
	c.suggestions = []types.Suggestion{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	result, err := c.extract(ctx, resume, job)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []types.Suggestion{}
	}

	c.mu.Lock()
	c.suggestions = result
	c.mu.Unlock()

	return append([]types.Suggestion{}, result...), nil
}
