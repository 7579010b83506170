package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/summarize"
	"github.com/jonathan/resume-tailor/internal/types"
)

//go:embed static/index.html
var indexHTML []byte

// multipartOverhead is the allowance for form boundaries and headers on top of
// the file size limit.
const multipartOverhead = 1 << 20

// handleIndex serves the single-page UI
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		log.Printf("Error writing index page: %v", err)
	}
}

// handleState returns the caller's session snapshot
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.controllerFor(w, r).Snapshot()
	s.jsonResponse(w, http.StatusOK, s.stateResponse(snap))
}

func (s *Server) stateResponse(snap session.Snapshot) types.StateResponse {
	resp := types.StateResponse{
		Job:         snap.Job,
		HasResume:   snap.Resume != nil,
		Suggestions: snap.Suggestions,
		Loading:     snap.Loading,
		CanAnalyze:  snap.CanAnalyze,
		APIKeySet:   s.llmClient != nil,
	}
	if snap.Resume != nil {
		resp.ResumePreview = snap.Resume.Preview()
	}
	return resp
}

// handleResume accepts a multipart PDF upload in the "file" field
func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	controller := s.controllerFor(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if !errors.As(err, &tooLarge) {
			err = &ErrValidation{Message: "expected a multipart form upload: " + err.Error()}
		}
		s.failWith(w, "ingest", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.failWith(w, "ingest", &ErrValidation{Message: "a resume file is required"})
		return
	}
	defer file.Close() //nolint:errcheck

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = ingestion.DetectContentType(header.Filename, nil)
	}

	result, err := ingestion.IngestResume(r.Context(), ingestion.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Body:        file,
	}, s.maxUploadBytes)
	if err != nil {
		s.failWith(w, "ingest", err)
		return
	}

	controller.SetResume(result.Resume)
	log.Printf("[ingest] %s: %d pages, %d characters", result.Metadata.Filename, result.Metadata.Pages, result.Metadata.Characters)

	s.jsonResponse(w, http.StatusOK, types.ResumeResponse{
		Filename:   result.Metadata.Filename,
		Characters: result.Metadata.Characters,
		Preview:    result.Resume.Preview(),
	})
}

// handleJob summarizes pasted job text or a job posting URL
func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	controller := s.controllerFor(w, r)

	var req types.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		log.Printf("[summarize] invalid job request: %v", err)
		s.failWith(w, "summarize", &ErrValidation{Message: "provide either a job description or a job posting URL"})
		return
	}
	if s.llmClient == nil {
		s.failWith(w, "summarize", session.ErrMissingAPIKey)
		return
	}

	var (
		job *types.JobPostingData
		err error
	)
	if req.URL != "" {
		job, err = summarize.SummarizeURL(r.Context(), s.llmClient, s.fetcher, req.URL)
	} else {
		job, err = summarize.Summarize(r.Context(), s.llmClient, req.Description)
	}
	if err != nil {
		s.failWith(w, "summarize", err)
		return
	}

	controller.SetJob(job)
	s.jsonResponse(w, http.StatusOK, job)
}

// handleAnalyze replaces the session's suggestions with a fresh extraction
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	controller := s.controllerFor(w, r)

	result, err := controller.Analyze(r.Context())
	if err != nil {
		s.failWith(w, "analyze", err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.AnalyzeResponse{Suggestions: result})
}

// handleAnalyzeStream runs an analysis and streams the suggestions via SSE
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	controller := s.controllerFor(w, r)

	// Precondition failures are plain JSON errors, before the stream opens.
	if s.llmClient == nil {
		s.failWith(w, "analyze", session.ErrMissingAPIKey)
		return
	}
	if !controller.CanAnalyze() {
		s.failWith(w, "analyze", session.ErrNotReady)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	sse.WriteStatus("Analyzing...")
	result, err := controller.Analyze(r.Context())
	if err != nil {
		log.Printf("[analyze] %v", err)
		sse.WriteError(UserMessage(err))
		return
	}

	for _, suggestion := range result {
		if err := sse.WriteEvent(eventSuggestion, suggestion); err != nil {
			log.Printf("Error writing SSE event: %v", err)
			return
		}
	}
	sse.WriteComplete(len(result))
}
