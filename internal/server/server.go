// Package server provides the HTTP API and single-page UI for the resume tailor.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/suggestions"
	"github.com/jonathan/resume-tailor/internal/summarize"
	"github.com/jonathan/resume-tailor/internal/types"
)

// sessionCookie names the cookie that carries the session ID.
const sessionCookie = "tailor_session"

// pruneInterval is how often idle sessions are dropped.
const pruneInterval = 10 * time.Minute

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	store          *session.Store
	llmClient      llm.Client
	fetcher        summarize.Fetcher
	maxUploadBytes int64
}

// Config holds server configuration
type Config struct {
	Port           int
	APIKey         string
	Model          string
	MaxUploadBytes int64
	SessionTTL     time.Duration
	UseBrowser     bool
}

// New creates a new server instance. A missing API key is not fatal: the UI
// still loads and resume upload works, while summarize and analyze report the
// missing key.
func New(cfg Config) (*Server, error) {
	var client llm.Client
	if cfg.APIKey == "" {
		log.Println("[server] API key not found: set GEMINI_API_KEY to enable job summaries and suggestions")
	} else {
		llmConfig := llm.DefaultConfig()
		if cfg.Model != "" {
			llmConfig = llmConfig.WithAllModels(cfg.Model)
		}
		c, err := llm.NewClient(context.Background(), llmConfig, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		client = c
	}

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.UseBrowser = cfg.UseBrowser

	return newServer(cfg, client, fetch.New(fetchOpts)), nil
}

// newServer wires the routes around an already constructed client and fetcher.
func newServer(cfg Config, client llm.Client, fetcher summarize.Fetcher) *Server {
	s := &Server{
		llmClient:      client,
		fetcher:        fetcher,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = ingestion.DefaultMaxUploadBytes
	}
	s.store = session.NewStore(s.newController, cfg.SessionTTL)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/resume", s.handleResume)
	mux.HandleFunc("POST /api/job", s.handleJob)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/analyze/stream", s.handleAnalyzeStream)

	s.handler = s.withLogging(s.withCORS(mux))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // model calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// newController builds the per-session controller. Without a client the
// controller has no extractor and reports the missing key on analyze.
func (s *Server) newController() *session.Controller {
	if s.llmClient == nil {
		return session.NewController(nil)
	}
	client := s.llmClient
	return session.NewController(func(ctx context.Context, resume *types.ResumeData, job *types.JobPostingData) ([]types.Suggestion, error) {
		return suggestions.Extract(ctx, client, resume, job)
	})
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	pruneCtx, stopPrune := context.WithCancel(context.Background())
	defer stopPrune()
	go s.pruneSessions(pruneCtx)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}
	log.Println("Server stopped")
	return nil
}

// pruneSessions drops idle sessions until ctx is cancelled.
func (s *Server) pruneSessions(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Prune(); n > 0 {
				log.Printf("[session] pruned %d idle session(s)", n)
			}
		}
	}
}

// controllerFor returns the caller's session controller, issuing a new
// session cookie when the request has none or an expired one.
func (s *Server) controllerFor(w http.ResponseWriter, r *http.Request) *session.Controller {
	var current string
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		current = cookie.Value
	}

	id, controller := s.store.Get(current)
	if id.String() != current {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id.String(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return controller
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"api_key_set": s.llmClient != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failWith logs err and writes the status and user-facing message it maps to.
func (s *Server) failWith(w http.ResponseWriter, scope string, err error) {
	status := HTTPStatus(err)
	log.Printf("[%s] %v", scope, err)
	s.errorResponse(w, status, UserMessage(err))
}
