// Package ui provides the HTTP shell around the profiling and insight
// engines: upload, profile retrieval, streamed insight generation and report
// downloads. The shell holds no analysis logic of its own.
package ui

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"goeda/ai"
	"goeda/domain/core"
	"goeda/domain/dataset"
	"goeda/internal/config"
	"goeda/internal/profiling"
)

// Session holds the loaded dataset and its profile for the current upload.
// It is created on successful load and replaced wholly on the next load,
// never partially mutated.
type Session struct {
	ID       core.SessionID     `json:"id"`
	Filename string             `json:"filename"`
	Table    *dataset.Table     `json:"-"`
	Report   *profiling.Report  `json:"report"`
	LoadedAt time.Time          `json:"loaded_at"`
}

// NewSession builds a session for a freshly loaded dataset
func NewSession(filename string, table *dataset.Table) *Session {
	return &Session{
		ID:       core.SessionID(core.NewID()),
		Filename: filename,
		Table:    table,
		Report:   profiling.Profile(table),
		LoadedAt: time.Now(),
	}
}

// Server represents the web server for the EDA application
type Server struct {
	router   *chi.Mux
	config   *config.Config
	insights *ai.InsightService

	sessionMu sync.RWMutex
	session   *Session
}

// NewServer creates a new web server instance
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		config:   cfg,
		insights: ai.NewInsightService(cfg.AI),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/api/upload", s.handleUpload)
	r.Get("/api/profile", s.handleProfile)
	r.Get("/api/insights/{type}", s.handleInsightStream)
	r.Get("/api/export/{format}", s.handleExport)
	r.Get("/healthz", s.handleHealth)

	s.router = r
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server on the given address
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// setSession replaces the whole session under lock
func (s *Server) setSession(session *Session) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	s.session = session
}

// currentSession returns the active session, or nil before any load
func (s *Server) currentSession() *Session {
	s.sessionMu.RLock()
	defer s.sessionMu.RUnlock()
	return s.session
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
