package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/regtext/lexindex/internal/config"
)

// Server serves a finished run's results for inspection: the run summary,
// the result table, and the per-phrase audit matrices. Read-only — it
// never recomputes anything.
type Server struct {
	router chi.Router
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		log: log,
		cfg: cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		// Auth is optional for a local results browser; set
		// REPORTD_API_KEY to require a bearer token.
		if s.cfg.ReportAPIKey != "" {
			r.Use(AuthMiddleware(s.cfg.ReportAPIKey))
		}

		r.Get("/api/run", s.handleRun)
		r.Get("/api/results", s.handleResults)
		r.Get("/api/matrix/{lexicon}", s.handleMatrix)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
