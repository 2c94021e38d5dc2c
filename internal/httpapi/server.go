package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/nethealth/internal/domain"
	"github.com/hamed0406/nethealth/internal/history"
	"github.com/hamed0406/nethealth/internal/httpapi/middleware"
	"github.com/hamed0406/nethealth/internal/scheduler"
)

// Server exposes the latest verdict and a trigger endpoint. It doubles as a
// publish.Sink so the background scheduler can keep it current.
type Server struct {
	Logger  *zap.Logger
	Runner  scheduler.HealthRunner
	History *history.Tracker

	AdminAPIKeys []string
	TriggerRPM   int
	TriggerBurst int

	mu   sync.RWMutex
	last *domain.CheckResult
}

func NewServer(l *zap.Logger, runner scheduler.HealthRunner, tracker *history.Tracker) *Server {
	return &Server{Logger: l, Runner: runner, History: tracker}
}

// Publish stores the verdict as the latest one. Implements publish.Sink.
func (s *Server) Publish(ctx context.Context, result domain.CheckResult) error {
	s.mu.Lock()
	s.last = &result
	s.mu.Unlock()
	return nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/health/latest", s.handleLatest)
	r.Get("/api/health/status", s.handleStatus)
	r.Get("/api/health/history", s.handleHistory)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(s.AdminAPIKeys))
		r.Use(middleware.RateLimit(s.TriggerRPM, s.TriggerBurst))
		r.Post("/api/health/check", s.handleCheck)
	})

	return r
}

// handleCheck runs one health check synchronously and returns the verdict.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	result := s.Runner.Run(r.Context())
	_ = s.Publish(r.Context(), result)

	s.Logger.Info("check_triggered",
		zap.Bool("status", result.Status),
		zap.Float64("confidence", result.Confidence),
		zap.Int("passed_checks", result.PassedChecks),
	)

	writeJSON(w, result)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()
	if last == nil {
		http.Error(w, "no check has run yet", http.StatusNotFound)
		return
	}
	writeJSON(w, last)
}

// handleStatus reduces the latest verdict to the binary state a host
// platform would surface.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()
	if last == nil {
		http.Error(w, "no check has run yet", http.StatusNotFound)
		return
	}
	state := "offline"
	if last.Status {
		state = "online"
	}
	writeJSON(w, map[string]any{
		"state":      state,
		"confidence": last.Confidence,
		"checked_at": last.Timestamp,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}
	window, err := s.History.Window(r.Context())
	if err != nil {
		s.Logger.Warn("history_read_error", zap.Error(err))
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"passed_checks": window})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
