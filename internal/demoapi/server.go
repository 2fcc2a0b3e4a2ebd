// Package demoapi is a small HTTP server that speaks the submission
// envelope. It backs the demo-server command and end-to-end tests.
package demoapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
)

// Default messages returned by the failure routes.
const (
	FailMessage       = "Kayıt işlemi şu anda yapılamıyor"
	LegacyFailMessage = "Sunucu isteği reddetti"
	maxBodyBytes      = 1 << 20
)

// Submission is one accepted request body.
type Submission struct {
	ID        string         `json:"id"`
	RequestID string         `json:"requestId,omitempty"`
	Values    map[string]any `json:"values"`
	At        time.Time      `json:"at"`
}

// Server records submissions in memory.
type Server struct {
	logger *zap.Logger
	router chi.Router
	now    func() time.Time

	mu          sync.Mutex
	submissions []Submission
}

// New builds the server and its routes:
//
//	GET  /healthz      liveness
//	POST /submit       accepts and echoes {"isSuccess":true,"data":{...}}
//	POST /fail         rejects with {"isSuccess":false,"error":{"message":...}}
//	POST /fail/legacy  rejects with {"isSuccess":false,"errorMessage":...}
//	GET  /submissions  lists accepted submissions
func New(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{logger: logger, now: time.Now}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/submit", s.handleSubmit)
	r.Post("/fail", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.decode(w, r); !ok {
			return
		}
		writeEnvelope(w, http.StatusUnprocessableEntity, orchestrator.Envelope{
			Error: &orchestrator.EnvelopeError{Message: FailMessage},
		})
	})
	r.Post("/fail/legacy", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.decode(w, r); !ok {
			return
		}
		writeEnvelope(w, http.StatusOK, orchestrator.Envelope{ErrorMessage: LegacyFailMessage})
	})
	r.Get("/submissions", func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusOK, orchestrator.Envelope{IsSuccess: true, Data: s.Submissions()})
	})

	s.router = r
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// Submissions returns a copy of the accepted submissions.
func (s *Server) Submissions() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]Submission, 0, len(s.submissions)), s.submissions...)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("demo server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("demo server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	values, ok := s.decode(w, r)
	if !ok {
		return
	}
	sub := Submission{
		ID:        uuid.NewString(),
		RequestID: middleware.GetReqID(r.Context()),
		Values:    values,
		At:        s.now().UTC(),
	}
	s.mu.Lock()
	s.submissions = append(s.submissions, sub)
	s.mu.Unlock()

	s.logger.Info("submission accepted", zap.String("id", sub.ID), zap.String("request_id", sub.RequestID), zap.Int("fields", len(values)))
	writeEnvelope(w, http.StatusOK, orchestrator.Envelope{IsSuccess: true, Data: sub})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var values map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&values); err != nil {
		s.logger.Warn("invalid request body", zap.Error(err))
		writeEnvelope(w, http.StatusBadRequest, orchestrator.Envelope{
			Error: &orchestrator.EnvelopeError{Message: "invalid JSON body"},
		})
		return nil, false
	}
	return values, true
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := s.now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Duration("duration", s.now().Sub(start)))
	})
}

func writeEnvelope(w http.ResponseWriter, status int, env orchestrator.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
