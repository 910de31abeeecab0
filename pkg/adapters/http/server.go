package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/adrift"
	"github.com/aretw0/adrift/internal/logging"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/ports"
	"github.com/aretw0/adrift/pkg/runner"
	"github.com/aretw0/adrift/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SessionResponse is the body of POST /sessions.
type SessionResponse struct {
	SessionID string         `json:"session_id"`
	Events    []runner.Event `json:"events"`
}

// InputRequest is the body of POST /sessions/{id}/input.
type InputRequest struct {
	Input *string `json:"input"`
}

// InputResponse is the body returned after a line of input was handled.
type InputResponse struct {
	Events []runner.Event `json:"events"`
	Status domain.Status  `json:"status"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server exposes session.Manager over HTTP.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewFactory returns a session.Factory whose sessions render into a runner.Recorder.
// opts are applied to every orchestrator, after the session ID.
func NewFactory(completer ports.Completer, opts ...session.Option) session.Factory {
	return func(_ context.Context, sessionID string) (*session.Orchestrator, error) {
		all := append([]session.Option{session.WithID(sessionID)}, opts...)
		return session.New(completer, runner.NewRecorder(), all...)
	}
}

// NewHandler creates the HTTP handler for sessions.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	server := &Server{
		Sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams = NewStreamManager(server.logger)
	sessions.OnRemove(server.Streams.Close)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", server.GetHealth)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", server.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", server.GetSession)
			r.Delete("/", server.DeleteSession)
			r.Post("/input", server.SendInput)
			r.Get("/events", server.SubscribeEvents)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	orch, err := s.Sessions.Create(r.Context())
	if err != nil {
		s.logger.Error("CreateSession failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	s.logger.Info("Session created", "session_id", orch.ID())
	writeJSON(w, http.StatusCreated, SessionResponse{
		SessionID: orch.ID(),
		Events:    s.drain(orch),
	})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	orch, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, orch.Status(r.Context()))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.logger.Info("Session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// SendInput handles POST /sessions/{id}/input.
func (s *Server) SendInput(w http.ResponseWriter, r *http.Request) {
	orch, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var body InputRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Input == nil {
		s.logger.Warn("SendInput: Invalid request body", "err", err)
		writeError(w, http.StatusBadRequest, "invalid request body: expected {\"input\": \"...\"}")
		return
	}

	input, err := runner.SanitizeInput(*body.Input)
	if err != nil {
		s.logger.Warn("SendInput: Input rejected", "err", err, "size", len(*body.Input))
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid input: %v", err))
		return
	}

	// Drain while the guard is held so a concurrent input cannot take these events.
	var events []runner.Event
	err = orch.HandleThen(r.Context(), input, func() {
		events = s.drain(orch)
	})
	switch {
	case errors.Is(err, domain.ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, context.Canceled):
		s.logger.Debug("SendInput: client went away", "session_id", orch.ID())
		return
	case err != nil:
		s.logger.Error("SendInput failed", "session_id", orch.ID(), "err", err)
		writeError(w, http.StatusInternalServerError, "failed to handle input")
		return
	}

	writeJSON(w, http.StatusOK, InputResponse{
		Events: events,
		Status: orch.Status(r.Context()),
	})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  strings.TrimSpace(adrift.Version),
		"sessions": s.Sessions.Len(),
	})
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE).
// Every batch of events produced by an input is sent as one data message.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	orch, ok := s.lookup(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(orch.ID())
	defer cancel()
	s.logger.Info("SSE: Subscribing to session events", "session_id", orch.ID())

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", orch.ID())
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Orchestrator, bool) {
	orch, err := s.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return orch, true
}

// drain collects the events rendered since the last request and forwards them to SSE subscribers.
func (s *Server) drain(orch *session.Orchestrator) []runner.Event {
	rec, ok := orch.Surface().(*runner.Recorder)
	if !ok {
		return []runner.Event{}
	}
	events := rec.Drain()
	if len(events) > 0 {
		if payload, err := json.Marshal(events); err == nil {
			s.Streams.Broadcast(orch.ID(), string(payload))
		}
	}
	return events
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
