// Package server provides the HTTP API for tubechat.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/tubechat/tubechat/internal/chat"
	"github.com/tubechat/tubechat/internal/config"
)

// SessionFactory creates a fresh empty chat session. The server calls it once
// per created API session.
type SessionFactory func() *chat.Session

// managedSession pairs a chat session with the mutex that serializes access to
// it. The session itself does no internal locking.
type managedSession struct {
	mu      sync.Mutex
	session *chat.Session
}

// Server is the HTTP server for the tubechat API. Sessions live in an
// in-process map keyed by UUID and die with the process.
type Server struct {
	newSession SessionFactory
	config     *config.ServerConfig
	logger     *zap.Logger
	server     *http.Server

	mu       sync.RWMutex
	sessions map[string]*managedSession
}

// NewServer creates a server with the given session factory.
func NewServer(newSession SessionFactory, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		newSession: newSession,
		config:     cfg,
		logger:     logger,
		sessions:   make(map[string]*managedSession),
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/sessions", s.handleCreateSession)
	r.Post("/api/v1/sessions/{id}/chat", s.handleChat)
	r.Get("/api/v1/sessions/{id}/history", s.handleHistory)
	r.Get("/api/v1/sessions/{id}/quotes", s.handleQuotes)
	r.Delete("/api/v1/sessions/{id}", s.handleDeleteSession)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server and closes all sessions.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	for id, ms := range s.sessions {
		_ = ms.session.Close()
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) getSession(id string) (*managedSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ms, ok := s.sessions[id]
	return ms, ok
}
