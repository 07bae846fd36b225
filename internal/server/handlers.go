package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tubechat/tubechat/internal/chat"
	"github.com/tubechat/tubechat/internal/models"
	"github.com/tubechat/tubechat/internal/youtube"
)

type createSessionRequest struct {
	URL string `json:"url"`
}

type createSessionResponse struct {
	SessionID string        `json:"session_id"`
	Video     *models.Video `json:"video"`
	Chunks    int           `json:"chunks"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		s.respondError(w, http.StatusBadRequest, "url is required")
		return
	}
	s.logger.Debug("create session request", zap.String("url", req.URL))

	session := s.newSession()
	if err := session.LoadVideo(r.Context(), req.URL); err != nil {
		switch {
		case errors.Is(err, chat.ErrInvalidURL):
			s.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, youtube.ErrTranscriptUnavailable):
			s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			s.logger.Error("video load failed", zap.String("url", req.URL), zap.Error(err))
			s.respondError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &managedSession{session: session}
	s.mu.Unlock()

	s.respondJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: id,
		Video:     session.Video(),
		Chunks:    session.ChunkCount(),
	})
}

type chatRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ms, ok := s.getSession(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		s.respondError(w, http.StatusBadRequest, "question is required")
		return
	}
	s.logger.Debug("chat request", zap.String("session_id", id))

	ms.mu.Lock()
	answer, err := ms.session.Answer(r.Context(), req.Question)
	ms.mu.Unlock()
	if err != nil {
		if errors.Is(err, chat.ErrIndexNotReady) {
			s.respondError(w, http.StatusConflict, err.Error())
			return
		}
		s.logger.Error("answer failed", zap.String("session_id", id), zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ms, ok := s.getSession(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	ms.mu.Lock()
	history := ms.session.History()
	ms.mu.Unlock()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ms, ok := s.getSession(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	ms.mu.Lock()
	hits, err := ms.session.Quotes(r.Context(), q, 10)
	ms.mu.Unlock()
	if err != nil {
		s.logger.Error("quote search failed", zap.String("session_id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"quotes": hits})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	ms, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	_ = ms.session.Close()
	s.logger.Debug("session deleted", zap.String("session_id", id))
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	count := len(s.sessions)
	s.mu.RUnlock()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": count,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
