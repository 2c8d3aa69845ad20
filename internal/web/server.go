// Package web exposes the command processor over HTTP: a JSON API for
// commands and queries plus a websocket endpoint for the live update stream.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"horizon-cli/internal/app"
	"horizon-cli/internal/model"
	"horizon-cli/internal/mutate"
	"horizon-cli/internal/relay"
)

// Assistant is the upstream chat boundary. Nil disables /api/assist.
type Assistant interface {
	Reply(ctx context.Context, messages []relay.Message) (string, error)
}

type Server struct {
	app       *app.App
	assistant Assistant
	log       *slog.Logger
}

type ServerConfig struct {
	App       *app.App
	Assistant Assistant
	Logger    *slog.Logger
}

func NewServer(cfg ServerConfig) *Server {
	s := &Server{app: cfg.App, assistant: cfg.Assistant, log: cfg.Logger}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/bootstrap", s.handleBootstrap)
	mux.HandleFunc("POST /api/entries", s.handleSaveEntry)
	mux.HandleFunc("POST /api/entries/{id}/completion", s.handleToggleCompletion)
	mux.HandleFunc("DELETE /api/entries/{id}", s.handleDeleteEntry)
	mux.HandleFunc("POST /api/notes", s.handleSaveNote)
	mux.HandleFunc("DELETE /api/notes/{id}", s.handleDeleteNote)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/assist", s.handleAssist)
	mux.HandleFunc("GET /ws", s.handleWS)

	return mux
}

func (s *Server) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Bootstrap())
}

func (s *Server) handleSaveEntry(w http.ResponseWriter, r *http.Request) {
	var draft model.EntryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := s.app.SaveEntry(draft)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleToggleCompletion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := s.app.ToggleEntryCompletion(id, body.Completed)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.app.DeleteEntry(id); err != nil {
		s.writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSaveNote(w http.ResponseWriter, r *http.Request) {
	var draft model.NoteDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	note, err := s.app.SaveNote(draft)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.app.DeleteNote(id); err != nil {
		s.writeCommandError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	entries, notes := s.app.SearchAll(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"notes":   notes,
	})
}

func (s *Server) handleAssist(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		writeError(w, http.StatusServiceUnavailable, "assistant not configured")
		return
	}
	var body struct {
		Messages []relay.Message `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages required")
		return
	}
	reply, err := s.assistant.Reply(r.Context(), body.Messages)
	if err != nil {
		s.log.Warn("assist request failed", "error", err)
		writeError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// writeCommandError maps the typed command-processor errors onto HTTP status
// codes. Anything unexpected is a 500.
func (s *Server) writeCommandError(w http.ResponseWriter, err error) {
	var verr mutate.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	var nferr mutate.NotFoundError
	if errors.As(err, &nferr) {
		writeError(w, http.StatusNotFound, nferr.Error())
		return
	}
	s.log.Error("command failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
