// Package server exposes the damage engine and build store over HTTP: JSON
// endpoints for one-shot computation and persistence, plus a websocket for
// live per-keystroke recomputation.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/udisondev/zzzcalc/internal/config"
	"github.com/udisondev/zzzcalc/internal/db"
	"github.com/udisondev/zzzcalc/internal/model"
)

// Server handles the calculator API.
type Server struct {
	cfg    config.Server
	builds *db.BuildStore
}

// New returns a server over the given build store.
func New(cfg config.Server, builds *db.BuildStore) *Server {
	return &Server{cfg: cfg, builds: builds}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/preview", s.handlePreview)
	mux.HandleFunc("POST /api/marginals", s.handleMarginals)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	mux.HandleFunc("GET /api/builds", s.handleListBuilds)
	mux.HandleFunc("GET /api/builds/{name}", s.handleGetBuild)
	mux.HandleFunc("PUT /api/builds/{name}", s.requireKey(s.handleSaveBuild))
	mux.HandleFunc("DELETE /api/builds/{name}", s.requireKey(s.handleDeleteBuild))

	mux.HandleFunc("GET /ws", s.handleWS)

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.ListenAddress,
		Handler:     s.Handler(),
		ReadTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("api listening", "addr", s.cfg.ListenAddress)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down api server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	}
}

// requireKey guards mutating endpoints with the configured API key. An
// empty configured hash disables the check.
func (s *Server) requireKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APIKeyHash != "" {
			key := r.Header.Get("X-API-Key")
			if bcrypt.CompareHashAndPassword([]byte(s.cfg.APIKeyHash), []byte(key)) != nil {
				writeError(w, http.StatusUnauthorized, "invalid api key")
				return
			}
		}
		next(w, r)
	}
}

// decodeBuild reads and sanitizes a build document from the request body.
func decodeBuild(w http.ResponseWriter, r *http.Request) (*model.Build, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, model.MaxDocumentBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "build document too large")
		return nil, false
	}
	b, err := model.DecodeDocument(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return b, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
