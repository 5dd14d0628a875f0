// Package server exposes the planner over a JSON HTTP API with cookie
// sessions.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/blockday/blockday/internal/config"
	"github.com/blockday/blockday/internal/logger"
	"github.com/blockday/blockday/internal/planner"
	"github.com/blockday/blockday/internal/session"
	"github.com/blockday/blockday/internal/storage"
)

// Server wires the HTTP routes to the planner service.
type Server struct {
	planner  *planner.Service
	store    storage.Provider
	sessions *session.Manager
	defaults config.DefaultsConfig
	now      func() time.Time
}

func New(svc *planner.Service, store storage.Provider, sessions *session.Manager, defaults config.DefaultsConfig) *Server {
	return &Server{
		planner:  svc,
		store:    store,
		sessions: sessions,
		defaults: defaults,
		now:      time.Now,
	}
}

// Handler builds the route table. Everything under /api except session
// creation requires a valid session cookie.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/session", s.handleSignIn)
	mux.HandleFunc("DELETE /api/session", s.handleSignOut)

	mux.Handle("GET /api/me", s.auth(s.handleMe))
	mux.Handle("GET /api/day/{date}", s.auth(s.handleGetDay))
	mux.Handle("PUT /api/day/{date}", s.auth(s.handleUpsertDay))
	mux.Handle("PATCH /api/day-entries/{id}", s.auth(s.handlePatchDay))
	mux.Handle("POST /api/day-entries/{id}/complete", s.auth(s.handleCompleteDay))
	mux.Handle("PATCH /api/blocks/{id}", s.auth(s.handlePatchBlock))
	mux.Handle("GET /api/active", s.auth(s.handleActiveBlock))
	mux.Handle("GET /api/history", s.auth(s.handleHistory))
	mux.Handle("GET /api/preferences", s.auth(s.handleGetPreferences))
	mux.Handle("PUT /api/preferences", s.auth(s.handlePutPreferences))

	return logRequests(mux)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type contextKey string

const userIDKey contextKey = "userID"

// auth resolves the session cookie into a user id on the request context.
func (s *Server) auth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		userID, err := s.sessions.Verify(cookie.Value)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "session invalid or expired")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func requestUser(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Request handled", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
