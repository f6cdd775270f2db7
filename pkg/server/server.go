// Package server exposes the back-office HTTP API: authentication
// bridging, enriched post CRUD, the priority endpoint, and operator
// diagnostics. Every post route sits behind the session guard.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"pressdesk/internal/domain"
	"pressdesk/internal/service"
	"pressdesk/internal/session"
	"pressdesk/pkg/feed"
)

const sessionCookie = "pressdesk_session"

// Server provides the HTTP API.
type Server struct {
	auth     *service.AuthService
	posts    *service.PostService
	feed     *feed.Fetcher
	sessions *session.Store
	logger   *slog.Logger
	port     int
	httpSrv  *http.Server
}

// New creates the HTTP server.
func New(
	auth *service.AuthService,
	posts *service.PostService,
	feedFetcher *feed.Fetcher,
	sessions *session.Store,
	logger *slog.Logger,
	port int,
) *Server {
	if port == 0 {
		port = 8080
	}
	s := &Server{
		auth:     auth,
		posts:    posts,
		feed:     feedFetcher,
		sessions: sessions,
		logger:   logger.With("component", "server"),
		port:     port,
	}
	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}
	return s
}

// Handler builds the routing table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/feed", s.handleFeed)

	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/v1/auth/check", s.handleAuthCheck)
	mux.HandleFunc("GET /api/v1/auth/test-connection", s.handleTestConnection)

	mux.HandleFunc("GET /api/v1/posts", s.requireAuth(s.handleListPosts))
	mux.HandleFunc("POST /api/v1/posts", s.requireAuth(s.handleCreatePost))
	mux.HandleFunc("GET /api/v1/posts/new", s.requireAuth(s.handleNewPostForm))
	mux.HandleFunc("GET /api/v1/posts/{id}", s.requireAuth(s.handleGetPost))
	mux.HandleFunc("PUT /api/v1/posts/{id}", s.requireAuth(s.handleUpdatePost))
	mux.HandleFunc("PATCH /api/v1/posts/{id}", s.requireAuth(s.handleUpdatePost))
	mux.HandleFunc("DELETE /api/v1/posts/{id}", s.requireAuth(s.handleDeletePost))
	mux.HandleFunc("PUT /api/v1/posts/{id}/priority", s.requireAuth(s.handleUpdatePriority))
	mux.HandleFunc("POST /api/v1/posts/reconcile", s.requireAuth(s.handleReconcile))

	return mux
}

// Run starts the HTTP server and shuts it down when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.httpSrv.Shutdown(context.Background())
	}()

	s.logger.Info("http server listening", "port", s.port)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// requireAuth is the session guard: it refuses the request before the
// handler runs, so a denied call performs no remote or local writes.
// Never applied to the auth routes.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := s.sessionToken(r)
		if ok {
			if sess, found := s.sessions.Get(token); found && sess.Authenticated {
				next(w, r)
				return
			}
		}
		s.writeError(w, domain.ErrAuthRequired)
	}
}

// sessionToken extracts the caller's session token from the cookie.
func (s *Server) sessionToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// ensureToken returns the caller's session token, minting a cookie for
// first-time callers.
func (s *Server) ensureToken(w http.ResponseWriter, r *http.Request) string {
	if token, ok := s.sessionToken(r); ok {
		return token
	}
	token := session.NewToken()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}
