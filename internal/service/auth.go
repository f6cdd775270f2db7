package service

import (
	"context"
	"fmt"
	"log/slog"

	"pressdesk/internal/domain"
	"pressdesk/internal/session"
)

// AuthService bridges login attempts to the remote credential check and
// owns the session's authentication state. It knows nothing about
// posts or priorities.
type AuthService struct {
	remote   RemoteClient
	sessions *session.Store
	logger   *slog.Logger
}

// NewAuthService creates the authentication bridge.
func NewAuthService(remote RemoteClient, sessions *session.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		remote:   remote,
		sessions: sessions,
		logger:   logger.With("component", "auth"),
	}
}

// Login validates username/password against the remote. On success the
// session under token becomes authenticated; on rejection it returns
// domain.ErrInvalidCredentials and leaves the session untouched. A
// transport failure is a distinct outcome so callers can tell a wrong
// password from an unreachable identity source.
func (a *AuthService) Login(ctx context.Context, token, username, password string) error {
	ok, err := a.remote.AuthenticateAs(ctx, username, password)
	if err != nil {
		a.logger.Error("authentication check failed", "username", username, "error", err)
		return fmt.Errorf("login: %w", err)
	}
	if !ok {
		a.logger.Warn("authentication rejected", "username", username)
		return domain.ErrInvalidCredentials
	}

	a.sessions.Put(token, session.Session{Authenticated: true, Username: username})
	a.logger.Info("user authenticated", "username", username)
	return nil
}

// Logout unconditionally clears the session. Always succeeds.
func (a *AuthService) Logout(token string) {
	a.sessions.Forget(token)
	a.logger.Info("user logged out")
}

// Status reports the current session state for token.
func (a *AuthService) Status(token string) session.Session {
	sess, ok := a.sessions.Get(token)
	if !ok {
		return session.Session{}
	}
	return sess
}

// WordPressURL returns the configured remote site URL.
func (a *AuthService) WordPressURL() string {
	return a.remote.BaseURL()
}

// CheckConnectivity probes the remote with the service credentials. It
// requires no session; operators use it to diagnose configuration
// before logging in.
func (a *AuthService) CheckConnectivity(ctx context.Context) (bool, string) {
	return a.remote.Probe(ctx), a.remote.BaseURL()
}
