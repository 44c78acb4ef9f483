// Package app holds the gateway use cases: session lifecycle, the
// registration workflow, debounced search, and admin back-office flows. It
// owns the repository interfaces that infra implements.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"quiz-master-gateway/internal/backend"
	"quiz-master-gateway/internal/domain"
	"quiz-master-gateway/internal/validation"
)

// SessionRepository abstracts how sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Put(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, bool, error)
	Delete(ctx context.Context, id string) error
}

// AuthBackend is the slice of the data-access interface the session service
// needs.
type AuthBackend interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
	UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (domain.User, error)
	ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) error
}

// SessionService is the explicit lifecycle around "who is logged in":
// login/register create a session, Viewer resolves it, logout clears it, and
// profile updates refresh the stored snapshot. Consumers read through it
// instead of any ambient global.
type SessionService struct {
	auth     AuthBackend
	sessions SessionRepository
	ttl      time.Duration
	clock    func() time.Time
	logger   *slog.Logger
}

func NewSessionService(auth AuthBackend, sessions SessionRepository, ttl time.Duration, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		auth:     auth,
		sessions: sessions,
		ttl:      ttl,
		clock:    time.Now,
		logger:   logger,
	}
}

// WithClock is test-only for deterministic expiry.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.clock = now
	return s
}

// Login authenticates against the backend and opens a gateway session.
func (s *SessionService) Login(ctx context.Context, usernameOrEmail, password string) (domain.Session, error) {
	resp, err := s.auth.Login(ctx, domain.LoginRequest{UsernameOrEmail: usernameOrEmail, Password: password})
	if err != nil {
		return domain.Session{}, err
	}
	return s.open(ctx, resp)
}

// Register validates locally, creates the account, and opens a session.
func (s *SessionService) Register(ctx context.Context, req domain.RegisterRequest, confirmPassword string) (domain.Session, error) {
	if err := validation.Registration(req, confirmPassword); err != nil {
		return domain.Session{}, err
	}
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		return domain.Session{}, err
	}
	return s.open(ctx, resp)
}

func (s *SessionService) open(ctx context.Context, resp domain.AuthResponse) (domain.Session, error) {
	expires := s.clock().Add(s.ttl)
	// The backend token may expire before our session TTL; honor the shorter.
	if !resp.Expiration.IsZero() && resp.Expiration.Before(expires) {
		expires = resp.Expiration
	}
	session := domain.Session{
		ID:        uuid.NewString(),
		Token:     resp.Token,
		User:      resp.User,
		ExpiresAt: expires,
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return domain.Session{}, domain.Unknown("log in", err)
	}
	s.logger.Info("session opened", "user", session.User.Username, "role", session.User.Role)
	return session, nil
}

// Viewer resolves a session ID to its live session.
func (s *SessionService) Viewer(ctx context.Context, sessionID string) (domain.Session, error) {
	session, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Session{}, domain.Unknown("resolve session", err)
	}
	if !ok || session.Expired(s.clock()) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return session, nil
}

// Logout discards the session. Idempotent.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// UpdateProfile pushes the edit to the backend and refreshes the session's
// user snapshot so later reads see the new profile.
func (s *SessionService) UpdateProfile(ctx context.Context, sessionID string, req domain.UpdateProfileRequest) (domain.Session, error) {
	session, err := s.Viewer(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}

	updated, err := s.auth.UpdateProfile(backend.WithToken(ctx, session.Token), req)
	if err != nil {
		return domain.Session{}, err
	}
	session.User = updated
	if err := s.sessions.Put(ctx, session); err != nil {
		return domain.Session{}, domain.Unknown("update profile", err)
	}
	return session, nil
}

// ChangePassword validates the pair locally, then rotates it backend-side.
func (s *SessionService) ChangePassword(ctx context.Context, sessionID, current, next, confirm string) error {
	session, err := s.Viewer(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := validation.Password(next, confirm); err != nil {
		return err
	}
	return s.auth.ChangePassword(backend.WithToken(ctx, session.Token), domain.ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
}
