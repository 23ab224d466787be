package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harborcrest/userdesk/internal/console/domain"
	"github.com/harborcrest/userdesk/internal/console/store"
	"github.com/harborcrest/userdesk/pkg/adminsdk"
	"github.com/harborcrest/userdesk/pkg/fieldval"
	"github.com/harborcrest/userdesk/pkg/slogx"
)

// SessionService signs admins in against the API and persists the resulting
// session locally so a restart within the TTL does not require another login.
type SessionService struct {
	SDK   *adminsdk.Client
	Store store.Store

	// TTL is how long a persisted session stays valid. Zero means
	// domain.SessionTTL.
	TTL time.Duration

	// Now is injectable for tests. Nil means time.Now.
	Now func() time.Time
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return domain.SessionTTL
}

// Login validates credentials locally, authenticates against the API, and
// persists the session.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	log := slogx.FromContext(ctx)

	// 1. Local validation before any request leaves the machine.
	fields := make(map[string]string)
	if email == "" {
		fields["email"] = "Email is required"
	} else if err := fieldval.Email(email); err != nil {
		fields["email"] = err.Error()
	}
	if password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		return domain.Session{}, &ValidationError{Fields: fields}
	}

	// 2. Authenticate.
	user, err := s.SDK.Login(ctx, email, password)
	if err != nil {
		log.Warn("login rejected", slog.String("email", email), slog.Any("error", err))
		return domain.Session{}, err
	}

	// 3. Persist the session.
	session := domain.Session{
		FullName:   user.FullName,
		LoggedInAt: s.now(),
	}
	if err := s.Store.Sessions().SaveSession(ctx, session); err != nil {
		log.Error("failed to persist session", slog.Any("error", err))
		return domain.Session{}, err
	}

	log.Info("admin logged in", slog.String("full_name", session.FullName))
	return session, nil
}

// Current returns the persisted session. An expired session is cleared and
// reported as ErrSessionExpired; no session at all is ErrNoSession.
func (s *SessionService) Current(ctx context.Context) (domain.Session, error) {
	session, err := s.Store.Sessions().GetSession(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrNoSession
		}
		return domain.Session{}, err
	}

	if session.Expired(s.now(), s.ttl()) {
		log := slogx.FromContext(ctx)
		log.Info("session expired, clearing",
			slog.String("full_name", session.FullName),
			slog.Time("logged_in_at", session.LoggedInAt),
		)
		if err := s.Store.Sessions().ClearSession(ctx); err != nil {
			return domain.Session{}, err
		}
		return domain.Session{}, ErrSessionExpired
	}

	return session, nil
}

// Logout discards the persisted session. Logging out with no session is not
// an error.
func (s *SessionService) Logout(ctx context.Context) error {
	return s.Store.Sessions().ClearSession(ctx)
}
