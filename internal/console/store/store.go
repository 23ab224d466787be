package store

import (
	"context"
	"errors"

	"github.com/harborcrest/userdesk/internal/console/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface for the console's local state.
// Concrete drivers (sqlite) implement this. It exposes sub-repositories to
// keep concerns tidy and testable.
type Store interface {
	Sessions() Sessions

	ApplyMigrations() error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Sessions interface {
	// SaveSession persists the active session, replacing any previous one.
	// The console keeps at most one session at a time.
	SaveSession(ctx context.Context, s domain.Session) error

	// GetSession returns the persisted session, or ErrNotFound if none.
	// Expiry is the caller's concern; the store returns whatever was saved.
	GetSession(ctx context.Context) (domain.Session, error)

	// ClearSession removes the persisted session. Clearing when none exists
	// is not an error.
	ClearSession(ctx context.Context) error
}
