package ports

import (
	"context"

	"github.com/skene-dev/skene/pkg/domain"
)

// SessionStore persists the per-session state blob between turns for hosts
// that do not round-trip it themselves. The engine core never touches it;
// it belongs to the transport layer.
type SessionStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state domain.SessionState) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (domain.SessionState, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the ids of known sessions.
	List(ctx context.Context) ([]string, error)
}
