package ports

import (
	"context"

	"github.com/skene-dev/skene/pkg/domain"
)

// TurnEngine is the single operation transport adapters call: one request
// in, one reply plus the next session state out. Implementations must be
// safe for concurrent turns of different sessions.
type TurnEngine interface {
	HandleTurn(ctx context.Context, req domain.Request) (domain.Reply, domain.SessionState, error)
}
