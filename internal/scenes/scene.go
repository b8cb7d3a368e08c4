package scenes

import (
	"context"

	"github.com/skene-dev/skene/pkg/domain"
)

// Stable scene ids. The breadcrumb mechanism stores these in session state,
// so they are part of the engine's persistence contract: renaming one
// invalidates in-flight sessions.
const (
	SceneWelcome   = "welcome"
	SceneStartTour = "start_tour"
	SceneStartGame = "start_game"
	SceneQuestion  = "question"
	SceneAnswer    = "answer"
	SceneWhoIs     = "who_is"
)

// Scene is a stateless behavior unit of the conversation. Implementations
// carry only injected collaborators, never per-session data; everything a
// decision needs travels in the request and the decoded snapshot.
type Scene interface {
	// ID returns the stable identifier of the scene.
	ID() string

	// Reply produces the turn's output and the session-state delta.
	Reply(ctx context.Context, req domain.Request, snap domain.Snapshot) (domain.Reply, error)

	// Next evaluates the scene-local transition rules and returns the id of
	// the target scene, or "" when no rule matches and the machine should
	// stay where it is. Global rules are resolved by the machine before
	// Next is consulted.
	Next(req domain.Request, snap domain.Snapshot) string
}
