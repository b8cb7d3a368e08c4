package domain

import (
	"context"
	"time"
)

// SceneEvent describes a resolved transition for one turn.
type SceneEvent struct {
	Timestamp time.Time `json:"timestamp"`
	From      string    `json:"from"`
	Scene     string    `json:"scene"`
	// Global is true when the transition was forced by the shared
	// interruption resolver rather than a scene-local rule.
	Global bool `json:"global,omitempty"`
}

// TurnEvent describes a completed turn.
type TurnEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Scene     string        `json:"scene"`
	Duration  time.Duration `json:"duration"`
	Fallback  bool          `json:"fallback,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTransition func(context.Context, *SceneEvent)
	OnTurn       func(context.Context, *TurnEvent)
}
