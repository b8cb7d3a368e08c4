package skene

import (
	"context"
	"fmt"
	"math/rand"

	"log/slog"

	"github.com/skene-dev/skene/internal/logging"
	"github.com/skene-dev/skene/internal/scenes"
	"github.com/skene-dev/skene/pkg/domain"
	"github.com/skene-dev/skene/pkg/ports"
)

// Version is the library version reported by the CLI.
var Version = "0.3.0"

// Engine is the high-level entry point for the Skene library.
// It wraps the internal scene machine and provides a simplified API for
// consumers.
type Engine struct {
	machine *scenes.Machine

	logger *slog.Logger
	hooks  domain.LifecycleHooks
	src    rand.Source
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithRandSource sets the randomness source used for question selection.
// Tests pass a fixed seed to make selection reproducible.
func WithRandSource(src rand.Source) Option {
	return func(e *Engine) {
		e.src = src
	}
}

// New initializes a new Skene Engine over the given content store.
func New(content ports.ContentStore, opts ...Option) (*Engine, error) {
	if content == nil {
		return nil, fmt.Errorf("content store is required")
	}

	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	machineOpts := []scenes.Option{
		scenes.WithLogger(eng.logger),
		scenes.WithLifecycleHooks(eng.hooks),
	}
	if eng.src != nil {
		machineOpts = append(machineOpts, scenes.WithRandSource(eng.src))
	}

	eng.machine = scenes.NewMachine(content, machineOpts...)
	return eng, nil
}

// HandleTurn processes one conversational turn: it resolves the next scene
// from the recognized intents and prior session state, and returns the
// reply plus the state blob to carry forward.
func (e *Engine) HandleTurn(ctx context.Context, req domain.Request) (domain.Reply, domain.SessionState, error) {
	return e.machine.HandleTurn(ctx, req)
}

// SceneIDs returns the closed set of scene ids, for introspection and
// validation tools.
func (e *Engine) SceneIDs() []string {
	return e.machine.Registry().IDs()
}
