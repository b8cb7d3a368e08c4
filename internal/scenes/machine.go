package scenes

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"log/slog"

	"github.com/skene-dev/skene/internal/logging"
	"github.com/skene-dev/skene/pkg/domain"
	"github.com/skene-dev/skene/pkg/ports"
)

// Machine is the scene state machine. It is a pure, synchronous turn
// processor: all session data travels in the request, so one Machine can
// serve concurrent turns of independent sessions.
type Machine struct {
	registry *Registry
	content  ports.ContentStore
	logger   *slog.Logger
	hooks    domain.LifecycleHooks

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures the Machine.
type Option func(*Machine)

// WithLogger sets a structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithRandSource sets the randomness source for question selection.
// Tests inject a fixed seed to make selection reproducible.
func WithRandSource(src rand.Source) Option {
	return func(m *Machine) {
		m.rng = rand.New(src)
	}
}

// NewMachine builds the machine and its closed scene registry.
func NewMachine(content ports.ContentStore, opts ...Option) *Machine {
	m := &Machine{
		content: content,
		logger:  logging.NewNop(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.registry = newRegistry(SceneWelcome,
		&welcomeScene{},
		&tourScene{},
		&gameScene{},
		&questionScene{content: m.content, logger: m.logger, pick: m.pick},
		&answerScene{content: m.content, logger: m.logger},
		&whoIsScene{content: m.content, logger: m.logger},
	)
	return m
}

// Registry exposes the closed scene set for introspection and validation.
func (m *Machine) Registry() *Registry {
	return m.registry
}

// pick returns a uniform random index below n. The shared generator is
// guarded because the host may run turns in parallel.
func (m *Machine) pick(n int) int {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return m.rng.Intn(n)
}

// HandleTurn processes one turn: it resolves the scene indicated by prior
// session state, applies the global and scene-local transition rules, and
// invokes the resulting scene's reply. Every path yields a reply and a next
// state; failures degrade to the Welcome scene, never to a dead session.
func (m *Machine) HandleTurn(ctx context.Context, req domain.Request) (domain.Reply, domain.SessionState, error) {
	start := time.Now()

	snap, err := req.Session.Snapshot()
	if err != nil {
		m.logger.Warn("undecodable session state, starting fresh", "err", err)
		snap = domain.Snapshot{}
	}

	current := m.currentScene(snap)
	next, global := m.resolveNext(current, req, snap)

	if next.ID() != current.ID() || global {
		m.emitTransition(ctx, current.ID(), next.ID(), global)
	}

	reply, fellBack := m.replyOrFallback(ctx, next, req, snap)
	if fellBack {
		next = m.registry.Default()
	}

	state := req.Session.Merge(reply.State)
	// The scene id is stamped by the machine, never by the scene itself.
	state[domain.KeyScene] = next.ID()

	m.emitTurn(ctx, next.ID(), time.Since(start), fellBack)
	return reply, state, nil
}

// currentScene maps the stored scene id onto the registry, defaulting to
// Welcome for fresh sessions and for ids no release knows anymore.
func (m *Machine) currentScene(snap domain.Snapshot) Scene {
	if snap.Scene == "" {
		return m.registry.Default()
	}
	s, ok := m.registry.Get(snap.Scene)
	if !ok {
		m.logger.Warn("session references unknown scene, falling back",
			"scene", snap.Scene)
		return m.registry.Default()
	}
	return s
}

// resolveNext applies the fixed resolution order: the global interruption
// rule first, then the current scene's local rules. No match means a no-op
// transition and the current scene replies again.
func (m *Machine) resolveNext(current Scene, req domain.Request, snap domain.Snapshot) (Scene, bool) {
	// Global rule: "tell me about X" wins from any scene.
	if req.HasIntent(domain.IntentTellAbout) {
		whoIs, _ := m.registry.Get(SceneWhoIs)
		return whoIs, true
	}

	id := current.Next(req, snap)
	if id == "" || id == current.ID() {
		return current, false
	}

	next, ok := m.registry.Get(id)
	if !ok {
		m.logger.Warn("transition names unregistered scene, falling back",
			"from", current.ID(), "to", id)
		return m.registry.Default(), false
	}
	return next, false
}

// replyOrFallback invokes the scene reply and degrades to a neutral
// Welcome-level reply when the scene fails (stale state, content miss).
func (m *Machine) replyOrFallback(ctx context.Context, s Scene, req domain.Request, snap domain.Snapshot) (domain.Reply, bool) {
	reply, err := s.Reply(ctx, req, snap)
	if err == nil {
		return reply, false
	}

	m.logger.Error("scene reply failed, degrading to welcome",
		"scene", s.ID(), "err", err)

	fallback := welcomeReply("Something went wrong on my side. ")
	// A degraded turn must not leave answer-pending markers behind.
	fallback.State = domain.Delta{domain.KeyQuestionID: nil}
	return fallback, true
}

func (m *Machine) emitTransition(ctx context.Context, from, to string, global bool) {
	if m.hooks.OnTransition == nil {
		return
	}
	m.hooks.OnTransition(ctx, &domain.SceneEvent{
		Timestamp: time.Now(),
		From:      from,
		Scene:     to,
		Global:    global,
	})
}

func (m *Machine) emitTurn(ctx context.Context, scene string, d time.Duration, fallback bool) {
	if m.hooks.OnTurn == nil {
		return
	}
	m.hooks.OnTurn(ctx, &domain.TurnEvent{
		Timestamp: time.Now(),
		Scene:     scene,
		Duration:  d,
		Fallback:  fallback,
	})
}
