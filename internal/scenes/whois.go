package scenes

import (
	"context"
	"errors"
	"fmt"

	"log/slog"

	"github.com/skene-dev/skene/pkg/domain"
	"github.com/skene-dev/skene/pkg/ports"
)

// whoIsScene handles the "tell me about X" digression. It records the
// interrupted scene as a breadcrumb so a confirmation returns the user to
// exactly where they left off.
type whoIsScene struct {
	content ports.ContentStore
	logger  *slog.Logger
}

func (s *whoIsScene) ID() string { return SceneWhoIs }

func (s *whoIsScene) Reply(ctx context.Context, req domain.Request, snap domain.Snapshot) (domain.Reply, error) {
	who, ok := req.SlotValue(domain.IntentTellAbout, domain.SlotWho)
	if !ok {
		return domain.Reply{}, fmt.Errorf("tell_about intent carries no %q slot", domain.SlotWho)
	}

	persona, err := s.content.PersonaByID(ctx, who)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// An unknown figure is a content gap, not a broken session:
			// keep the digression open so "yes" still resumes.
			s.logger.Warn("persona not found", "persona_id", who)
			return domain.Reply{
				Text:    "I do not know that figure yet. Shall we continue?",
				Buttons: yesNoButtons(),
				State:   domain.Delta{domain.KeyPrevious: snap.Scene},
			}, nil
		}
		return domain.Reply{}, fmt.Errorf("failed to load persona %s: %w", who, err)
	}

	return domain.Reply{
		Text:    persona.Short + "\nShall we continue?",
		Buttons: yesNoButtons(),
		Gallery: &domain.Gallery{ImageIDs: persona.Gallery},
		State:   domain.Delta{domain.KeyPrevious: snap.Scene},
	}, nil
}

func (s *whoIsScene) Next(req domain.Request, snap domain.Snapshot) string {
	switch {
	case req.HasIntent(domain.IntentConfirm):
		if snap.Previous == "" {
			return SceneWelcome
		}
		// The breadcrumb is just data; the machine validates it against the
		// closed registry and fails closed to Welcome.
		return snap.Previous
	case req.HasIntent(domain.IntentReject):
		return SceneWelcome
	}
	return ""
}
