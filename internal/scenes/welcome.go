package scenes

import (
	"context"

	"github.com/skene-dev/skene/pkg/domain"
)

const welcomeText = "I can take you on a tour of the monument, " +
	"tell you about every figure on it, " +
	"or we can play a quiz."

func welcomeButtons() []domain.Button {
	return []domain.Button{
		domain.NewButton("Play the quiz"),
		domain.NewButton("Take the tour"),
	}
}

// welcomeReply builds the Welcome-level reply, optionally prefixed with a
// diagnostic lead-in. It is shared by the fallback paths.
func welcomeReply(prefix string) domain.Reply {
	return domain.Reply{
		Text:    prefix + welcomeText,
		Buttons: welcomeButtons(),
	}
}

// welcomeScene is the entry/default scene of the skill.
type welcomeScene struct{}

func (s *welcomeScene) ID() string { return SceneWelcome }

func (s *welcomeScene) Reply(ctx context.Context, req domain.Request, snap domain.Snapshot) (domain.Reply, error) {
	return welcomeReply(""), nil
}

func (s *welcomeScene) Next(req domain.Request, snap domain.Snapshot) string {
	switch {
	case req.HasIntent(domain.IntentStartTour):
		return SceneStartTour
	case req.HasIntent(domain.IntentStartGame):
		return SceneStartGame
	}
	return ""
}
