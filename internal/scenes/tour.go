package scenes

import (
	"context"

	"github.com/skene-dev/skene/pkg/domain"
)

// tourScene is the terminal leaf of the tour branch. The full tour script
// lives outside this engine; the global interruption rule still applies.
type tourScene struct{}

func (s *tourScene) ID() string { return SceneStartTour }

func (s *tourScene) Reply(ctx context.Context, req domain.Request, snap domain.Snapshot) (domain.Reply, error) {
	return domain.Reply{
		Text: "Our tour begins at the foot of the monument...",
	}, nil
}

func (s *tourScene) Next(req domain.Request, snap domain.Snapshot) string {
	return ""
}
