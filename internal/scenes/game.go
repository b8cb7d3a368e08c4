package scenes

import (
	"context"

	"github.com/skene-dev/skene/pkg/domain"
)

// gameScene introduces the quiz and pre-selects the easy category so a bare
// confirmation can start it. This is the one place an unstated category
// defaults to simple.
type gameScene struct{}

func (s *gameScene) ID() string { return SceneStartGame }

func (s *gameScene) Reply(ctx context.Context, req domain.Request, snap domain.Snapshot) (domain.Reply, error) {
	text := "Questions come in three kinds: easy, hard, and attention.\n" +
		"Easy questions offer answer choices.\n" +
		"Hard ones come without any hints.\n" +
		"And to get an attention question right, it helps to see the monument itself " +
		"or its photographs.\n" +
		"Shall we start with an easy one?"

	return domain.Reply{
		Text: text,
		Buttons: []domain.Button{
			domain.NewButton("Easy"),
			domain.NewButton("Hard"),
			domain.NewButton("Attention"),
		},
		State: domain.Delta{
			domain.KeyQuestionType: string(domain.QuestionSimple),
		},
	}, nil
}

func (s *gameScene) Next(req domain.Request, snap domain.Snapshot) string {
	questionType := domain.QuestionUnknown
	switch {
	case req.HasIntent(domain.IntentGameQuestion):
		questionType = domain.QuestionTypeFromSlot(req, domain.IntentGameQuestion)
	case req.HasIntent(domain.IntentConfirm):
		questionType = domain.QuestionTypeFromState(snap)
	}
	if questionType != domain.QuestionUnknown {
		return SceneQuestion
	}
	return ""
}
