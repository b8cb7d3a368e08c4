package scenes

import (
	"context"
	"errors"
	"fmt"

	"log/slog"

	"github.com/skene-dev/skene/pkg/domain"
	"github.com/skene-dev/skene/pkg/ports"
)

// answerScene evaluates the pending question against the turn's numeric
// entities and offers another question of the same category.
type answerScene struct {
	content ports.ContentStore
	logger  *slog.Logger
}

func (s *answerScene) ID() string { return SceneAnswer }

func (s *answerScene) Reply(ctx context.Context, req domain.Request, snap domain.Snapshot) (domain.Reply, error) {
	if snap.QuestionID == "" {
		// The machine normally guarantees a pending id before entering this
		// scene; re-entry after an evaluated answer lands here.
		return s.repeatPrompt(snap), nil
	}

	question, err := s.content.QuestionByID(ctx, snap.QuestionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("pending question vanished from content",
				"question_id", snap.QuestionID)
		}
		return domain.Reply{}, fmt.Errorf("failed to load pending question %s: %w", snap.QuestionID, err)
	}

	correct := containsNumber(req.NumericEntities, question.Answer)
	text := question.ReplyFalse
	if correct {
		text = question.ReplyTrue
	}

	return domain.Reply{
		Text:    fmt.Sprintf("%s %s", text, askAnotherPrompt(question.Type)),
		Buttons: yesNoButtons(),
		State: domain.Delta{
			// Carry the category forward so a bare "yes" resumes it, and
			// consume the pending id: the session is no longer
			// answer-pending.
			domain.KeyQuestionType: string(question.Type),
			domain.KeyQuestionID:   nil,
		},
	}, nil
}

// repeatPrompt re-offers the ask-another prompt when the scene is re-entered
// without a pending question. With no stored category either, the session
// state is genuinely stale and the reply degrades to the Welcome choices.
func (s *answerScene) repeatPrompt(snap domain.Snapshot) domain.Reply {
	questionType := domain.QuestionTypeFromState(snap)
	if questionType == domain.QuestionUnknown {
		s.logger.Warn("answer scene entered with no pending question and no category")
		return welcomeReply("I lost track of the question. ")
	}
	return domain.Reply{
		Text:    askAnotherPrompt(questionType),
		Buttons: yesNoButtons(),
	}
}

func (s *answerScene) Next(req domain.Request, snap domain.Snapshot) string {
	switch {
	case req.HasIntent(domain.IntentConfirm):
		return SceneQuestion
	case req.HasIntent(domain.IntentGameQuestion):
		return SceneQuestion
	case req.HasIntent(domain.IntentReject):
		return SceneWelcome
	}
	return ""
}

func askAnotherPrompt(t domain.QuestionType) string {
	return fmt.Sprintf("Want another %s question?", t.DisplayName())
}

func yesNoButtons() []domain.Button {
	return []domain.Button{
		domain.NewButton("Yes"),
		domain.NewButton("No"),
	}
}

func containsNumber(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
