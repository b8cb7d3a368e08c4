package scenes

import (
	"context"
	"fmt"
	"strconv"

	"log/slog"

	"github.com/skene-dev/skene/pkg/domain"
	"github.com/skene-dev/skene/pkg/ports"
)

// questionScene selects and delivers the next quiz question. Its reply is
// idempotent per question: ids already in asked_questions are never drawn
// again within a session.
type questionScene struct {
	content ports.ContentStore
	logger  *slog.Logger
	pick    func(n int) int
}

func (s *questionScene) ID() string { return SceneQuestion }

func (s *questionScene) Reply(ctx context.Context, req domain.Request, snap domain.Snapshot) (domain.Reply, error) {
	questionType := s.desiredType(req, snap)

	questions, err := s.content.QuestionsByType(ctx, questionType)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("failed to load %s questions: %w", questionType, err)
	}

	pool := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if !snap.Asked(q.ID) {
			pool = append(pool, q)
		}
	}

	if len(pool) == 0 {
		return s.exhaustedReply(), nil
	}

	question := pool[s.pick(len(pool))]
	asked := append(append([]string{}, snap.AskedQuestions...), question.ID)

	return domain.Reply{
		Text: fmt.Sprintf("Here is %s question. %s", categoryWithArticle(questionType), question.Text),
		Buttons: []domain.Button{
			domain.NewButton(strconv.Itoa(question.Answer)),
		},
		State: domain.Delta{
			domain.KeyQuestionID:     question.ID,
			domain.KeyAskedQuestions: asked,
		},
	}, nil
}

// categoryWithArticle renders the category name with its article for use
// mid-sentence.
func categoryWithArticle(t domain.QuestionType) string {
	switch t {
	case domain.QuestionHard:
		return "a hard"
	default:
		return "an " + t.DisplayName()
	}
}

// desiredType resolves the category: intent slot first, then stored state,
// then the sole implicit default at quiz entry.
func (s *questionScene) desiredType(req domain.Request, snap domain.Snapshot) domain.QuestionType {
	if req.HasIntent(domain.IntentGameQuestion) {
		return domain.QuestionTypeFromSlot(req, domain.IntentGameQuestion)
	}
	if snap.QuestionType != "" {
		return domain.QuestionTypeFromState(snap)
	}
	return domain.QuestionSimple
}

// exhaustedReply offers the Welcome-level choices again. No question_id is
// left behind: the session is not answer-pending after exhaustion.
func (s *questionScene) exhaustedReply() domain.Reply {
	reply := welcomeReply("You have answered every question in this category! ")
	reply.State = domain.Delta{domain.KeyQuestionID: nil}
	return reply
}

func (s *questionScene) Next(req domain.Request, snap domain.Snapshot) string {
	switch {
	case req.HasIntent(domain.IntentStartTour):
		return SceneStartTour
	case req.HasIntent(domain.IntentStartGame):
		return SceneStartGame
	}
	// Anything else, including a bare number with no intent at all, is
	// treated as an answer attempt.
	return SceneAnswer
}
