package scenes_test

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/skene-dev/skene/internal/scenes"
	"github.com/skene-dev/skene/pkg/adapters/memory"
	"github.com/skene-dev/skene/pkg/domain"
	"github.com/skene-dev/skene/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContent() *memory.Content {
	return memory.NewContent(
		[]domain.Question{
			{ID: "s1", Type: domain.QuestionSimple, Text: "How many columns?", Answer: 2,
				ReplyTrue: "Right, two columns.", ReplyFalse: "No, there are two."},
			{ID: "s2", Type: domain.QuestionSimple, Text: "How many horses?", Answer: 4,
				ReplyTrue: "Exactly, four horses.", ReplyFalse: "Actually four."},
			{ID: "h1", Type: domain.QuestionHard, Text: "How many tonnes?", Answer: 600,
				ReplyTrue: "Impressive, 600.", ReplyFalse: "It is 600."},
			{ID: "a1", Type: domain.QuestionAttention, Text: "How many lions?", Answer: 4,
				ReplyTrue: "Well spotted.", ReplyFalse: "Look again."},
		},
		[]domain.Persona{
			{ID: "falconet", Short: "Falconet sculpted the monument.", Gallery: []string{"img1", "img2"}},
		},
	)
}

func newTestMachine(t *testing.T, opts ...scenes.Option) *scenes.Machine {
	t.Helper()
	opts = append([]scenes.Option{scenes.WithRandSource(rand.NewSource(1))}, opts...)
	return scenes.NewMachine(testContent(), opts...)
}

func turn(t *testing.T, m *scenes.Machine, req domain.Request) (domain.Reply, domain.SessionState) {
	t.Helper()
	reply, state, err := m.HandleTurn(context.Background(), req)
	require.NoError(t, err)
	return reply, state
}

func withIntent(state domain.SessionState, names ...string) domain.Request {
	intents := make(map[string]domain.Intent, len(names))
	for _, n := range names {
		intents[n] = domain.Intent{}
	}
	return domain.Request{Intents: intents, Session: state}
}

func TestMachine_FreshSessionLandsOnWelcome(t *testing.T) {
	m := newTestMachine(t)

	reply, state := turn(t, m, domain.Request{Session: domain.SessionState{}})

	assert.Contains(t, reply.Text, "play a quiz")
	assert.Len(t, reply.Buttons, 2)
	assert.Equal(t, scenes.SceneWelcome, state[domain.KeyScene])
}

func TestMachine_QuizRoundTrip(t *testing.T) {
	m := newTestMachine(t)

	// Enter the quiz.
	reply, state := turn(t, m, withIntent(domain.SessionState{}, domain.IntentStartGame))
	assert.Equal(t, scenes.SceneStartGame, state[domain.KeyScene])
	assert.Contains(t, reply.Text, "three kinds")
	assert.Equal(t, string(domain.QuestionSimple), state[domain.KeyQuestionType])

	// A bare confirmation starts with the pre-selected easy category.
	reply, state = turn(t, m, withIntent(state, domain.IntentConfirm))
	assert.Equal(t, scenes.SceneQuestion, state[domain.KeyScene])
	assert.Contains(t, reply.Text, "an easy question")

	questionID, ok := state[domain.KeyQuestionID].(string)
	require.True(t, ok, "a delivered question must leave a pending id")
	asked, ok := state[domain.KeyAskedQuestions].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{questionID}, asked)

	// Answer correctly; the verdict consumes the pending id.
	question := questionByID(t, questionID)
	reply, state = turn(t, m, domain.Request{
		NumericEntities: []int{question.Answer},
		Session:         state,
	})
	assert.Equal(t, scenes.SceneAnswer, state[domain.KeyScene])
	assert.Contains(t, reply.Text, question.ReplyTrue)
	assert.Contains(t, reply.Text, "Want another easy question?")
	assert.NotContains(t, state, domain.KeyQuestionID)
	assert.Equal(t, string(domain.QuestionSimple), state[domain.KeyQuestionType])

	// "Yes" draws the other simple question, never a repeat.
	_, state = turn(t, m, withIntent(state, domain.IntentConfirm))
	assert.Equal(t, scenes.SceneQuestion, state[domain.KeyScene])
	secondID := state[domain.KeyQuestionID].(string)
	assert.NotEqual(t, questionID, secondID)
	assert.ElementsMatch(t, []string{questionID, secondID}, state[domain.KeyAskedQuestions])
}

func questionByID(t *testing.T, id string) domain.Question {
	t.Helper()
	q, err := testContent().QuestionByID(context.Background(), id)
	require.NoError(t, err)
	return q
}

func TestMachine_AnswerIsMembershipCheck(t *testing.T) {
	m := newTestMachine(t)

	state := domain.SessionState{
		domain.KeyScene:        scenes.SceneQuestion,
		domain.KeyQuestionID:   "h1",
		domain.KeyQuestionType: string(domain.QuestionHard),
	}

	// Order and duplicates among the recognized numbers do not matter.
	reply, next := turn(t, m, domain.Request{
		NumericEntities: []int{42, 600, 600},
		Session:         state,
	})
	assert.Contains(t, reply.Text, "Impressive")
	assert.Equal(t, scenes.SceneAnswer, next[domain.KeyScene])

	// No matching number means wrong, even with other numbers present.
	reply, _ = turn(t, m, domain.Request{
		NumericEntities: []int{42, 7},
		Session:         state,
	})
	assert.Contains(t, reply.Text, "It is 600")
}

func TestMachine_WrongAnswerKeepsCategory(t *testing.T) {
	m := newTestMachine(t)

	state := domain.SessionState{
		domain.KeyScene:      scenes.SceneQuestion,
		domain.KeyQuestionID: "a1",
	}

	reply, next := turn(t, m, domain.Request{Session: state})
	assert.Contains(t, reply.Text, "Look again")
	assert.Contains(t, reply.Text, "Want another attention question?")
	assert.Equal(t, string(domain.QuestionAttention), next[domain.KeyQuestionType])
}

func TestMachine_PoolExcludesAskedQuestions(t *testing.T) {
	m := newTestMachine(t)

	// With s1 already asked, the simple pool has exactly one candidate left,
	// so the draw is forced regardless of the random source.
	state := domain.SessionState{
		domain.KeyScene:          scenes.SceneAnswer,
		domain.KeyQuestionType:   string(domain.QuestionSimple),
		domain.KeyAskedQuestions: []string{"s1"},
	}

	_, next := turn(t, m, withIntent(state, domain.IntentConfirm))
	assert.Equal(t, "s2", next[domain.KeyQuestionID])
	assert.ElementsMatch(t, []string{"s1", "s2"}, next[domain.KeyAskedQuestions])
}

func TestMachine_CategoryExhaustion(t *testing.T) {
	m := newTestMachine(t)

	// The hard category has a single question which was already asked.
	state := domain.SessionState{
		domain.KeyScene:          scenes.SceneAnswer,
		domain.KeyQuestionType:   string(domain.QuestionHard),
		domain.KeyAskedQuestions: []string{"h1"},
	}

	reply, next := turn(t, m, withIntent(state, domain.IntentConfirm))
	assert.Contains(t, reply.Text, "answered every question in this category")
	assert.Len(t, reply.Buttons, 2, "exhaustion re-offers the welcome choices")
	assert.NotContains(t, next, domain.KeyQuestionID,
		"an exhausted category must not leave the session answer-pending")
}

func TestMachine_GlobalInterruptionWinsFromAnyScene(t *testing.T) {
	m := newTestMachine(t)

	for _, from := range []string{
		scenes.SceneWelcome,
		scenes.SceneStartTour,
		scenes.SceneStartGame,
		scenes.SceneQuestion,
		scenes.SceneAnswer,
	} {
		state := domain.SessionState{domain.KeyScene: from}
		req := domain.Request{
			Intents: map[string]domain.Intent{
				domain.IntentTellAbout: {Slots: map[string]domain.Slot{
					domain.SlotWho: {Value: "falconet"},
				}},
				// A competing local intent must lose to the global rule.
				domain.IntentStartTour: {},
			},
			Session: state,
		}

		reply, next := turn(t, m, req)
		assert.Equal(t, scenes.SceneWhoIs, next[domain.KeyScene], "from %s", from)
		assert.Contains(t, reply.Text, "Falconet sculpted")
		assert.Contains(t, reply.Text, "Shall we continue?")
		assert.Equal(t, from, next[domain.KeyPrevious], "breadcrumb from %s", from)
		if assert.NotNil(t, reply.Gallery) {
			assert.Equal(t, []string{"img1", "img2"}, reply.Gallery.ImageIDs)
		}
	}
}

func TestMachine_BreadcrumbRestoresInterruptedScene(t *testing.T) {
	m := newTestMachine(t)

	state := domain.SessionState{
		domain.KeyScene:    scenes.SceneWhoIs,
		domain.KeyPrevious: scenes.SceneStartGame,
	}

	_, next := turn(t, m, withIntent(state, domain.IntentConfirm))
	assert.Equal(t, scenes.SceneStartGame, next[domain.KeyScene])
}

func TestMachine_BreadcrumbFailsClosed(t *testing.T) {
	m := newTestMachine(t)

	// A breadcrumb naming a scene no release knows must not be trusted.
	state := domain.SessionState{
		domain.KeyScene:    scenes.SceneWhoIs,
		domain.KeyPrevious: "os.exec",
	}

	reply, next := turn(t, m, withIntent(state, domain.IntentConfirm))
	assert.Equal(t, scenes.SceneWelcome, next[domain.KeyScene])
	assert.Contains(t, reply.Text, "play a quiz")
}

func TestMachine_UnknownPersonaKeepsDigressionOpen(t *testing.T) {
	m := newTestMachine(t)

	state := domain.SessionState{domain.KeyScene: scenes.SceneQuestion, domain.KeyQuestionID: "s1"}
	req := domain.Request{
		Intents: map[string]domain.Intent{
			domain.IntentTellAbout: {Slots: map[string]domain.Slot{
				domain.SlotWho: {Value: "nobody"},
			}},
		},
		Session: state,
	}

	reply, next := turn(t, m, req)
	assert.Contains(t, reply.Text, "do not know that figure")
	assert.Equal(t, scenes.SceneWhoIs, next[domain.KeyScene])
	assert.Equal(t, scenes.SceneQuestion, next[domain.KeyPrevious])

	// "Yes" still resumes where the user left off.
	_, next = turn(t, m, withIntent(next, domain.IntentConfirm))
	assert.Equal(t, scenes.SceneQuestion, next[domain.KeyScene])
}

func TestMachine_UnknownStoredSceneFallsBackToWelcome(t *testing.T) {
	m := newTestMachine(t)

	reply, next := turn(t, m, domain.Request{
		Session: domain.SessionState{domain.KeyScene: "retired_scene"},
	})
	assert.Contains(t, reply.Text, "play a quiz")
	assert.Equal(t, scenes.SceneWelcome, next[domain.KeyScene])
}

func TestMachine_UndecodableStateStartsFresh(t *testing.T) {
	m := newTestMachine(t)

	reply, next := turn(t, m, domain.Request{
		Session: domain.SessionState{domain.KeyScene: map[string]any{"nested": true}},
	})
	assert.Contains(t, reply.Text, "play a quiz")
	assert.Equal(t, scenes.SceneWelcome, next[domain.KeyScene])
}

func TestMachine_NoMatchStaysAndRepliesAgain(t *testing.T) {
	m := newTestMachine(t)

	state := domain.SessionState{domain.KeyScene: scenes.SceneWelcome}
	reply, next := turn(t, m, domain.Request{Utterance: "mumble", Session: state})

	assert.Equal(t, scenes.SceneWelcome, next[domain.KeyScene])
	assert.Contains(t, reply.Text, "play a quiz")
}

func TestMachine_RepeatPromptWithoutPendingQuestion(t *testing.T) {
	m := newTestMachine(t)

	// Re-entering the answer scene after the verdict re-offers the prompt.
	state := domain.SessionState{
		domain.KeyScene:        scenes.SceneAnswer,
		domain.KeyQuestionType: string(domain.QuestionHard),
	}
	reply, _ := turn(t, m, domain.Request{Utterance: "hmm", Session: state})
	assert.Equal(t, "Want another hard question?", reply.Text)

	// With no stored category either, the session is genuinely stale.
	reply, next := turn(t, m, domain.Request{
		Session: domain.SessionState{domain.KeyScene: scenes.SceneAnswer},
	})
	assert.Contains(t, reply.Text, "I lost track of the question.")
	assert.Equal(t, scenes.SceneAnswer, next[domain.KeyScene])
}

func TestMachine_RejectAfterAnswerReturnsToWelcome(t *testing.T) {
	m := newTestMachine(t)

	state := domain.SessionState{
		domain.KeyScene:        scenes.SceneAnswer,
		domain.KeyQuestionType: string(domain.QuestionSimple),
	}

	_, next := turn(t, m, withIntent(state, domain.IntentReject))
	assert.Equal(t, scenes.SceneWelcome, next[domain.KeyScene])
}

func TestMachine_PreservesForeignStateKeys(t *testing.T) {
	m := newTestMachine(t)

	state := domain.SessionState{"ab_bucket": "b", "visits": 3}
	_, next := turn(t, m, withIntent(state, domain.IntentStartGame))

	assert.Equal(t, "b", next["ab_bucket"])
	assert.Equal(t, 3, next["visits"])
}

// failingContent errors on every read, simulating a broken content backend.
type failingContent struct{}

func (failingContent) QuestionsByType(context.Context, domain.QuestionType) ([]domain.Question, error) {
	return nil, errors.New("backend down")
}

func (failingContent) QuestionByID(context.Context, string) (domain.Question, error) {
	return domain.Question{}, errors.New("backend down")
}

func (failingContent) PersonaByID(context.Context, string) (domain.Persona, error) {
	return domain.Persona{}, errors.New("backend down")
}

var _ ports.ContentStore = failingContent{}

func TestMachine_SceneFailureDegradesToWelcome(t *testing.T) {
	m := scenes.NewMachine(failingContent{}, scenes.WithRandSource(rand.NewSource(1)))

	state := domain.SessionState{
		domain.KeyScene:      scenes.SceneQuestion,
		domain.KeyQuestionID: "s1",
	}

	reply, next, err := m.HandleTurn(context.Background(), domain.Request{
		NumericEntities: []int{2},
		Session:         state,
	})
	require.NoError(t, err, "a failed turn still yields a usable reply")
	assert.True(t, strings.HasPrefix(reply.Text, "Something went wrong on my side."))
	assert.Equal(t, scenes.SceneWelcome, next[domain.KeyScene])
	assert.NotContains(t, next, domain.KeyQuestionID)
}

func TestMachine_LifecycleHooks(t *testing.T) {
	var transitions []string
	var turns int
	hooks := domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.SceneEvent) {
			label := e.From + "->" + e.Scene
			if e.Global {
				label += " (global)"
			}
			transitions = append(transitions, label)
		},
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			turns++
		},
	}

	m := newTestMachine(t, scenes.WithLifecycleHooks(hooks))

	_, state := turn(t, m, withIntent(domain.SessionState{}, domain.IntentStartGame))
	req := domain.Request{
		Intents: map[string]domain.Intent{
			domain.IntentTellAbout: {Slots: map[string]domain.Slot{
				domain.SlotWho: {Value: "falconet"},
			}},
		},
		Session: state,
	}
	turn(t, m, req)

	assert.Equal(t, []string{
		"welcome->start_game",
		"start_game->who_is (global)",
	}, transitions)
	assert.Equal(t, 2, turns)
}

func TestMachine_RegistryIsClosed(t *testing.T) {
	m := newTestMachine(t)

	assert.Equal(t, []string{
		scenes.SceneAnswer,
		scenes.SceneQuestion,
		scenes.SceneStartGame,
		scenes.SceneStartTour,
		scenes.SceneWelcome,
		scenes.SceneWhoIs,
	}, m.Registry().IDs())
	assert.Equal(t, scenes.SceneWelcome, m.Registry().Default().ID())
	assert.False(t, m.Registry().Contains("eval"))
}
