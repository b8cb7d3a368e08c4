package cli

import (
	"strconv"
	"strings"

	"github.com/skene-dev/skene/pkg/domain"
)

// classify is the REPL's stand-in for the production NLU step: a keyword
// classifier good enough to exercise every scene locally. The webhook path
// never uses it; real intents arrive pre-classified from the platform.
func classify(utterance string) (map[string]domain.Intent, []int) {
	intents := make(map[string]domain.Intent)
	lower := strings.ToLower(strings.TrimSpace(utterance))

	switch {
	case strings.HasPrefix(lower, "who is "):
		intents[domain.IntentTellAbout] = whoIntent(strings.TrimPrefix(lower, "who is "))
	case strings.HasPrefix(lower, "tell me about "):
		intents[domain.IntentTellAbout] = whoIntent(strings.TrimPrefix(lower, "tell me about "))
	}

	if strings.Contains(lower, "tour") {
		intents[domain.IntentStartTour] = domain.Intent{}
	}
	if strings.Contains(lower, "quiz") || strings.Contains(lower, "game") || strings.Contains(lower, "play") {
		intents[domain.IntentStartGame] = domain.Intent{}
	}

	for keyword, category := range map[string]domain.QuestionType{
		"easy":      domain.QuestionSimple,
		"simple":    domain.QuestionSimple,
		"hard":      domain.QuestionHard,
		"attention": domain.QuestionAttention,
	} {
		if strings.Contains(lower, keyword) {
			intents[domain.IntentGameQuestion] = domain.Intent{
				Slots: map[string]domain.Slot{
					domain.SlotQuestionType: {Value: string(category)},
				},
			}
			break
		}
	}

	switch lower {
	case "yes", "y", "yeah", "sure", "ok":
		intents[domain.IntentConfirm] = domain.Intent{}
	case "no", "n", "nope":
		intents[domain.IntentReject] = domain.Intent{}
	}

	var numbers []int
	for _, field := range strings.Fields(lower) {
		if n, err := strconv.Atoi(field); err == nil {
			numbers = append(numbers, n)
		}
	}

	return intents, numbers
}

func whoIntent(who string) domain.Intent {
	return domain.Intent{
		Slots: map[string]domain.Slot{
			domain.SlotWho: {Value: strings.ReplaceAll(strings.TrimSpace(who), " ", "_")},
		},
	}
}
