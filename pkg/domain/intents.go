package domain

// Intent identifiers produced by the upstream NLU classifier.
// The engine never inspects utterance text itself; it only reacts to these.
const (
	IntentStartTour    = "start_tour"
	IntentStartGame    = "start_game"
	IntentGameQuestion = "game_question"
	IntentTellAbout    = "tell_about"
	IntentConfirm      = "YANDEX.CONFIRM"
	IntentReject       = "YANDEX.REJECT"
)

// Slot names the engine reads from intent payloads.
const (
	SlotQuestionType = "question_type"
	SlotWho          = "who"
)
