package domain

// QuestionType is the closed category of quiz questions.
type QuestionType string

const (
	QuestionUnknown   QuestionType = "unknown"
	QuestionSimple    QuestionType = "simple"
	QuestionHard      QuestionType = "hard"
	QuestionAttention QuestionType = "attention"
)

// ParseQuestionType maps a raw category string onto the closed set.
// Anything unrecognized is QuestionUnknown, never silently "simple".
func ParseQuestionType(raw string) QuestionType {
	switch raw {
	case string(QuestionSimple):
		return QuestionSimple
	case string(QuestionHard):
		return QuestionHard
	case string(QuestionAttention):
		return QuestionAttention
	default:
		return QuestionUnknown
	}
}

// QuestionTypeFromSlot reads the category from the question_type slot of a
// recognized intent. A missing intent or slot yields QuestionUnknown.
func QuestionTypeFromSlot(req Request, intentName string) QuestionType {
	raw, ok := req.SlotValue(intentName, SlotQuestionType)
	if !ok {
		return QuestionUnknown
	}
	return ParseQuestionType(raw)
}

// QuestionTypeFromState reads the category stored by a previous turn.
func QuestionTypeFromState(snap Snapshot) QuestionType {
	return ParseQuestionType(snap.QuestionType)
}

// DisplayName is the user-facing name of the category.
func (t QuestionType) DisplayName() string {
	switch t {
	case QuestionSimple:
		return "easy"
	case QuestionHard:
		return "hard"
	case QuestionAttention:
		return "attention"
	default:
		return "unknown"
	}
}

// Question is a read-only quiz record sourced from static content.
type Question struct {
	ID         string
	Type       QuestionType
	Text       string
	Answer     int
	ReplyTrue  string
	ReplyFalse string
}

// Persona is a read-only figure record for the "tell me about X" digression.
type Persona struct {
	ID      string
	Short   string
	Gallery []string
}
