package domain

// Slot is a named, typed value extracted from the utterance for an intent.
type Slot struct {
	Value string
}

// Intent is a classified user goal with its slot payload.
type Intent struct {
	Slots map[string]Slot
}

// Request is the immutable input for a single turn. It is owned by the
// transport layer; the engine only reads it.
type Request struct {
	// Utterance is the raw user text, kept for diagnostics only.
	Utterance string

	// Intents maps intent name to its recognized payload.
	Intents map[string]Intent

	// NumericEntities holds the numeric NLU entities of the turn, in
	// recognition order.
	NumericEntities []int

	// Session is the state blob carried over from the previous turn.
	Session SessionState
}

// HasIntent reports whether the turn carries the named intent.
func (r Request) HasIntent(name string) bool {
	_, ok := r.Intents[name]
	return ok
}

// SlotValue returns the value of a slot on a recognized intent.
// The second return is false if the intent or the slot is missing.
func (r Request) SlotValue(intent, slot string) (string, bool) {
	in, ok := r.Intents[intent]
	if !ok {
		return "", false
	}
	s, ok := in.Slots[slot]
	if !ok {
		return "", false
	}
	return s.Value, true
}
