package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Session state keys recognized by the engine. Everything else in the blob
// is preserved untouched across turns.
const (
	KeyScene          = "scene"
	KeyQuestionType   = "question_type"
	KeyAskedQuestions = "asked_questions"
	KeyQuestionID     = "question_id"
	KeyPrevious       = "previous"
)

// SessionState is the opaque key/value payload round-tripped by the caller
// every turn. The engine has no other memory; durability is the transport
// layer's responsibility.
type SessionState map[string]any

// Delta is a partial session-state update produced by a scene.
// A nil value marks the key for removal.
type Delta map[string]any

// Snapshot is the typed view over the keys the engine understands.
type Snapshot struct {
	Scene          string   `mapstructure:"scene"`
	QuestionType   string   `mapstructure:"question_type"`
	AskedQuestions []string `mapstructure:"asked_questions"`
	QuestionID     string   `mapstructure:"question_id"`
	Previous       string   `mapstructure:"previous"`
}

// Snapshot decodes the blob into its typed view. Values of unexpected type
// are coerced where possible; a blob that cannot be decoded at all yields
// an error and the caller falls back to a fresh session.
func (s SessionState) Snapshot() (Snapshot, error) {
	var snap Snapshot
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &snap,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to build state decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(s)); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode session state: %w", err)
	}
	return snap, nil
}

// Merge returns a new blob with the delta applied. The receiver is never
// mutated; turns for the same session may be retried by the caller.
func (s SessionState) Merge(delta Delta) SessionState {
	next := make(SessionState, len(s)+len(delta))
	for k, v := range s {
		next[k] = v
	}
	for k, v := range delta {
		if v == nil {
			delete(next, k)
			continue
		}
		next[k] = v
	}
	return next
}

// Asked reports whether the question id was already delivered this session.
func (sn Snapshot) Asked(id string) bool {
	for _, q := range sn.AskedQuestions {
		if q == id {
			return true
		}
	}
	return false
}
