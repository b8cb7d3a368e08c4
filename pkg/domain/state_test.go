package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/skene-dev/skene/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionState_Snapshot(t *testing.T) {
	state := domain.SessionState{
		domain.KeyScene:          "question",
		domain.KeyQuestionType:   "hard",
		domain.KeyAskedQuestions: []any{"q1", "q2"},
		domain.KeyQuestionID:     "q2",
		domain.KeyPrevious:       "start_game",
		"foreign":                map[string]any{"ignored": true},
	}

	snap, err := state.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "question", snap.Scene)
	assert.Equal(t, "hard", snap.QuestionType)
	assert.Equal(t, []string{"q1", "q2"}, snap.AskedQuestions)
	assert.Equal(t, "q2", snap.QuestionID)
	assert.Equal(t, "start_game", snap.Previous)
}

func TestSessionState_SnapshotFromJSON(t *testing.T) {
	// State that went through a JSON round trip: slices arrive as []any.
	var state domain.SessionState
	raw := `{"scene":"answer","asked_questions":["q1"],"question_id":"q1"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &state))

	snap, err := state.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "answer", snap.Scene)
	assert.Equal(t, []string{"q1"}, snap.AskedQuestions)
	assert.True(t, snap.Asked("q1"))
	assert.False(t, snap.Asked("q2"))
}

func TestSessionState_SnapshotError(t *testing.T) {
	state := domain.SessionState{
		domain.KeyScene: map[string]any{"not": "a string"},
	}

	_, err := state.Snapshot()
	assert.Error(t, err)
}

func TestSessionState_Merge(t *testing.T) {
	original := domain.SessionState{
		domain.KeyScene:      "question",
		domain.KeyQuestionID: "q1",
		"foreign":            "kept",
	}

	next := original.Merge(domain.Delta{
		domain.KeyScene:      "answer",
		domain.KeyQuestionID: nil, // nil deletes
		"added":              1,
	})

	assert.Equal(t, "answer", next[domain.KeyScene])
	assert.NotContains(t, next, domain.KeyQuestionID)
	assert.Equal(t, "kept", next["foreign"])
	assert.Equal(t, 1, next["added"])

	// The receiver is never mutated.
	assert.Equal(t, "question", original[domain.KeyScene])
	assert.Equal(t, "q1", original[domain.KeyQuestionID])
}

func TestSessionState_MergeNilDelta(t *testing.T) {
	original := domain.SessionState{"a": 1}
	next := original.Merge(nil)
	assert.Equal(t, domain.SessionState{"a": 1}, next)
}
