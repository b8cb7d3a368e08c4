package ports

import (
	"context"

	"github.com/skene-dev/skene/pkg/domain"
)

// ContentStore defines how the engine reads the static question and persona
// tables. Implementations are read-only and may cache the data in memory
// for the process lifetime.
type ContentStore interface {
	// QuestionsByType returns all questions of the given category.
	QuestionsByType(ctx context.Context, t domain.QuestionType) ([]domain.Question, error)

	// QuestionByID returns a single question.
	// Returns domain.ErrNotFound if the id names no row.
	QuestionByID(ctx context.Context, id string) (domain.Question, error)

	// PersonaByID returns a single persona record.
	// Returns domain.ErrNotFound if the id names no row.
	PersonaByID(ctx context.Context, id string) (domain.Persona, error)
}
