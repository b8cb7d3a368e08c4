package memory

import (
	"context"
	"fmt"

	"github.com/skene-dev/skene/pkg/domain"
)

// Content implements ports.ContentStore over in-memory tables.
// It backs tests and embedded setups where no content directory exists.
type Content struct {
	questions []domain.Question
	personas  []domain.Persona
}

// NewContent creates a content store from the given records.
func NewContent(questions []domain.Question, personas []domain.Persona) *Content {
	return &Content{
		questions: append([]domain.Question{}, questions...),
		personas:  append([]domain.Persona{}, personas...),
	}
}

// QuestionsByType returns all questions of the given category.
func (c *Content) QuestionsByType(ctx context.Context, t domain.QuestionType) ([]domain.Question, error) {
	var out []domain.Question
	for _, q := range c.questions {
		if q.Type == t {
			out = append(out, q)
		}
	}
	return out, nil
}

// QuestionByID returns a single question record.
func (c *Content) QuestionByID(ctx context.Context, id string) (domain.Question, error) {
	for _, q := range c.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.Question{}, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
}

// PersonaByID returns a single persona record.
func (c *Content) PersonaByID(ctx context.Context, id string) (domain.Persona, error) {
	for _, p := range c.personas {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Persona{}, fmt.Errorf("persona %s: %w", id, domain.ErrNotFound)
}
