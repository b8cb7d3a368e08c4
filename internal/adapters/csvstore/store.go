package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/skene-dev/skene/pkg/domain"
)

// File names the store expects inside the content directory.
const (
	QuestionsFile = "questions.csv"
	PersonasFile  = "persons.csv"
)

// Store implements ports.ContentStore over the CSV content tables.
// The data is static for the process lifetime, so both tables are loaded
// once at construction and served from memory afterwards.
type Store struct {
	questions       map[string]domain.Question
	questionsByType map[domain.QuestionType][]domain.Question
	personas        map[string]domain.Persona
}

// New loads the content tables from dir.
func New(dir string) (*Store, error) {
	s := &Store{
		questions:       make(map[string]domain.Question),
		questionsByType: make(map[domain.QuestionType][]domain.Question),
		personas:        make(map[string]domain.Persona),
	}
	if err := s.loadQuestions(filepath.Join(dir, QuestionsFile)); err != nil {
		return nil, err
	}
	if err := s.loadPersonas(filepath.Join(dir, PersonasFile)); err != nil {
		return nil, err
	}
	return s, nil
}

// QuestionsByType returns all questions of the given category. An unknown
// category is not an error; it simply has no questions.
func (s *Store) QuestionsByType(ctx context.Context, t domain.QuestionType) ([]domain.Question, error) {
	rows := s.questionsByType[t]
	out := make([]domain.Question, len(rows))
	copy(out, rows)
	return out, nil
}

// QuestionByID returns a single question record.
func (s *Store) QuestionByID(ctx context.Context, id string) (domain.Question, error) {
	q, ok := s.questions[id]
	if !ok {
		return domain.Question{}, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	return q, nil
}

// PersonaByID returns a single persona record.
func (s *Store) PersonaByID(ctx context.Context, id string) (domain.Persona, error) {
	p, ok := s.personas[id]
	if !ok {
		return domain.Persona{}, fmt.Errorf("persona %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// Questions returns every loaded question, sorted by id. Validation
// tooling uses it; the engine itself only reads by category or id.
func (s *Store) Questions() []domain.Question {
	out := make([]domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Personas returns every loaded persona, sorted by id.
func (s *Store) Personas() []domain.Persona {
	out := make([]domain.Persona, 0, len(s.personas))
	for _, p := range s.personas {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) loadQuestions(path string) error {
	rows, err := readTable(path, []string{"id", "type", "text", "answer", "reply_true", "reply_false"})
	if err != nil {
		return err
	}

	for i, row := range rows {
		answer, err := strconv.Atoi(row["answer"])
		if err != nil {
			return fmt.Errorf("%s row %d: non-numeric answer %q", path, i+2, row["answer"])
		}
		q := domain.Question{
			ID:         row["id"],
			Type:       domain.ParseQuestionType(row["type"]),
			Text:       row["text"],
			Answer:     answer,
			ReplyTrue:  row["reply_true"],
			ReplyFalse: row["reply_false"],
		}
		if _, dup := s.questions[q.ID]; dup {
			return fmt.Errorf("%s row %d: duplicate question id %q", path, i+2, q.ID)
		}
		s.questions[q.ID] = q
		s.questionsByType[q.Type] = append(s.questionsByType[q.Type], q)
	}
	return nil
}

func (s *Store) loadPersonas(path string) error {
	rows, err := readTable(path, []string{"id", "short", "gallery"})
	if err != nil {
		return err
	}

	for i, row := range rows {
		p := domain.Persona{
			ID:    row["id"],
			Short: row["short"],
		}
		if g := strings.TrimSpace(row["gallery"]); g != "" {
			p.Gallery = strings.Split(g, "|")
		}
		if _, dup := s.personas[p.ID]; dup {
			return fmt.Errorf("%s row %d: duplicate persona id %q", path, i+2, p.ID)
		}
		s.personas[p.ID] = p
	}
	return nil
}

// readTable reads a CSV file with a header row into column-keyed maps.
func readTable(path string, required []string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open content table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(required)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(required))
		for _, col := range required {
			row[col] = record[index[col]]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
