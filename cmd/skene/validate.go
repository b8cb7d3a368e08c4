package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/skene-dev/skene"
	"github.com/skene-dev/skene/internal/adapters/csvstore"
	"github.com/skene-dev/skene/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the content tables for consistency",
	Long:  `Loads the CSV content tables and reports rows the engine could not serve: unknown categories, empty texts or verdicts, personas without a description.`,
	Run: func(cmd *cobra.Command, args []string) {
		contentDir, _ := cmd.Flags().GetString("content")
		if err := runValidate(contentDir); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Content is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(dir string) error {
	store, err := csvstore.New(dir)
	if err != nil {
		return err
	}

	var problems []string

	counts := make(map[domain.QuestionType]int)
	for _, q := range store.Questions() {
		counts[q.Type]++
		if q.Type == domain.QuestionUnknown {
			problems = append(problems, fmt.Sprintf("question %q: unknown category", q.ID))
		}
		if q.Text == "" {
			problems = append(problems, fmt.Sprintf("question %q: empty text", q.ID))
		}
		if q.ReplyTrue == "" || q.ReplyFalse == "" {
			problems = append(problems, fmt.Sprintf("question %q: missing verdict reply", q.ID))
		}
	}

	// Every selectable category needs at least one question, or the quiz
	// dead-ends straight into the exhaustion reply.
	for _, t := range []domain.QuestionType{domain.QuestionSimple, domain.QuestionHard, domain.QuestionAttention} {
		if counts[t] == 0 {
			problems = append(problems, fmt.Sprintf("category %q has no questions", t))
		}
	}

	for _, p := range store.Personas() {
		if p.Short == "" {
			problems = append(problems, fmt.Sprintf("persona %q: empty description", p.ID))
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Println("- " + p)
		}
		return fmt.Errorf("%d problem(s) found", len(problems))
	}

	// Registry closure: the engine constructs its closed scene set over the
	// validated content without error.
	engine, err := skene.New(store)
	if err != nil {
		return fmt.Errorf("failed to build engine over content: %w", err)
	}

	fmt.Printf("Checked %d questions and %d personas across scenes %s.\n",
		len(store.Questions()), len(store.Personas()), strings.Join(engine.SceneIDs(), ", "))
	return nil
}
