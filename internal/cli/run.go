package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"log/slog"

	"github.com/skene-dev/skene"
	"github.com/skene-dev/skene/internal/adapters/csvstore"
	"github.com/skene-dev/skene/internal/adapters/file"
	"github.com/skene-dev/skene/internal/logging"
	"github.com/skene-dev/skene/internal/presentation/tui"
	"github.com/skene-dev/skene/pkg/domain"
	"github.com/skene-dev/skene/pkg/session"
)

// PlayOptions contains all the configuration for the play command.
type PlayOptions struct {
	ContentDir string
	SessionID  string
	Fresh      bool
	Debug      bool
	NoBanner   bool
}

// RunPlay drives an interactive dialog against the engine on the terminal.
// Input is classified by a small keyword matcher; the production NLU lives
// on the platform side of the webhook, not here.
func RunPlay(opts PlayOptions) error {
	ctx := context.Background()

	content, err := csvstore.New(opts.ContentDir)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	logger := createLogger(opts.Debug)
	engine, err := skene.New(content, skene.WithLogger(logger))
	if err != nil {
		return err
	}

	manager := session.NewManager(file.New(""), session.WithLogger(logger))
	if opts.Fresh && opts.SessionID != "" {
		if err := manager.Delete(ctx, opts.SessionID); err != nil {
			logger.Warn("failed to reset session", "session_id", opts.SessionID, "err", err)
		}
	}

	state := domain.SessionState{}
	if opts.SessionID != "" {
		state, err = manager.LoadOrStart(ctx, opts.SessionID)
		if err != nil {
			return fmt.Errorf("failed to open session: %w", err)
		}
	}

	if !opts.NoBanner {
		tui.PrintBanner()
	}
	render := tui.NewRenderer()

	// The opening turn carries no intents, which lands on Welcome.
	state, err = playTurn(ctx, engine, render, domain.Request{Session: state})
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		intents, numbers := classify(line)
		if opts.Debug {
			logger.Debug("classified utterance",
				"utterance", line, "intents", intentNames(intents), "numbers", numbers)
		}

		state, err = playTurn(ctx, engine, render, domain.Request{
			Utterance:       line,
			Intents:         intents,
			NumericEntities: numbers,
			Session:         state,
		})
		if err != nil {
			return err
		}

		if opts.SessionID != "" {
			if err := manager.Save(ctx, opts.SessionID, state); err != nil {
				logger.Warn("failed to persist session", "session_id", opts.SessionID, "err", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}
	return nil
}

// playTurn runs one turn and prints the rendered reply.
func playTurn(ctx context.Context, engine *skene.Engine, render func(string) (string, error), req domain.Request) (domain.SessionState, error) {
	reply, state, err := engine.HandleTurn(ctx, req)
	if err != nil {
		return nil, err
	}

	out, rerr := render(replyMarkdown(reply))
	if rerr != nil {
		out = reply.Text + "\n"
	}
	fmt.Print(out)
	return state, nil
}

// replyMarkdown formats a reply for the terminal: text, then the suggest
// buttons as a bullet list.
func replyMarkdown(reply domain.Reply) string {
	var b strings.Builder
	b.WriteString(reply.Text)
	if len(reply.Buttons) > 0 {
		b.WriteString("\n")
		for _, btn := range reply.Buttons {
			b.WriteString(fmt.Sprintf("\n- %s", btn.Title))
		}
	}
	return b.String()
}

func intentNames(intents map[string]domain.Intent) []string {
	names := make([]string, 0, len(intents))
	for name := range intents {
		names = append(names, name)
	}
	return names
}

func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}
