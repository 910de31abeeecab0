package cli

import (
	"log/slog"

	"github.com/aretw0/adrift/internal/config"
	"github.com/aretw0/adrift/pkg/adapters/openai"
	"github.com/aretw0/adrift/pkg/completion"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/modes"
	"github.com/aretw0/adrift/pkg/ports"
)

// newCompleter builds the storyteller client: the OpenAI-compatible adapter behind the
// apology fallback. Timeouts are not downgraded so the session can report them.
func newCompleter(cfg *config.Config, hooks domain.LifecycleHooks, logger *slog.Logger) ports.Completer {
	client := openai.New(openai.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.APIURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	}, openai.WithHooks(hooks), openai.WithLogger(logger))

	return completion.WithFallback(client, completion.WithLogger(logger))
}

// loadThemes returns the themes file's themes, or nil for the built-in set.
func loadThemes(path string) ([]domain.Theme, error) {
	if path == "" {
		return nil, nil
	}
	return modes.LoadThemesFile(path)
}
