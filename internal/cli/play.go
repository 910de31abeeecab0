package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/adrift/internal/presentation/tui"
	"github.com/aretw0/adrift/pkg/ports"
	"github.com/aretw0/adrift/pkg/runner"
	"github.com/aretw0/adrift/pkg/session"
)

// Rendering names shown by the "settings" command.
const (
	RenderingMarkdown = "markdown"
	RenderingPlain    = "plain"
	RenderingJSON     = "json"
)

// RunPlay runs one interactive session until the input ends or the user quits.
func RunPlay(ctx context.Context, opts PlayOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	cfg := opts.Config
	logger := createLogger(opts.Debug)
	logger.Debug("Configuration loaded", "config", cfg)

	themes, err := loadThemes(cfg.ThemesFile)
	if err != nil {
		return fmt.Errorf("failed to load themes: %w", err)
	}

	hooks := createDebugHooks(logger)
	completer := opts.Completer
	if completer == nil {
		completer = newCompleter(cfg, hooks, logger)
	}

	var (
		terminal  ports.Terminal
		rendering string
	)
	switch {
	case opts.JSON:
		terminal, rendering = runner.NewJSONSurface(opts.In, opts.Out), RenderingJSON
	case opts.Plain || cfg.Plain:
		terminal, rendering = runner.NewTextSurface(opts.In, opts.Out,
			runner.WithMaxInputSize(cfg.MaxInputSize),
		), RenderingPlain
	default:
		tui.PrintBanner(opts.Out)
		terminal, rendering = runner.NewTextSurface(opts.In, opts.Out,
			runner.WithMaxInputSize(cfg.MaxInputSize),
			runner.WithRenderer(tui.NewRenderer(tui.DefaultWrap)),
		), RenderingMarkdown
	}

	orch, err := session.New(completer, terminal,
		session.WithLogger(logger),
		session.WithHooks(hooks),
		session.WithThemes(themes),
		session.WithSettings(session.Settings{
			Model:     cfg.Model,
			Timeout:   cfg.Timeout,
			Rendering: rendering,
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	logger.Info("Session Created", "session_id", orch.ID())

	// The runner owns SIGINT: it cancels the turn in flight or ends an idle prompt.
	runErr := runner.New(terminal, orch, runner.WithLogger(logger)).Run(ctx)

	if !opts.JSON {
		printSystemMessage(opts.Out, "Farewell, wanderer.")
	}
	return handleExecutionError(runErr)
}
