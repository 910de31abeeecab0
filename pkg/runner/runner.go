package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/adrift/internal/logging"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/ports"
)

// QuitCommand ends the interactive loop.
const QuitCommand = "quit"

const msgInterrupted = "Interrupted. The story is where you left it."

// Session is the part of session.Orchestrator the runner drives.
type Session interface {
	Greet()
	Handle(ctx context.Context, input string) error
}

// Runner reads lines from a Terminal and hands them to a Session.
type Runner struct {
	term    ports.Terminal
	session Session
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for internal debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a Runner over term and sess.
func New(term ports.Terminal, sess Session, opts ...Option) *Runner {
	r := &Runner{
		term:    term,
		session: sess,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run greets the user and loops until input is exhausted, the user types
// "quit", the user interrupts an idle prompt or ctx is done.
// An interrupt while a turn is in flight cancels that turn only.
func (r *Runner) Run(ctx context.Context) error {
	signals := NewSignalManager(ctx)
	defer signals.Stop()

	r.session.Greet()

	for {
		input, err := r.term.ReadLine(signals.Context())
		if err != nil {
			signals.CheckRace()
			if errors.Is(err, io.EOF) {
				r.logger.Debug("Runner: input exhausted")
				return nil
			}
			if signals.Context().Err() != nil {
				r.logger.Debug("Runner: interrupted while idle")
				return nil
			}
			return err
		}

		if strings.EqualFold(input, QuitCommand) {
			r.logger.Debug("Runner: quit requested")
			return nil
		}

		if err := r.session.Handle(signals.Context(), input); err != nil {
			switch {
			case errors.Is(err, domain.ErrBusy):
				r.logger.Debug("Runner: input dropped while busy", "input", input)
			case errors.Is(err, context.Canceled) && ctx.Err() == nil:
				r.logger.Debug("Runner: turn interrupted")
				r.term.AppendLine(msgInterrupted)
				signals.Reset()
			case ctx.Err() != nil:
				return nil
			default:
				return err
			}
		}
	}
}
