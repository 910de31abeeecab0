package modes

import (
	"context"
	"log/slog"

	"github.com/aretw0/adrift/internal/logging"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/parser"
	"github.com/aretw0/adrift/pkg/ports"
)

// Mode identifiers.
const (
	WanderID    = "wander"
	EvaluateID  = "evaluate"
	AdventureID = "adventure"
)

// Mode is a narrative state machine driven by choice tokens.
type Mode interface {
	// ID is the stable identifier of the mode.
	ID() string

	// Entry is the menu line that selects the mode.
	Entry() ports.MenuOption

	// BeginOrResume starts a new playthrough, or re-renders the current
	// scenario when the mode was left mid-story.
	BeginOrResume(ctx context.Context) error

	// Advance applies a validated token. A false result ends story mode.
	Advance(ctx context.Context, token string) (bool, error)

	// Summarize asks the storyteller for a recap of the choices made so far.
	Summarize(ctx context.Context) (string, error)

	// IsTerminal reports whether the playthrough has ended.
	IsTerminal() bool

	// Turn is the number of choices committed so far.
	Turn() int

	// ChoiceThreshold is the turn from which the 4th token is accepted. 0 means never.
	ChoiceThreshold() int
}

// ThemeSelector is implemented by modes that need a theme before the story starts.
type ThemeSelector interface {
	AwaitingTheme() bool
	IsValidTheme(token string) bool
}

// Deps are the collaborators shared by every mode of a session.
type Deps struct {
	Completer ports.Completer
	Surface   ports.Surface
	Themes    []domain.Theme // nil selects the built-in catalogue
	Logger    *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return logging.NewNop()
	}
	return d.Logger
}

// progress is the committed state of one playthrough.
type progress struct {
	turn    int
	history []domain.Turn
	current *domain.StoryContext
	last    string // raw text of the last scenario, for resume
}

// next returns the progress after choosing token, without the new context.
func (p progress) next(token string) progress {
	history := make([]domain.Turn, len(p.history), len(p.history)+1)
	copy(history, p.history)
	return progress{
		turn:    p.turn + 1,
		history: append(history, domain.NewTurn(token, p.current)),
		current: p.current,
		last:    p.last,
	}
}

func (p progress) started() bool {
	return p.current != nil
}

// base carries what every mode needs: collaborators and committed progress.
// Modes are not safe for concurrent use; the session serializes calls.
type base struct {
	completer ports.Completer
	surface   ports.Surface
	logger    *slog.Logger
	p         progress
}

func newBase(deps Deps, id string) base {
	return base{
		completer: deps.Completer,
		surface:   deps.Surface,
		logger:    deps.logger().With("mode", id),
	}
}

// Turn implements Mode.
func (b *base) Turn() int {
	return b.p.turn
}

// History returns a copy of the committed choice history.
func (b *base) History() []domain.Turn {
	out := make([]domain.Turn, len(b.p.history))
	copy(out, b.p.history)
	return out
}

// Context returns the story context currently offered to the player, or nil.
func (b *base) Context() *domain.StoryContext {
	return b.p.current
}

// generate requests a scenario and parses it with rules.
func (b *base) generate(ctx context.Context, prompt, role string, rules parser.Rules) (*domain.StoryContext, string, error) {
	text, err := b.completer.Complete(ctx, prompt, role)
	if err != nil {
		return nil, "", err
	}
	parsed := parser.Parse(text, rules)
	return &parsed, text, nil
}

func (b *base) commit(p progress) {
	b.p = p
	b.logger.Debug("turn committed", "turn", p.turn)
}
