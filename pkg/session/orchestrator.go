package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/aretw0/adrift/internal/logging"
	"github.com/aretw0/adrift/pkg/adapters/memory"
	"github.com/aretw0/adrift/pkg/completion"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/modes"
	"github.com/aretw0/adrift/pkg/ports"
	"github.com/google/uuid"
)

// knownCommands are offered as suggestions while greeting.
var knownCommands = []string{domain.TriggerToken, domain.CommandRoadmap, domain.CommandSettings, domain.CommandExit}

// Orchestrator drives one story session.
type Orchestrator struct {
	id       string
	surface  ports.Surface
	registry *modes.Registry
	guard    ports.BusyGuard
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	settings Settings
	themes   []domain.Theme

	mu     sync.RWMutex // Guards the fields below for Status readers
	phase  domain.SessionPhase
	active modes.Mode
	turn   int
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithID sets the session id. Defaults to a random UUID.
func WithID(id string) Option {
	return func(o *Orchestrator) {
		o.id = id
	}
}

// WithGuard replaces the in-process busy guard, e.g. with a Redis one shared by replicas.
func WithGuard(guard ports.BusyGuard) Option {
	return func(o *Orchestrator) {
		o.guard = guard
	}
}

// WithHooks registers lifecycle hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(o *Orchestrator) {
		o.hooks = hooks
	}
}

// WithLogger configures the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithSettings sets what the "settings" command displays.
func WithSettings(s Settings) Option {
	return func(o *Orchestrator) {
		o.settings = s
	}
}

// WithThemes replaces the built-in adventure themes.
func WithThemes(themes []domain.Theme) Option {
	return func(o *Orchestrator) {
		o.themes = themes
	}
}

// New creates an Orchestrator rendering into surface and completing through completer.
func New(completer ports.Completer, surface ports.Surface, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		surface: surface,
		logger:  logging.NewNop(),
		phase:   domain.PhaseGreeting,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	if o.guard == nil {
		o.guard = memory.NewGuard()
	}
	o.logger = o.logger.With("session_id", o.id)

	registry, err := modes.NewRegistry(modes.Deps{
		Completer: completer,
		Surface:   surface,
		Themes:    o.themes,
		Logger:    o.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build modes: %w", err)
	}
	o.registry = registry
	return o, nil
}

// ID returns the session id.
func (o *Orchestrator) ID() string {
	return o.id
}

// Surface returns the surface the session renders into.
func (o *Orchestrator) Surface() ports.Surface {
	return o.surface
}

// Greet renders the greeting.
func (o *Orchestrator) Greet() {
	o.surface.AppendLine(greetingText)
}

// Status returns a snapshot of the session.
func (o *Orchestrator) Status(ctx context.Context) domain.Status {
	o.mu.RLock()
	s := domain.Status{
		SessionID: o.id,
		Phase:     o.phase,
		Turn:      o.turn,
	}
	if o.active != nil {
		s.Mode = o.active.ID()
	}
	o.mu.RUnlock()

	busy, err := o.guard.Busy(ctx, o.id)
	if err != nil {
		o.logger.Warn("failed to read busy flag", "err", err)
	}
	s.Busy = busy
	return s
}

// Handle processes one line of input. Input arriving while a previous line is
// still being handled is dropped and ErrBusy is returned.
// Invalid input is answered on the surface and is not an error.
func (o *Orchestrator) Handle(ctx context.Context, raw string) error {
	return o.HandleThen(ctx, raw, nil)
}

// HandleThen is Handle with a callback that runs after input is re-enabled
// but before the busy guard is released. It is not called for dropped input.
func (o *Orchestrator) HandleThen(ctx context.Context, raw string, done func()) error {
	release, ok, err := o.guard.TryAcquire(ctx, o.id)
	if err != nil {
		return fmt.Errorf("failed to acquire busy guard: %w", err)
	}
	if !ok {
		o.logger.Debug("input dropped, session busy")
		o.emitDropped(ctx, raw)
		return domain.ErrBusy
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			o.logger.Warn("failed to release busy guard (will expire via TTL)", "err", err)
		}
	}()
	if done != nil {
		defer done()
	}

	o.surface.SetInputEnabled(false)
	defer o.surface.SetInputEnabled(true)

	input := strings.TrimSpace(raw)
	if input == "" {
		return nil
	}
	return o.dispatch(ctx, input)
}

func (o *Orchestrator) dispatch(ctx context.Context, input string) error {
	switch strings.ToLower(input) {
	case domain.CommandExit:
		o.exit()
		return nil
	case domain.CommandRoadmap:
		o.surface.AppendLine(roadmapText)
		return nil
	case domain.CommandSettings:
		o.surface.AppendLine(o.settings.Render())
		return nil
	}

	o.mu.RLock()
	phase, active := o.phase, o.active
	o.mu.RUnlock()

	switch phase {
	case domain.PhaseGreeting:
		o.greeting(input)
		return nil
	case domain.PhaseMenu:
		return o.selectMode(ctx, input)
	default:
		return o.advance(ctx, active, input)
	}
}

func (o *Orchestrator) exit() {
	o.surface.AppendLine(msgReturning)
	o.mu.RLock()
	greeting := o.phase == domain.PhaseGreeting
	o.mu.RUnlock()
	if greeting {
		o.surface.AppendLine(msgNeedTrigger)
		return
	}
	o.setPhase(domain.PhaseMenu, nil)
	o.surface.ShowMenu(o.registry.Menu())
}

func (o *Orchestrator) greeting(input string) {
	if input == domain.TriggerToken {
		o.surface.ShowMenu(o.registry.Menu())
		o.setPhase(domain.PhaseMenu, nil)
		return
	}
	o.surface.AppendLine(msgNeedTrigger)
	if s := suggest(input); s != "" {
		o.surface.AppendLine(fmt.Sprintf(msgDidYouMean, s))
	}
}

// suggest returns the known command closest to input, if it is a likely typo.
func suggest(input string) string {
	lower := strings.ToLower(input)
	best, bestDist := "", suggestDistance+1
	for _, cmd := range knownCommands {
		if d := levenshtein.ComputeDistance(lower, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	if best == input {
		return ""
	}
	return best
}

func (o *Orchestrator) selectMode(ctx context.Context, input string) error {
	m, ok := o.registry.ByKey(input)
	if !ok {
		o.surface.AppendLine(fmt.Sprintf(msgUnknown, input))
		return nil
	}

	o.surface.ShowModeIntro(m.ID())
	if err := m.BeginOrResume(ctx); err != nil {
		return o.failed(err)
	}
	o.setPhase(domain.PhaseStory, m)
	o.logger.Info("mode entered", "mode", m.ID(), "turn", m.Turn())
	return nil
}

func (o *Orchestrator) advance(ctx context.Context, m modes.Mode, input string) error {
	if m == nil {
		o.setPhase(domain.PhaseMenu, nil)
		return o.selectMode(ctx, input)
	}

	if sel, ok := m.(modes.ThemeSelector); ok && sel.AwaitingTheme() {
		if !sel.IsValidTheme(input) {
			o.surface.AppendLine(modes.InvalidThemeMessage)
			return nil
		}
	} else if !validChoice(m, input) {
		if extendedAllowed(m) {
			o.surface.AppendLine(msgChoose4)
		} else {
			o.surface.AppendLine(msgChoose3)
		}
		return nil
	}

	start := time.Now()
	cont, err := m.Advance(ctx, input)
	o.emitTurn(ctx, m, cont, err)
	if err != nil {
		return o.failed(err)
	}

	if !cont {
		o.logger.Info("story finished", "mode", m.ID(), "turn", m.Turn(), "duration", time.Since(start))
		o.setPhase(domain.PhaseMenu, nil)
		o.surface.ShowMenu(o.registry.Menu())
		return nil
	}
	o.setPhase(domain.PhaseStory, m)
	return nil
}

func validChoice(m modes.Mode, token string) bool {
	if slices.Contains(domain.BaseChoices, token) {
		return true
	}
	return token == domain.ExtendedChoice && extendedAllowed(m)
}

func extendedAllowed(m modes.Mode) bool {
	threshold := m.ChoiceThreshold()
	return threshold > 0 && m.Turn() >= threshold
}

// failed renders a completion failure. Only cancellation is returned to the caller.
func (o *Orchestrator) failed(err error) error {
	switch {
	case errors.Is(err, domain.ErrTimeout):
		o.logger.Warn("completion timed out", "err", err)
		o.surface.AppendLine(msgTimeout)
		return nil
	case errors.Is(err, domain.ErrCompletionFailed):
		o.logger.Error("completion failed", "err", err)
		o.surface.AppendLine(completion.FallbackText)
		return nil
	default:
		return err
	}
}

func (o *Orchestrator) setPhase(phase domain.SessionPhase, m modes.Mode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.phase = phase
	o.active = m
	if m != nil {
		o.turn = m.Turn()
	} else {
		o.turn = 0
	}
}

func (o *Orchestrator) emitTurn(ctx context.Context, m modes.Mode, cont bool, err error) {
	if o.hooks.OnTurn == nil {
		return
	}
	o.hooks.OnTurn(ctx, &domain.TurnEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventTurn,
			SessionID: o.id,
		},
		Mode:     m.ID(),
		Turn:     m.Turn(),
		Continue: cont,
		Err:      err,
	})
}

func (o *Orchestrator) emitDropped(ctx context.Context, input string) {
	if o.hooks.OnDropped == nil {
		return
	}
	o.hooks.OnDropped(ctx, &domain.DroppedEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventDropped,
			SessionID: o.id,
		},
		Input: input,
	})
}
