package modes

import (
	"context"
	"fmt"

	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/parser"
	"github.com/aretw0/adrift/pkg/ports"
)

// Wander is the open-ended relaxing exploration. It never ends on its own;
// the player leaves it with "exit".
type Wander struct {
	base
}

// NewWander creates a Wander mode.
func NewWander(deps Deps) *Wander {
	return &Wander{base: newBase(deps, WanderID)}
}

func (w *Wander) ID() string { return WanderID }

func (w *Wander) Entry() ports.MenuOption {
	return ports.MenuOption{Key: "1", Name: "Adrift", Description: "Let your mind wander through a relaxing story"}
}

func (w *Wander) IsTerminal() bool { return false }

func (w *Wander) ChoiceThreshold() int { return WanderReflectAt }

// BeginOrResume opens in the meadow, or repeats the last scenario when a journey is under way.
func (w *Wander) BeginOrResume(ctx context.Context) error {
	if w.p.started() {
		w.surface.AppendLine(w.p.last)
		return nil
	}

	current, text, err := w.generate(ctx, wanderOpening, ports.DefaultSystemRole, parser.Wander)
	if err != nil {
		return fmt.Errorf("wander: opening scenario: %w", err)
	}
	w.commit(progress{current: current, last: text})
	w.surface.AppendLine(text)
	return nil
}

// Advance continues the journey. Once the reflection threshold is reached,
// the extended choice renders a summary and the journey goes on.
func (w *Wander) Advance(ctx context.Context, token string) (bool, error) {
	if token == domain.ExtendedChoice && w.p.turn >= WanderReflectAt {
		return true, w.reflect(ctx)
	}

	next := w.p.next(token)
	prompt := wanderContinuation(w.p.current, w.p.current.ChoiceAt(token))
	if next.turn >= WanderReflectAt {
		prompt += wanderConcludeOption
	}

	current, text, err := w.generate(ctx, prompt, ports.DefaultSystemRole, parser.Wander)
	if err != nil {
		return true, fmt.Errorf("wander: turn %d: %w", next.turn, err)
	}
	next.current, next.last = current, text
	w.commit(next)
	w.surface.AppendLine(text)
	return true, nil
}

func (w *Wander) reflect(ctx context.Context) error {
	w.surface.AppendLine(msgReflecting)
	summary, err := w.Summarize(ctx)
	if err != nil {
		return err
	}
	w.surface.AppendLine(msgJourneyHeader + summary)
	w.surface.AppendLine(msgKeepWandering)
	return nil
}

// Summarize weaves the journey so far into a short reflection.
func (w *Wander) Summarize(ctx context.Context) (string, error) {
	summary, err := w.completer.Complete(ctx, wanderSummary(w.p.history), wanderSummaryRole)
	if err != nil {
		return "", fmt.Errorf("wander: summary: %w", err)
	}
	return summary, nil
}
