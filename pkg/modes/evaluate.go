package modes

import (
	"context"
	"fmt"

	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/parser"
	"github.com/aretw0/adrift/pkg/ports"
)

// Evaluate scores twenty choices on five personality traits and ends
// with a sarcastic profile of the player.
type Evaluate struct {
	base
	traits domain.Traits
}

// NewEvaluate creates an Evaluate mode.
func NewEvaluate(deps Deps) *Evaluate {
	return &Evaluate{
		base:   newBase(deps, EvaluateID),
		traits: domain.NewTraits(),
	}
}

func (e *Evaluate) ID() string { return EvaluateID }

func (e *Evaluate) Entry() ports.MenuOption {
	return ports.MenuOption{Key: "2", Name: "Evaluate", Description: "Analyze your personality through an evolving narrative"}
}

func (e *Evaluate) IsTerminal() bool { return e.p.turn >= EvaluateScenarios }

func (e *Evaluate) ChoiceThreshold() int { return EvaluateScenarios }

// Traits returns a copy of the running trait means.
func (e *Evaluate) Traits() domain.Traits {
	return e.traits.Clone()
}

// BeginOrResume starts a new evaluation unless one is under way.
func (e *Evaluate) BeginOrResume(ctx context.Context) error {
	if e.p.started() && !e.IsTerminal() {
		e.surface.AppendLine(scenarioHeader(e.p.turn+1) + e.p.last)
		return nil
	}

	current, text, err := e.generate(ctx, evaluateOpening, evaluateRole, parser.Evaluate)
	if err != nil {
		return fmt.Errorf("evaluate: opening scenario: %w", err)
	}
	e.traits = domain.NewTraits()
	e.commit(progress{current: current, last: text})
	e.surface.AppendLine(scenarioHeader(1) + text)
	return nil
}

// Advance logs the choice, folds its trait scores into the running means and
// moves to the next scenario. The twentieth choice ends the evaluation.
func (e *Evaluate) Advance(ctx context.Context, token string) (bool, error) {
	if token == domain.ExtendedChoice && e.p.turn >= EvaluateScenarios {
		e.surface.AppendLine(msgCalculating)
		summary, err := e.Summarize(ctx)
		if err != nil {
			return true, err
		}
		e.surface.AppendLine(msgAnalysisHeader + summary)
		return false, nil
	}

	e.surface.AppendLine(msgChoiceLogged)
	choice := e.p.current.ChoiceAt(token)

	analysis, err := e.completer.Complete(ctx, evaluateAnalysis(e.p.current, choice), ports.DefaultSystemRole)
	if err != nil {
		return true, fmt.Errorf("evaluate: analysis of turn %d: %w", e.p.turn+1, err)
	}
	traits := e.traits.Clone()
	traits.Apply(domain.ParseScores(analysis), e.p.turn)
	next := e.p.next(token)

	if next.turn >= EvaluateScenarios {
		summary, err := e.summarize(ctx, traits, next.history)
		if err != nil {
			return true, err
		}
		e.traits = traits
		e.commit(next)
		e.surface.AppendLine(msgFinalAnalysis + summary)
		return false, nil
	}

	current, text, err := e.generate(ctx, evaluateContinuation(e.p.current, choice, next.turn), evaluateRole, parser.Evaluate)
	if err != nil {
		return true, fmt.Errorf("evaluate: turn %d: %w", next.turn, err)
	}
	next.current, next.last = current, text
	e.traits = traits
	e.commit(next)
	e.surface.AppendLine(scenarioHeader(next.turn+1) + text)
	return true, nil
}

// Summarize produces the personality and trading profile from the current traits.
func (e *Evaluate) Summarize(ctx context.Context) (string, error) {
	return e.summarize(ctx, e.traits, e.p.history)
}

func (e *Evaluate) summarize(ctx context.Context, traits domain.Traits, history []domain.Turn) (string, error) {
	summary, err := e.completer.Complete(ctx, evaluateSummary(traits, history), evaluateSummaryRole)
	if err != nil {
		return "", fmt.Errorf("evaluate: summary: %w", err)
	}
	return summary, nil
}
