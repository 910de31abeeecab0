package modes

import (
	"context"
	"fmt"

	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/parser"
	"github.com/aretw0/adrift/pkg/ports"
)

// Adventure is a themed story of twenty chapters. The player picks a theme
// first; the dramatic phase of each chapter follows from the turn count.
type Adventure struct {
	base
	themes []domain.Theme
	theme  *domain.Theme
}

// NewAdventure creates an Adventure mode offering themes.
func NewAdventure(deps Deps, themes []domain.Theme) *Adventure {
	return &Adventure{
		base:   newBase(deps, AdventureID),
		themes: themes,
	}
}

func (a *Adventure) ID() string { return AdventureID }

func (a *Adventure) Entry() ports.MenuOption {
	return ports.MenuOption{Key: "3", Name: "Adventure", Description: "Choose a theme and embark on a unique journey"}
}

func (a *Adventure) IsTerminal() bool { return a.p.turn >= AdventureChapters }

// ChoiceThreshold is 0: adventures never offer a 4th choice.
func (a *Adventure) ChoiceThreshold() int { return 0 }

// AwaitingTheme reports whether the next token selects a theme.
func (a *Adventure) AwaitingTheme() bool { return a.theme == nil }

// IsValidTheme reports whether token names a theme of the catalogue.
func (a *Adventure) IsValidTheme(token string) bool {
	_, ok := a.lookup(token)
	return ok
}

// Theme returns the selected theme, or nil.
func (a *Adventure) Theme() *domain.Theme {
	return a.theme
}

// Themes returns the catalogue in menu order.
func (a *Adventure) Themes() []domain.Theme {
	out := make([]domain.Theme, len(a.themes))
	copy(out, a.themes)
	return out
}

func (a *Adventure) lookup(token string) (domain.Theme, bool) {
	for _, t := range a.themes {
		if t.ID == token {
			return t, true
		}
	}
	return domain.Theme{}, false
}

// BeginOrResume shows the theme menu, or repeats the current chapter of an
// adventure under way. A finished adventure is reset, theme included.
func (a *Adventure) BeginOrResume(ctx context.Context) error {
	if a.IsTerminal() {
		a.p = progress{}
		a.theme = nil
	}
	if a.theme == nil || !a.p.started() {
		a.theme = nil
		a.surface.AppendLine(ThemeMenu(a.themes))
		return nil
	}
	a.surface.AppendLine(chapterHeader(a.p.turn+1) + a.p.last)
	return nil
}

// BeginTheme fixes the theme and writes chapter one.
// The theme is kept only if the chapter could be generated.
func (a *Adventure) BeginTheme(ctx context.Context, token string) error {
	theme, ok := a.lookup(token)
	if !ok {
		a.surface.AppendLine(InvalidThemeMessage)
		return nil
	}

	a.surface.AppendLine(adventureStart(theme))
	current, text, err := a.generate(ctx, adventureOpening(theme), theme.SystemPrompt, parser.Adventure)
	if err != nil {
		return fmt.Errorf("adventure: opening chapter: %w", err)
	}
	a.theme = &theme
	a.commit(progress{current: current, last: text})
	a.surface.AppendLine(chapterHeader(1) + text)
	return nil
}

// Advance selects the theme while none is set, then moves the story one chapter forward.
// The twentieth choice closes the adventure with a recap.
func (a *Adventure) Advance(ctx context.Context, token string) (bool, error) {
	if a.theme == nil {
		return true, a.BeginTheme(ctx, token)
	}

	next := a.p.next(token)
	if next.turn >= AdventureChapters {
		a.surface.AppendLine(msgAdventureClosed)
		recap, err := a.summarize(ctx, next.history)
		if err != nil {
			return true, err
		}
		a.commit(next)
		a.surface.AppendLine(msgRecapHeader + recap)
		return false, nil
	}

	prompt := adventureContinuation(*a.theme, a.p.current, a.p.current.ChoiceAt(token), next.turn)
	if next.turn == AdventureChapters-1 {
		prompt += adventureFinalChoices
	}
	current, text, err := a.generate(ctx, prompt, a.theme.SystemPrompt, parser.Adventure)
	if err != nil {
		return true, fmt.Errorf("adventure: chapter %d: %w", next.turn+1, err)
	}
	next.current, next.last = current, text
	a.commit(next)
	a.surface.AppendLine(chapterHeader(next.turn+1) + text)
	return true, nil
}

// Summarize recaps the adventure so far.
func (a *Adventure) Summarize(ctx context.Context) (string, error) {
	return a.summarize(ctx, a.p.history)
}

func (a *Adventure) summarize(ctx context.Context, history []domain.Turn) (string, error) {
	if a.theme == nil {
		return "", fmt.Errorf("adventure: summary: no theme selected")
	}
	recap, err := a.completer.Complete(ctx, adventureSummary(*a.theme, history), adventureSummaryRole)
	if err != nil {
		return "", fmt.Errorf("adventure: summary: %w", err)
	}
	return recap, nil
}
