package modes

import (
	"context"
	"testing"

	"github.com/aretw0/adrift/internal/testutils"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DefaultModes(t *testing.T) {
	r, err := NewRegistry(Deps{Completer: testutils.NewCompleter(), Surface: testutils.NewSurface()})
	require.NoError(t, err)

	assert.Equal(t, []ports.MenuOption{
		{Key: "1", Name: "Adrift", Description: "Let your mind wander through a relaxing story"},
		{Key: "2", Name: "Evaluate", Description: "Analyze your personality through an evolving narrative"},
		{Key: "3", Name: "Adventure", Description: "Choose a theme and embark on a unique journey"},
	}, r.Menu())

	m, ok := r.ByKey("3")
	require.True(t, ok)
	assert.Equal(t, AdventureID, m.ID())
	_, isSelector := m.(ThemeSelector)
	assert.True(t, isSelector)

	_, ok = r.ByKey("4")
	assert.False(t, ok)

	m, err = r.Get(EvaluateID)
	require.NoError(t, err)
	assert.Equal(t, 20, m.ChoiceThreshold())

	_, err = r.Get("nope")
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	deps := Deps{Completer: testutils.NewCompleter(), Surface: testutils.NewSurface()}
	r := NewEmptyRegistry()
	require.NoError(t, r.Register(NewWander(deps)))
	assert.Error(t, r.Register(NewWander(deps)))
}

func TestRegistry_CustomThemes(t *testing.T) {
	s := testutils.NewSurface()
	themes := []domain.Theme{{ID: "7", Name: "Noir", Description: "Rain and regrets", SystemPrompt: "You are a noir narrator."}}
	r, err := NewRegistry(Deps{Completer: testutils.NewCompleter(), Surface: s, Themes: themes})
	require.NoError(t, err)

	m, _ := r.ByKey("3")
	require.NoError(t, m.BeginOrResume(context.Background()))
	assert.Contains(t, s.LastLine(), "7. Noir - Rain and regrets")
	assert.True(t, m.(ThemeSelector).IsValidTheme("7"))
	assert.False(t, m.(ThemeSelector).IsValidTheme("1"))

	_, err = NewRegistry(Deps{Themes: []domain.Theme{}})
	assert.Error(t, err)
}

func TestRegistry_SessionsDoNotShareState(t *testing.T) {
	deps := Deps{Completer: testutils.NewCompleter(), Surface: testutils.NewSurface()}
	a, err := NewRegistry(deps)
	require.NoError(t, err)
	b, err := NewRegistry(deps)
	require.NoError(t, err)

	ctx := context.Background()
	wa, _ := a.ByKey("1")
	require.NoError(t, wa.BeginOrResume(ctx))
	_, err = wa.Advance(ctx, "1")
	require.NoError(t, err)

	wb, _ := b.ByKey("1")
	assert.Equal(t, 1, wa.Turn())
	assert.Equal(t, 0, wb.Turn())
}
