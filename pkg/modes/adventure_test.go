package modes

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/adrift/internal/testutils"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdventure(t *testing.T) (*Adventure, *testutils.Completer, *testutils.Surface) {
	t.Helper()
	themes, err := DefaultThemes()
	require.NoError(t, err)
	c := testutils.NewCompleter()
	s := testutils.NewSurface()
	return NewAdventure(Deps{Completer: c, Surface: s}, themes), c, s
}

func TestAdventure_BeginShowsThemeMenu(t *testing.T) {
	a, c, s := newAdventure(t)

	require.NoError(t, a.BeginOrResume(context.Background()))

	assert.True(t, a.AwaitingTheme())
	assert.Zero(t, c.CallCount())
	assert.Contains(t, s.LastLine(), "Choose your adventure theme:")
	assert.Contains(t, s.LastLine(), "1. Fantasy - Dragons, magic, and medieval adventures")
	assert.Contains(t, s.LastLine(), "6. Supernatural - Modern tales with paranormal elements")
}

func TestAdventure_InvalidTheme(t *testing.T) {
	a, c, s := newAdventure(t)
	ctx := context.Background()
	require.NoError(t, a.BeginOrResume(ctx))

	assert.False(t, a.IsValidTheme("9"))
	cont, err := a.Advance(ctx, "9")
	require.NoError(t, err)
	assert.True(t, cont)
	assert.Equal(t, InvalidThemeMessage, s.LastLine())
	assert.True(t, a.AwaitingTheme())
	assert.Zero(t, c.CallCount())
}

func TestAdventure_SelectTheme(t *testing.T) {
	a, c, s := newAdventure(t)
	ctx := context.Background()
	require.NoError(t, a.BeginOrResume(ctx))
	s.Reset()

	cont, err := a.Advance(ctx, "2")
	require.NoError(t, err)
	assert.True(t, cont)

	require.NotNil(t, a.Theme())
	assert.Equal(t, "Sci-Fi", a.Theme().Name)
	assert.False(t, a.AwaitingTheme())
	assert.Equal(t, 0, a.Turn())

	assert.Equal(t, a.Theme().SystemPrompt, c.LastCall().Role)
	assert.Contains(t, c.LastCall().Prompt, "Begin a sci-fi story.")

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Starting your Sci-Fi adventure...\nChapter 1/20: The Beginning", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Chapter 1/20:\n"))
}

func TestAdventure_ThemeKeptOnlyOnSuccess(t *testing.T) {
	a, c, _ := newAdventure(t)
	ctx := context.Background()
	require.NoError(t, a.BeginOrResume(ctx))

	c.FailNext(domain.ErrTimeout)
	_, err := a.Advance(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.True(t, a.AwaitingTheme())
}

func TestAdventure_PhasesAndResolution(t *testing.T) {
	a, c, s := newAdventure(t)
	ctx := context.Background()
	require.NoError(t, a.BeginOrResume(ctx))
	_, err := a.Advance(ctx, "3")
	require.NoError(t, err)

	prompts := map[int]string{}
	for turn := 1; turn < AdventureChapters; turn++ {
		cont, err := a.Advance(ctx, "1")
		require.NoError(t, err)
		require.True(t, cont)
		prompts[turn] = c.LastCall().Prompt
		assert.True(t, strings.HasPrefix(s.LastLine(), chapterHeader(turn+1)))
	}

	assert.Contains(t, prompts[5], "Story phase: introduction")
	assert.Contains(t, prompts[6], "Story phase: development")
	assert.Contains(t, prompts[6], "Develops plot threads and raises stakes")
	assert.Contains(t, prompts[11], "Story phase: rising-action")
	assert.Contains(t, prompts[16], "Story phase: climax")
	assert.Contains(t, prompts[10], "Current chapter: 11/20")
	assert.NotContains(t, prompts[18], adventureFinalChoices)
	assert.True(t, strings.HasSuffix(prompts[19], adventureFinalChoices))

	cont, err := a.Advance(ctx, "2")
	require.NoError(t, err)
	assert.False(t, cont)
	assert.True(t, a.IsTerminal())
	assert.Equal(t, adventureSummaryRole, c.LastCall().Role)
	assert.Contains(t, c.LastCall().Prompt, "summary of this Mystery story")
	assert.Contains(t, c.LastCall().Prompt, "Chapter 1: Path 1-a")
	assert.Contains(t, c.LastCall().Prompt, "Chapter 20: Path 20-b")
	assert.Contains(t, s.Lines(), msgAdventureClosed)
	assert.True(t, strings.HasPrefix(s.LastLine(), msgRecapHeader))
}

func TestAdventure_ResetAfterTerminal(t *testing.T) {
	a, _, s := newAdventure(t)
	ctx := context.Background()
	require.NoError(t, a.BeginOrResume(ctx))
	_, err := a.Advance(ctx, "1")
	require.NoError(t, err)
	for i := 0; i < AdventureChapters; i++ {
		_, err := a.Advance(ctx, "1")
		require.NoError(t, err)
	}
	require.True(t, a.IsTerminal())

	require.NoError(t, a.BeginOrResume(ctx))
	assert.True(t, a.AwaitingTheme(), "finished adventure forgets its theme")
	assert.Equal(t, 0, a.Turn())
	assert.Contains(t, s.LastLine(), "Choose your adventure theme:")
}

func TestAdventure_ResumeMidStory(t *testing.T) {
	a, c, s := newAdventure(t)
	ctx := context.Background()
	require.NoError(t, a.BeginOrResume(ctx))
	_, err := a.Advance(ctx, "4")
	require.NoError(t, err)
	_, err = a.Advance(ctx, "1")
	require.NoError(t, err)
	calls := c.CallCount()

	require.NoError(t, a.BeginOrResume(ctx))
	assert.Equal(t, calls, c.CallCount())
	assert.Equal(t, "Post-Apocalyptic", a.Theme().Name)
	assert.Equal(t, chapterHeader(2)+testutils.StoryResponse(2, "", ""), s.LastLine())
}
