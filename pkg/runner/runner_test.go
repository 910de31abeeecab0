package runner_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/adrift/internal/testutils"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/runner"
	"github.com/aretw0/adrift/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedTerminal struct {
	*testutils.Surface
	mu    sync.Mutex
	lines []string
}

func newScriptedTerminal(lines ...string) *scriptedTerminal {
	return &scriptedTerminal{Surface: testutils.NewSurface(), lines: lines}
}

func (t *scriptedTerminal) ReadLine(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(t.lines) == 0 {
		return "", io.EOF
	}
	line := t.lines[0]
	t.lines = t.lines[1:]
	return line, nil
}

type fakeSession struct {
	greeted bool
	inputs  []string
	errs    map[string]error
}

func (s *fakeSession) Greet() { s.greeted = true }

func (s *fakeSession) Handle(_ context.Context, input string) error {
	s.inputs = append(s.inputs, input)
	return s.errs[input]
}

func TestRunner_StopsAtEOF(t *testing.T) {
	term := newScriptedTerminal("adrift", "1")
	sess := &fakeSession{}

	err := runner.New(term, sess).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, sess.greeted)
	assert.Equal(t, []string{"adrift", "1"}, sess.inputs)
}

func TestRunner_Quit(t *testing.T) {
	term := newScriptedTerminal("adrift", "QUIT", "1")
	sess := &fakeSession{}

	require.NoError(t, runner.New(term, sess).Run(context.Background()))
	assert.Equal(t, []string{"adrift"}, sess.inputs)
}

func TestRunner_HandleErrors(t *testing.T) {
	t.Run("Busy is ignored", func(t *testing.T) {
		term := newScriptedTerminal("a", "b")
		sess := &fakeSession{errs: map[string]error{"a": domain.ErrBusy}}

		require.NoError(t, runner.New(term, sess).Run(context.Background()))
		assert.Equal(t, []string{"a", "b"}, sess.inputs)
	})

	t.Run("Interrupted turn continues", func(t *testing.T) {
		term := newScriptedTerminal("a", "b")
		sess := &fakeSession{errs: map[string]error{"a": context.Canceled}}

		require.NoError(t, runner.New(term, sess).Run(context.Background()))
		assert.Equal(t, []string{"a", "b"}, sess.inputs)
		assert.Contains(t, term.Text(), "Interrupted")
	})

	t.Run("Unexpected error stops", func(t *testing.T) {
		boom := errors.New("boom")
		term := newScriptedTerminal("a", "b")
		sess := &fakeSession{errs: map[string]error{"a": boom}}

		err := runner.New(term, sess).Run(context.Background())
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"a"}, sess.inputs)
	})
}

func TestRunner_CanceledContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	term := newScriptedTerminal("a")
	sess := &fakeSession{}

	require.NoError(t, runner.New(term, sess).Run(ctx))
	assert.Empty(t, sess.inputs)
}

func TestRunner_TextSurfaceEndToEnd(t *testing.T) {
	in := strings.NewReader("adrift\n1\n2\nquit\n")
	var out bytes.Buffer
	surface := runner.NewTextSurface(in, &out)

	completer := testutils.NewCompleter()
	orch, err := session.New(completer, surface)
	require.NoError(t, err)

	require.NoError(t, runner.New(surface, orch).Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Greetings wanderer")
	assert.Contains(t, text, "Start wandering (1,2,3):")
	assert.Contains(t, text, "Scenario 1 unfolds.")
	assert.Contains(t, text, "Scenario 2 unfolds.")
	assert.Equal(t, 2, completer.CallCount())
}
