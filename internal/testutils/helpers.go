// Package testutils holds fakes shared by the package tests.
package testutils

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/adrift/pkg/ports"
)

// Call is one recorded completion request.
type Call struct {
	Prompt string
	Role   string
}

// Completer is a scripted ports.Completer. By default every call answers with
// a numbered scenario offering four choices.
type Completer struct {
	mu      sync.Mutex
	calls   []Call
	failing []error
	respond func(n int, prompt, role string) string
	block   chan struct{}
}

// NewCompleter creates a Completer using the default story script.
func NewCompleter() *Completer {
	return &Completer{respond: StoryResponse}
}

// NewCompleterFunc creates a Completer answering with respond.
// n is the 1-based index of the call.
func NewCompleterFunc(respond func(n int, prompt, role string) string) *Completer {
	return &Completer{respond: respond}
}

// StoryResponse renders scenario n with four choices.
func StoryResponse(n int, _, _ string) string {
	return fmt.Sprintf("Scenario %d unfolds.\n1. Path %d-a\n2. Path %d-b\n3. Path %d-c\n4. Conclude", n, n, n, n)
}

// FailNext makes the next calls fail with errs, in order.
func (c *Completer) FailNext(errs ...error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failing = append(c.failing, errs...)
}

// Block makes every call wait until the returned function is called or the
// call's context is done.
func (c *Completer) Block() (unblock func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan struct{})
	c.block = ch
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Complete implements ports.Completer.
func (c *Completer) Complete(ctx context.Context, prompt, role string) (string, error) {
	c.mu.Lock()
	c.calls = append(c.calls, Call{Prompt: prompt, Role: role})
	n := len(c.calls)
	block := c.block
	var err error
	if len(c.failing) > 0 {
		err, c.failing = c.failing[0], c.failing[1:]
	}
	c.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return c.respond(n, prompt, role), nil
}

// Calls returns the recorded calls.
func (c *Completer) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

// CallCount returns the number of recorded calls.
func (c *Completer) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// LastCall returns the most recent call, or a zero Call.
func (c *Completer) LastCall() Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.calls) == 0 {
		return Call{}
	}
	return c.calls[len(c.calls)-1]
}

// Surface records everything rendered into it.
type Surface struct {
	mu     sync.Mutex
	lines  []string
	menus  [][]ports.MenuOption
	intros []string
	inputs []bool
}

// NewSurface creates an empty recording Surface.
func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) AppendLine(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, text)
}

func (s *Surface) ShowMenu(options []ports.MenuOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus = append(s.menus, options)
}

func (s *Surface) ShowModeIntro(modeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intros = append(s.intros, modeID)
}

func (s *Surface) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs = append(s.inputs, enabled)
}

// Lines returns the rendered lines.
func (s *Surface) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// LastLine returns the most recent line, or "".
func (s *Surface) LastLine() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		return ""
	}
	return s.lines[len(s.lines)-1]
}

// Text joins every rendered line.
func (s *Surface) Text() string {
	return strings.Join(s.Lines(), "\n")
}

// Menus returns how many times the menu was shown.
func (s *Surface) Menus() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.menus)
}

// Intros returns the ids of the mode intros shown.
func (s *Surface) Intros() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.intros))
	copy(out, s.intros)
	return out
}

// InputToggles returns the sequence of SetInputEnabled calls.
func (s *Surface) InputToggles() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]bool, len(s.inputs))
	copy(out, s.inputs)
	return out
}

// Reset forgets everything recorded so far.
func (s *Surface) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines, s.menus, s.intros, s.inputs = nil, nil, nil, nil
}
