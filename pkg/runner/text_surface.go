package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/adrift/pkg/modes"
	"github.com/aretw0/adrift/pkg/ports"
	"golang.org/x/term"
)

// ContentRenderer transforms narrative text before it is written, e.g. markdown to ANSI.
type ContentRenderer func(string) (string, error)

// TextSurface is the interactive terminal surface.
type TextSurface struct {
	reader   *bufio.Reader
	writer   io.Writer
	renderer ContentRenderer
	maxInput int

	// discardWhileBusy drops lines typed while a request is in flight,
	// like a disabled input box. Piped input is kept.
	discardWhileBusy bool
	busy             atomic.Bool

	writeMu   sync.Mutex
	inputChan chan inputResult
	startOnce sync.Once
}

var _ ports.Terminal = (*TextSurface)(nil)

type inputResult struct {
	text string
	err  error
}

// TextOption configures a TextSurface.
type TextOption func(*TextSurface)

// WithRenderer configures the content renderer.
func WithRenderer(renderer ContentRenderer) TextOption {
	return func(s *TextSurface) {
		s.renderer = renderer
	}
}

// WithMaxInputSize overrides the input size limit.
func WithMaxInputSize(n int) TextOption {
	return func(s *TextSurface) {
		s.maxInput = n
	}
}

// WithDiscardWhileBusy overrides the TTY-based default for dropping busy-time input.
func WithDiscardWhileBusy(discard bool) TextOption {
	return func(s *TextSurface) {
		s.discardWhileBusy = discard
	}
}

// NewTextSurface creates a surface for standard text IO.
func NewTextSurface(r io.Reader, w io.Writer, opts ...TextOption) *TextSurface {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	s := &TextSurface{
		reader:           bufio.NewReader(r),
		writer:           w,
		maxInput:         MaxInputSize(),
		discardWhileBusy: isTerminal(r),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (s *TextSurface) initPump() {
	s.startOnce.Do(func() {
		s.inputChan = make(chan inputResult)
		go s.pump()
	})
}

func (s *TextSurface) pump() {
	for {
		text, err := s.reader.ReadString('\n')

		if text != "" {
			if s.discardWhileBusy && s.busy.Load() {
				continue
			}
			s.inputChan <- inputResult{text: text}
		}

		if err != nil {
			if err == io.EOF {
				close(s.inputChan)
				return
			}
			s.inputChan <- inputResult{err: err}
			// Backoff for non-fatal errors to prevent CPU spikes on persistent failure
			time.Sleep(50 * time.Millisecond)
		}
	}
}

func (s *TextSurface) write(text string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	fmt.Fprintln(s.writer, text)
}

// AppendLine renders text through the renderer, if any.
func (s *TextSurface) AppendLine(text string) {
	output := text
	if s.renderer != nil {
		if rendered, err := s.renderer(text); err == nil {
			output = rendered
		}
	}
	s.write(strings.TrimRight(output, "\n"))
}

// ShowMenu prints the mode menu.
func (s *TextSurface) ShowMenu(options []ports.MenuOption) {
	s.write(strings.TrimRight(MenuText(options), "\n"))
}

// ShowModeIntro prints the introduction of the mode.
func (s *TextSurface) ShowModeIntro(modeID string) {
	s.write(modes.Intro(modeID))
}

// SetInputEnabled tracks whether a request is in flight.
func (s *TextSurface) SetInputEnabled(enabled bool) {
	s.busy.Store(!enabled)
}

// ReadLine prompts and returns the next sanitized line.
// Lines rejected by the sanitizer are reported and the user is asked again.
func (s *TextSurface) ReadLine(ctx context.Context) (string, error) {
	s.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			s.writeMu.Lock()
			fmt.Fprint(s.writer, "> ")
			s.writeMu.Unlock()
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-s.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			clean, err := Sanitize(strings.TrimSpace(res.text), s.maxInput)
			if err != nil {
				s.write(fmt.Sprintf("Error: %v. Please try again.", err))
				continue
			}
			return clean, nil
		}
	}
}
