package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/adrift/pkg/ports"
)

// JSONSurface implements ports.Terminal for structured JSON-Lines communication.
// Every rendering call is written as one Event per line.
type JSONSurface struct {
	reader   *bufio.Reader
	mu       sync.Mutex
	encoder  *json.Encoder
	maxInput int
	err      error

	inputChan chan inputResult
	startOnce sync.Once
}

var _ ports.Terminal = (*JSONSurface)(nil)

// NewJSONSurface creates a surface for JSON IO.
func NewJSONSurface(r io.Reader, w io.Writer) *JSONSurface {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONSurface{
		reader:   bufio.NewReader(r),
		encoder:  json.NewEncoder(w),
		maxInput: MaxInputSize(),
	}
}

func (s *JSONSurface) emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.encoder.Encode(e); err != nil && s.err == nil {
		s.err = err
	}
}

// Err returns the first write error, if any.
func (s *JSONSurface) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *JSONSurface) AppendLine(text string)              { s.emit(LineEvent(text)) }
func (s *JSONSurface) ShowMenu(options []ports.MenuOption) { s.emit(MenuEvent(options)) }
func (s *JSONSurface) ShowModeIntro(modeID string)         { s.emit(IntroEvent(modeID)) }
func (s *JSONSurface) SetInputEnabled(enabled bool)        { s.emit(InputEvent(enabled)) }

// inputMessage is the object form of an input line.
type inputMessage struct {
	Input string `json:"input"`
}

func (s *JSONSurface) initPump() {
	s.startOnce.Do(func() {
		s.inputChan = make(chan inputResult)
		go s.pump()
	})
}

func (s *JSONSurface) pump() {
	for {
		text, err := s.reader.ReadString('\n')

		if text != "" {
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

// ReadLine reads one line. It accepts a JSON string, an {"input": "..."}
// object or plain text. Rejected lines are reported as events and skipped.
func (s *JSONSurface) ReadLine(ctx context.Context) (string, error) {
	s.initPump()

	for {
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
			clean, err := Sanitize(decodeInput(strings.TrimSpace(res.text)), s.maxInput)
			if err != nil {
				s.emit(LineEvent("Error: " + err.Error()))
				continue
			}
			return clean, nil
		}
	}
}

func decodeInput(text string) string {
	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val
	}
	var msg inputMessage
	if strings.HasPrefix(text, "{") {
		if err := json.Unmarshal([]byte(text), &msg); err == nil {
			return msg.Input
		}
	}
	// Fallback: return raw text (e.g. if they just sent plain text)
	return text
}
