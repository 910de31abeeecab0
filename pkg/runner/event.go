package runner

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/adrift/pkg/modes"
	"github.com/aretw0/adrift/pkg/ports"
)

// EventType is the kind of a rendered Event.
type EventType string

const (
	EventLine  EventType = "line"
	EventMenu  EventType = "menu"
	EventIntro EventType = "intro"
	EventInput EventType = "input"
)

// Event is one rendering instruction for structured clients.
type Event struct {
	Type    EventType          `json:"type"`
	Text    string             `json:"text,omitempty"`
	Options []ports.MenuOption `json:"options,omitempty"`
	Mode    string             `json:"mode,omitempty"`
	Enabled *bool              `json:"enabled,omitempty"`
}

// LineEvent renders text.
func LineEvent(text string) Event {
	return Event{Type: EventLine, Text: text}
}

// MenuEvent renders the mode menu.
func MenuEvent(options []ports.MenuOption) Event {
	return Event{Type: EventMenu, Text: MenuText(options), Options: options}
}

// IntroEvent renders the introduction of a mode.
func IntroEvent(modeID string) Event {
	return Event{Type: EventIntro, Text: modes.Intro(modeID), Mode: modeID}
}

// InputEvent toggles the input affordance.
func InputEvent(enabled bool) Event {
	return Event{Type: EventInput, Enabled: &enabled}
}

// MenuText formats the menu the way the terminal shows it.
func MenuText(options []ports.MenuOption) string {
	keys := make([]string, len(options))
	for i, o := range options {
		keys[i] = o.Key
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Start wandering (%s):\n", strings.Join(keys, ","))
	for _, o := range options {
		fmt.Fprintf(&b, "%s. %s - %s\n", o.Key, o.Name, o.Description)
	}
	return b.String()
}

// Recorder is a Surface that keeps events in memory until drained.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) AppendLine(text string)              { r.emit(LineEvent(text)) }
func (r *Recorder) ShowMenu(options []ports.MenuOption) { r.emit(MenuEvent(options)) }
func (r *Recorder) ShowModeIntro(modeID string)         { r.emit(IntroEvent(modeID)) }
func (r *Recorder) SetInputEnabled(enabled bool)        { r.emit(InputEvent(enabled)) }

// Drain returns the events recorded since the last call and forgets them.
func (r *Recorder) Drain() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	if out == nil {
		out = []Event{}
	}
	return out
}
