package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWrap is the column the narrative is wrapped at.
const DefaultWrap = 80

// NewRenderer returns a function that renders the storyteller's markdown using glamour.
// If glamour cannot be initialised the text is returned as is.
func NewRenderer(wrap int) func(string) (string, error) {
	if wrap <= 0 {
		wrap = DefaultWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return Plain
	}

	return func(markdown string) (string, error) {
		out, err := r.Render(markdown)
		if err != nil {
			return markdown, err
		}
		return strings.Trim(out, "\n"), nil
	}
}

// Plain is the identity renderer used with --plain.
func Plain(text string) (string, error) {
	return text, nil
}
