package session

import (
	"fmt"
	"strings"
	"time"
)

// Settings are the runtime settings echoed by the "settings" command.
type Settings struct {
	Model     string
	Timeout   time.Duration
	Rendering string
}

// Render formats the settings for display.
func (s Settings) Render() string {
	var b strings.Builder
	b.WriteString("Current settings:\n")
	fmt.Fprintf(&b, "  Model: %s\n", orDash(s.Model))
	if s.Timeout > 0 {
		fmt.Fprintf(&b, "  Timeout: %s\n", s.Timeout)
	} else {
		b.WriteString("  Timeout: -\n")
	}
	fmt.Fprintf(&b, "  Rendering: %s\n", orDash(s.Rendering))
	b.WriteString("Settings are read from ADRIFT_* environment variables and command flags.")
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
