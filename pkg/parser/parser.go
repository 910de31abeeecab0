package parser

import (
	"strings"

	"github.com/aretw0/adrift/pkg/domain"
)

// Rules configures how a response is split into scenario and choices.
type Rules struct {
	// Prefixes are the line prefixes recognised as choice markers, e.g. "1.".
	Prefixes []string

	// Strip is the number of bytes removed from the start of a choice line.
	Strip int

	// TrimChoice trims whitespace left after stripping the prefix.
	TrimChoice bool

	// Latch switches to choice collection on the first "1." line.
	// Once latched, only prefixed lines are kept and everything else is dropped.
	Latch bool
}

// Presets reproducing each mode's parsing rules.
var (
	Wander = Rules{
		Prefixes:   []string{"1.", "2.", "3.", "4."},
		Strip:      2,
		TrimChoice: true,
		Latch:      true,
	}
	Evaluate = Rules{
		Prefixes: []string{"1.", "2.", "3.", "4."},
		Strip:    3,
	}
	Adventure = Rules{
		Prefixes:   []string{"1.", "2.", "3."},
		Strip:      2,
		TrimChoice: true,
	}
)

const latchPrefix = "1."

// Parse splits raw into a scenario and an ordered list of choices.
func Parse(raw string, rules Rules) domain.StoryContext {
	var scenario strings.Builder
	choices := []string{}
	collecting := false

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		if rules.Latch && strings.HasPrefix(trimmed, latchPrefix) {
			collecting = true
		}

		if collecting {
			if rules.isChoice(trimmed) {
				choices = append(choices, rules.strip(trimmed))
			}
			continue
		}

		if !rules.Latch && rules.isChoice(trimmed) {
			choices = append(choices, rules.strip(trimmed))
			continue
		}

		if trimmed != "" && !strings.HasPrefix(strings.ToLower(trimmed), "choice") {
			scenario.WriteString(trimmed)
			scenario.WriteString(" ")
		}
	}

	return domain.StoryContext{
		Scenario: strings.TrimSpace(scenario.String()),
		Choices:  choices,
	}
}

func (r Rules) isChoice(line string) bool {
	for _, p := range r.Prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func (r Rules) strip(line string) string {
	choice := ""
	if len(line) > r.Strip {
		choice = line[r.Strip:]
	}
	if r.TrimChoice {
		choice = strings.TrimSpace(choice)
	}
	return choice
}
