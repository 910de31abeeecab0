package domain

import (
	"strconv"
	"strings"
)

// StoryContext is the scenario and the ordered choices parsed from one model response.
// It is replaced on every turn, never mutated.
type StoryContext struct {
	Scenario string   `json:"scenario"`
	Choices  []string `json:"choices"`
}

// ChoiceAt resolves a 1-based choice token ("1".."4") against the context.
// Non-numeric tokens, out of range indexes and a nil context all resolve to "".
func (c *StoryContext) ChoiceAt(token string) string {
	if c == nil {
		return ""
	}
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil || n < 1 || n > len(c.Choices) {
		return ""
	}
	return c.Choices[n-1]
}

// ScenarioText returns the scenario, or "" for a nil context.
func (c *StoryContext) ScenarioText() string {
	if c == nil {
		return ""
	}
	return c.Scenario
}

// Turn is one entry of a mode's choice history.
// It snapshots the context the token was chosen from so summaries do not depend on the final context.
type Turn struct {
	Token    string `json:"token"`
	Scenario string `json:"scenario"`
	Choice   string `json:"choice"`
}

// NewTurn records token against the context that was current when it was chosen.
func NewTurn(token string, ctx *StoryContext) Turn {
	return Turn{
		Token:    token,
		Scenario: ctx.ScenarioText(),
		Choice:   ctx.ChoiceAt(token),
	}
}
