package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoryContext_ChoiceAt(t *testing.T) {
	ctx := &StoryContext{Scenario: "A meadow.", Choices: []string{"a", "b", "c"}}

	tests := []struct {
		token string
		want  string
	}{
		{"1", "a"},
		{"3", "c"},
		{"4", ""},
		{"0", ""},
		{"x", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run("token_"+tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ctx.ChoiceAt(tt.token))
		})
	}
}

func TestStoryContext_NilIsSafe(t *testing.T) {
	var ctx *StoryContext
	assert.Equal(t, "", ctx.ChoiceAt("1"))
	assert.Equal(t, "", ctx.ScenarioText())

	turn := NewTurn("2", ctx)
	assert.Equal(t, Turn{Token: "2"}, turn)
}

func TestPhaseFor(t *testing.T) {
	tests := []struct {
		turn int
		want Phase
	}{
		{0, PhaseIntroduction},
		{5, PhaseIntroduction},
		{6, PhaseDevelopment},
		{10, PhaseDevelopment},
		{11, PhaseRisingAction},
		{15, PhaseRisingAction},
		{16, PhaseClimax},
		{19, PhaseClimax},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PhaseFor(tt.turn), "turn %d", tt.turn)
	}
}
