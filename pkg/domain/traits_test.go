package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunningMean(t *testing.T) {
	tests := []struct {
		name   string
		mean   float64
		n      int
		sample float64
		want   float64
	}{
		{"First Sample", 0, 0, 6, 6.0},
		{"Second Sample", 6.0, 1, -2, 2.0},
		{"Third Sample", 2.0, 2, 5, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RunningMean(tt.mean, tt.n, tt.sample), 1e-9)
		})
	}
}

func TestTraits_Apply(t *testing.T) {
	traits := NewTraits()

	traits.Apply(map[Trait]float64{TraitRiskTolerance: 6}, 0)
	assert.InDelta(t, 6.0, traits[TraitRiskTolerance], 1e-9)

	traits.Apply(map[Trait]float64{TraitRiskTolerance: -2}, 1)
	assert.InDelta(t, 2.0, traits[TraitRiskTolerance], 1e-9)

	// Untouched traits stay at zero
	assert.Zero(t, traits[TraitConfidence])
}

func TestParseScores(t *testing.T) {
	analysis := "Here you go:\nRisk: 7\nSpeed: -3\nEmotion: 0\nAdapt: 10\n"

	scores := ParseScores(analysis)

	assert.Equal(t, map[Trait]float64{
		TraitRiskTolerance:    7,
		TraitDecisionSpeed:    -3,
		TraitEmotionalControl: 0,
		TraitAdaptability:     10,
	}, scores)
	_, hasConfidence := scores[TraitConfidence]
	assert.False(t, hasConfidence, "missing labels must not produce a score")
}

func TestTraits_CloneIsIndependent(t *testing.T) {
	traits := NewTraits()
	clone := traits.Clone()
	clone[TraitAdaptability] = 4

	assert.Zero(t, traits[TraitAdaptability])
}
