package domain

import (
	"regexp"
	"strconv"
)

// Trait names one dimension of the Evaluate personality vector.
type Trait string

const (
	TraitRiskTolerance    Trait = "riskTolerance"
	TraitDecisionSpeed    Trait = "decisionSpeed"
	TraitEmotionalControl Trait = "emotionalControl"
	TraitAdaptability     Trait = "adaptability"
	TraitConfidence       Trait = "confidence"
)

// AllTraits lists the traits in presentation order.
var AllTraits = []Trait{
	TraitRiskTolerance,
	TraitDecisionSpeed,
	TraitEmotionalControl,
	TraitAdaptability,
	TraitConfidence,
}

// scoreLabels maps the label the analyst is asked to answer with to the trait it scores.
var scoreLabels = []struct {
	trait Trait
	re    *regexp.Regexp
}{
	{TraitRiskTolerance, regexp.MustCompile(`Risk: ([-]?\d+)`)},
	{TraitDecisionSpeed, regexp.MustCompile(`Speed: ([-]?\d+)`)},
	{TraitEmotionalControl, regexp.MustCompile(`Emotion: ([-]?\d+)`)},
	{TraitAdaptability, regexp.MustCompile(`Adapt: ([-]?\d+)`)},
	{TraitConfidence, regexp.MustCompile(`Confidence: ([-]?\d+)`)},
}

// Traits holds the running mean of every trait. Values are expected in [-10, 10]
// but the bounds are not enforced.
type Traits map[Trait]float64

// NewTraits returns a zeroed trait vector.
func NewTraits() Traits {
	t := make(Traits, len(AllTraits))
	for _, name := range AllTraits {
		t[name] = 0
	}
	return t
}

// RunningMean folds sample into a mean computed over n previous samples.
func RunningMean(mean float64, n int, sample float64) float64 {
	return (mean*float64(n) + sample) / float64(n+1)
}

// Apply updates each trait present in scores, n being the number of samples already folded in.
// Traits missing from scores keep their value.
func (t Traits) Apply(scores map[Trait]float64, n int) {
	for name, sample := range scores {
		t[name] = RunningMean(t[name], n, sample)
	}
}

// Clone returns an independent copy of the vector.
func (t Traits) Clone() Traits {
	c := make(Traits, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// ParseScores extracts "Risk: 4", "Speed: -2" style scores from an analysis text.
// Labels that do not appear are omitted from the result.
func ParseScores(analysis string) map[Trait]float64 {
	scores := make(map[Trait]float64)
	for _, label := range scoreLabels {
		m := label.re.FindStringSubmatch(analysis)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		scores[label.trait] = float64(n)
	}
	return scores
}
