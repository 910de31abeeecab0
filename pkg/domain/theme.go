package domain

// Theme is an Adventure-mode narrative preset. Themes are immutable once loaded.
type Theme struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Description  string `yaml:"description" json:"description"`
	SystemPrompt string `yaml:"system_prompt" json:"system_prompt"`
}

// Phase is the dramatic stage of an adventure, derived from the turn count.
type Phase string

const (
	PhaseIntroduction Phase = "introduction"
	PhaseDevelopment  Phase = "development"
	PhaseRisingAction Phase = "rising-action"
	PhaseClimax       Phase = "climax"
)

// PhaseFor derives the phase from a 0-based turn count:
// 0-5 introduction, 6-10 development, 11-15 rising-action, 16+ climax.
func PhaseFor(turn int) Phase {
	switch {
	case turn > 15:
		return PhaseClimax
	case turn > 10:
		return PhaseRisingAction
	case turn > 5:
		return PhaseDevelopment
	default:
		return PhaseIntroduction
	}
}

// Directive is the chapter goal given to the storyteller for the phase.
func (p Phase) Directive() string {
	switch p {
	case PhaseDevelopment:
		return "Develops plot threads and raises stakes"
	case PhaseRisingAction:
		return "Intensifies conflicts and builds tension"
	case PhaseClimax:
		return "Drives toward the story's climax"
	default:
		return "Establishes new plot elements"
	}
}
