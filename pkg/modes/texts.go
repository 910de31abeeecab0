package modes

import (
	"fmt"
	"strings"

	"github.com/aretw0/adrift/pkg/domain"
)

// Playthrough lengths.
const (
	WanderReflectAt   = 10
	EvaluateScenarios = 20
	AdventureChapters = 20
)

var intros = map[string]string{
	WanderID:    "Set your mind adrift... Type 'exit' at anytime to return to the main menu.",
	EvaluateID:  "*Initializing personality analysis protocols*\nPreparing to evaluate your decision-making patterns...\nType 'exit' at anytime to return to the main menu.",
	AdventureID: "Welcome to Adventure Mode!\nPick a theme for your story journey.\nType 'exit' at anytime to return to the main menu.",
}

// Intro returns the introduction shown when the mode is entered.
func Intro(modeID string) string {
	if text, ok := intros[modeID]; ok {
		return text
	}
	return "Entering new mode..."
}

// InvalidThemeMessage answers a token that names no theme.
const InvalidThemeMessage = "Please select a valid theme number."

const (
	msgReflecting      = "Let's reflect on your journey so far..."
	msgJourneyHeader   = "\nYour Journey:\n"
	msgKeepWandering   = "\nYou can continue wandering (choose 1-3) or conclude your journey by typing 'exit'."
	msgChoiceLogged    = "Choice logged. *beep boop*"
	msgCalculating     = "*Calculating personality matrix* ... *Engaging sarcasm protocols* ..."
	msgAnalysisHeader  = "\nANALYSIS COMPLETE:\n"
	msgFinalAnalysis   = "\n*Whirring noises*\nFINAL ANALYSIS:\n"
	msgAdventureClosed = "\nAnd that concludes your adventure! Let me prepare a summary..."
	msgRecapHeader     = "\nYour Story Recap:\n"
)

func scenarioHeader(n int) string {
	return fmt.Sprintf("\nScenario %d/%d:\n", n, EvaluateScenarios)
}

func chapterHeader(n int) string {
	return fmt.Sprintf("Chapter %d/%d:\n", n, AdventureChapters)
}

func adventureStart(theme domain.Theme) string {
	return fmt.Sprintf("Starting your %s adventure...\nChapter 1/%d: The Beginning", theme.Name, AdventureChapters)
}

// ThemeMenu renders the theme list shown before an adventure starts.
func ThemeMenu(themes []domain.Theme) string {
	var b strings.Builder
	b.WriteString("\nChoose your adventure theme:\n")
	for _, t := range themes {
		fmt.Fprintf(&b, "%s. %s - %s\n", t.ID, t.Name, t.Description)
	}
	return b.String()
}
