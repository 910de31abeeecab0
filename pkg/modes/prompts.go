package modes

import (
	"fmt"
	"strings"

	"github.com/aretw0/adrift/pkg/domain"
)

// System roles.
const (
	wanderSummaryRole    = "You are an introspective guide offering gentle insights about exploration patterns and choices."
	evaluateRole         = "You are a playful but analytical AI creating an engaging story with choices that evaluate human personality traits and trading psychology."
	evaluateSummaryRole  = "You are a sarcastic AI personality analyzer specializing in witty, yet insightful psychological observations."
	adventureSummaryRole = "You are a witty storyteller creating fun, positive story summaries."
)

const (
	wanderConcludeOption  = " Include a 4th option: 'I'd like to conclude my journey and reflect on the experience'."
	adventureFinalChoices = " These should be final resolution choices that will conclude the story."
)

const wanderOpening = `Begin a relaxing exploration story in a peaceful meadow with wildflowers.
Provide a scenario (max 60 words) and exactly three choices (max 20 words each) that allow the user to explore this environment.
Each choice should lead to a different aspect or area of this starting location.`

func wanderContinuation(prev *domain.StoryContext, choice string) string {
	return fmt.Sprintf(`Continue the following exploration story:

Previous scenario: %s
User chose: "%s"

Write a new scenario (max 60 words) that directly follows from and references the user's choice.
Then provide exactly three new choices (max 20 words each) that naturally extend from this new situation.

Make sure the new scenario explicitly shows how it follows from their choice, and make each new choice feel like a natural progression.`,
		prev.ScenarioText(), choice)
}

func wanderSummary(history []domain.Turn) string {
	return fmt.Sprintf(`Reflect on this wandering journey:
%s

Create two short paragraphs (max 100 words total):
1. First paragraph: Weave these choices into a flowing narrative that captures the essence of their journey.
2. Second paragraph: Offer a gentle insight about the motivations and patterns in their exploration choices.

Keep it contemplative and meaningful.`, narrate("Step", history))
}

const evaluateOpening = `Start a story with an intriguing scenario (max 60 words) that could lead in multiple directions.
The initial setting should be simple but with potential for development in various themes (adventure, business, relationships, conflicts).
Provide exactly three choices that both continue the story and reveal different personality traits.
Don't make the choices obviously map to personality types.`

func evaluateContinuation(prev *domain.StoryContext, choice string, count int) string {
	return fmt.Sprintf(`Continue the story based on this previous scenario:
"%s"

The user chose: "%s"

Create the next story beat (max 60 words) that follows from their choice but potentially shifts the theme or stakes.
The new scenario should directly acknowledge their previous choice but can introduce unexpected elements or change the context.

Current scenario count: %d/%d

Provide exactly three choices that:
1. Maintain narrative continuity
2. Allow for character development
3. Test different personality traits (risk, emotion, decision-making, etc.)

Make the situation feel like a natural but surprising progression from their choice.`,
		prev.ScenarioText(), choice, count, EvaluateScenarios)
}

func evaluateAnalysis(prev *domain.StoryContext, choice string) string {
	return fmt.Sprintf(`Analyze this choice in the context of the story:
Scenario: "%s"
User's choice: "%s"

Based on their decision in this context, score these traits (-10 to +10):
- Risk Tolerance (conservative vs aggressive)
- Decision Speed (analytical vs impulsive)
- Emotional Control (emotional vs disciplined)
- Adaptability (rigid vs flexible)
- Confidence (cautious vs overconfident)

Return only the numerical scores in this format:
Risk: [number]
Speed: [number]
Emotion: [number]
Adapt: [number]
Confidence: [number]`, prev.ScenarioText(), choice)
}

func evaluateSummary(traits domain.Traits, history []domain.Turn) string {
	return fmt.Sprintf(`Based on these trait scores:
Risk Tolerance: %.1f (-10 conservative to 10 aggressive)
Decision Speed: %.1f (-10 analytical to 10 impulsive)
Emotional Control: %.1f (-10 emotional to 10 disciplined)
Adaptability: %.1f (-10 rigid to 10 flexible)
Confidence: %.1f (-10 cautious to 10 overconfident)

And their journey: %s

Create a sarcastic, robot-style personality and trading profile analysis (max 100 words).
Include:
1. A witty observation about their personality
2. How this affects their trading style
3. One brutally honest area for improvement
4. A sarcastic piece of advice

Use a detached, robotic tone with subtle mockery. Think GLaDOS from Portal meets a trading psychologist.`,
		traits[domain.TraitRiskTolerance],
		traits[domain.TraitDecisionSpeed],
		traits[domain.TraitEmotionalControl],
		traits[domain.TraitAdaptability],
		traits[domain.TraitConfidence],
		narrate("Decision", history))
}

func adventureOpening(theme domain.Theme) string {
	return fmt.Sprintf(`Begin a %s story.
Set up the initial scenario (max 60 words) that introduces the main elements and hints at future developments.
This is Chapter 1 of %d, so establish the foundations for a longer narrative.

Provide exactly three choices (max 20 words each) that:
- Set different possible directions for the story
- Establish character traits or motivations
- Plant seeds for future developments`, strings.ToLower(theme.Name), AdventureChapters)
}

func adventureContinuation(theme domain.Theme, prev *domain.StoryContext, choice string, turn int) string {
	phase := domain.PhaseFor(turn)
	return fmt.Sprintf(`Continue this %s story:

Previous scenario: %s
User chose: "%s"
Current chapter: %d/%d
Story phase: %s

Write Chapter %d (max 60 words) that:
1. Follows naturally from their choice
2. %s
3. Maintains narrative momentum

Then provide exactly three choices that:
1. Offer meaningful story developments
2. Consider previous choices and consequences
3. Lead toward an eventual climax`,
		theme.Name, prev.ScenarioText(), choice, turn+1, AdventureChapters, phase, turn+1, phase.Directive())
}

func adventureSummary(theme domain.Theme, history []domain.Turn) string {
	return fmt.Sprintf(`Create a light-hearted, entertaining summary of this %s story:
%s

Write a fun recap (max 100 words) that:
1. Highlights the most interesting moments
2. Points out any funny coincidences or unexpected turns
3. Celebrates the epic conclusion
4. Maybe includes a playful comment about the protagonist's choices

Keep it cheerful and entertaining!`, theme.Name, narrate("Chapter", history))
}

// narrate joins the history as "<label> 1: <choice>. <label> 2: <choice>".
func narrate(label string, history []domain.Turn) string {
	parts := make([]string, len(history))
	for i, t := range history {
		parts[i] = fmt.Sprintf("%s %d: %s", label, i+1, t.Choice)
	}
	return strings.Join(parts, ". ")
}
