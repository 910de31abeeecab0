package session

const (
	greetingText = "Greetings wanderer,\nType 'adrift' to start or 'roadmap' to see what's next."

	roadmapText = `
Upcoming Updates:
1. Game Adventure Mode
2. Visual AI Generated Elements
3. Developing personalized AI Agents based on Evaluate mode.

Tell us what you want to see on Twitter and Telegram.

Type 'exit' to start imagining again.`

	msgReturning    = "Returning to the main menu..."
	msgNeedTrigger  = "Please type 'adrift' to proceed."
	msgUnknown      = "Unknown command: %s"
	msgChoose3      = "Please choose a valid option (1, 2, or 3)."
	msgChoose4      = "Please choose a valid option (1, 2, 3, or 4)."
	msgTimeout      = "The storyteller is taking too long to answer. Please try again."
	msgDidYouMean   = "Did you mean '%s'?"
	suggestDistance = 2
)
