package domain

// Global commands, matched case-insensitively and never forwarded to a mode.
const (
	CommandExit     = "exit"
	CommandRoadmap  = "roadmap"
	CommandSettings = "settings"
)

// TriggerToken reveals the mode menu from the greeting.
const TriggerToken = "adrift"

// ExtendedChoice is the token of the late-game 4th option (conclude / evaluate).
const ExtendedChoice = "4"

// BaseChoices are the tokens accepted on every turn.
var BaseChoices = []string{"1", "2", "3"}
