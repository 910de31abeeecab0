package domain

// SessionPhase is the orchestrator's position in the greeting -> menu -> story flow.
type SessionPhase string

const (
	PhaseGreeting SessionPhase = "greeting" // Waiting for the trigger token
	PhaseMenu     SessionPhase = "menu"     // Menu shown, waiting for a mode key
	PhaseStory    SessionPhase = "story"    // A mode is active and receives choice tokens
)

// Status is a read-only snapshot of a session, suitable for APIs.
type Status struct {
	SessionID string       `json:"session_id"`
	Phase     SessionPhase `json:"phase"`
	Mode      string       `json:"mode,omitempty"`
	Turn      int          `json:"turn"`
	Busy      bool         `json:"busy"`
}
