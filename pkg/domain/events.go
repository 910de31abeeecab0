package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurn       EventType = "turn"
	EventCompletion EventType = "completion"
	EventDropped    EventType = "dropped"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// TurnEvent reports a finished Advance call.
type TurnEvent struct {
	EventBase
	Mode     string `json:"mode"`
	Turn     int    `json:"turn"`
	Continue bool   `json:"continue"`
	Err      error  `json:"-"`
}

// CompletionEvent reports one round-trip to the completion endpoint.
type CompletionEvent struct {
	EventBase
	Model    string        `json:"model"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration"`
}

// DroppedEvent reports an input rejected because the session was busy.
type DroppedEvent struct {
	EventBase
	Input string `json:"input"`
}

// LifecycleHooks defines callbacks for orchestrator observability.
type LifecycleHooks struct {
	OnTurn       func(context.Context, *TurnEvent)
	OnCompletion func(context.Context, *CompletionEvent)
	OnDropped    func(context.Context, *DroppedEvent)
}
