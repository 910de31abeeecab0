package ports

import "context"

// DefaultSystemRole is used when a caller has no mode-specific storyteller persona.
const DefaultSystemRole = "You are an AI storyteller focusing on relaxing and open-ended exploration stories."

// Completer sends one prompt to a chat-completion backend and returns the text of the answer.
type Completer interface {
	// Complete returns the completion text for prompt under the given system role.
	// Implementations return domain.ErrTimeout when their deadline elapses and
	// wrap domain.ErrCompletionFailed for any other backend failure.
	Complete(ctx context.Context, prompt, systemRole string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt, systemRole string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt, systemRole string) (string, error) {
	return f(ctx, prompt, systemRole)
}
