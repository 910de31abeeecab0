// Package completion holds policies layered over a ports.Completer.
package completion

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/adrift/internal/logging"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/ports"
)

// FallbackText is what the storyteller "says" when the backend fails.
const FallbackText = "Error communicating with the AI. Please try again later."

// Fallback downgrades backend failures to a fixed apology so story flow never breaks
// on network issues. Timeouts and cancellation are passed through untouched.
type Fallback struct {
	next   ports.Completer
	text   string
	logger *slog.Logger
}

// Option configures a Fallback.
type Option func(*Fallback)

// WithText overrides the apology text.
func WithText(text string) Option {
	return func(f *Fallback) {
		f.text = text
	}
}

// WithLogger configures the logger used to record downgraded failures.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fallback) {
		f.logger = logger
	}
}

// WithFallback wraps next with the fallback policy.
func WithFallback(next ports.Completer, opts ...Option) *Fallback {
	f := &Fallback{
		next:   next,
		text:   FallbackText,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Complete implements ports.Completer.
func (f *Fallback) Complete(ctx context.Context, prompt, systemRole string) (string, error) {
	text, err := f.next.Complete(ctx, prompt, systemRole)
	if err == nil {
		return text, nil
	}
	if errors.Is(err, domain.ErrTimeout) || errors.Is(err, context.Canceled) {
		return "", err
	}
	f.logger.Warn("completion failed, serving fallback text", "err", err)
	return f.text, nil
}
