// Package openai implements ports.Completer on top of an OpenAI-compatible
// chat-completion endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/adrift/internal/logging"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/aretw0/adrift/pkg/ports"
	openaigo "github.com/sashabaranov/go-openai"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 30 * time.Second
)

// Completion statuses reported through domain.CompletionEvent.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusTimeout  = "timeout"
	StatusCanceled = "canceled"
)

// Config carries the connection settings of the completion endpoint.
type Config struct {
	APIKey  string
	BaseURL string // Empty means the public OpenAI endpoint
	Model   string
	Timeout time.Duration
}

// Client sends one system+user message pair per call. It never retries.
type Client struct {
	client  *openaigo.Client
	model   string
	timeout time.Duration
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger configures the logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHooks registers lifecycle hooks. Only OnCompletion is used.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Client) {
		c.hooks = hooks
	}
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a Client from cfg.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logging.NewNop(),
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	for _, opt := range opts {
		opt(c)
	}

	oc := openaigo.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if c.http != nil {
		oc.HTTPClient = c.http
	}
	c.client = openaigo.NewClientWithConfig(oc)
	return c
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

// Timeout returns the per-call deadline.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Complete implements ports.Completer.
func (c *Client) Complete(ctx context.Context, prompt, systemRole string) (string, error) {
	if systemRole == "" {
		systemRole = ports.DefaultSystemRole
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(callCtx, openaigo.ChatCompletionRequest{
		Model: c.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleSystem, Content: systemRole},
			{Role: openaigo.ChatMessageRoleUser, Content: prompt},
		},
	})
	duration := time.Since(start)

	if err != nil {
		err = c.classify(ctx, callCtx, err)
		c.report(ctx, statusOf(err), duration)
		c.logger.Error("completion request failed", "model", c.model, "duration", duration, "err", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		c.report(ctx, StatusError, duration)
		return "", fmt.Errorf("%w: response has no choices", domain.ErrCompletionFailed)
	}

	c.report(ctx, StatusSuccess, duration)
	c.logger.Debug("completion received",
		"model", c.model,
		"duration", duration,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) classify(parent, call context.Context, err error) error {
	switch {
	case errors.Is(call.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w after %s", domain.ErrTimeout, c.timeout)
	case parent.Err() != nil:
		return parent.Err()
	default:
		return fmt.Errorf("%w: %v", domain.ErrCompletionFailed, err)
	}
}

func statusOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrTimeout):
		return StatusTimeout
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	default:
		return StatusError
	}
}

func (c *Client) report(ctx context.Context, status string, d time.Duration) {
	if c.hooks.OnCompletion == nil {
		return
	}
	c.hooks.OnCompletion(ctx, &domain.CompletionEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventCompletion,
		},
		Model:    c.model,
		Status:   status,
		Duration: d,
	})
}
