package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/adrift/pkg/ports"
	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// Guard implements ports.BusyGuard using Redis SET NX PX.
// Busy markers expire after the TTL, so a crashed or hung request cannot lock a session forever.
type Guard struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Guard)

// WithTTL sets the expiration of busy markers.
func WithTTL(ttl time.Duration) Option {
	return func(g *Guard) {
		g.ttl = ttl
	}
}

// WithPrefix sets the key prefix for busy markers.
func WithPrefix(prefix string) Option {
	return func(g *Guard) {
		g.prefix = prefix
	}
}

// New creates a Redis guard from a redis:// URL.
func New(url string, opts ...Option) (*Guard, error) {
	redisOpts, err := backend.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewFromClient(backend.NewClient(redisOpts), opts...), nil
}

// NewFromClient creates a Redis guard from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Guard {
	g := &Guard{
		client: client,
		prefix: "adrift:busy:",
		ttl:    2 * time.Minute,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Guard) key(sessionID string) string {
	return g.prefix + sessionID
}

// TryAcquire sets the busy marker if it is absent.
func (g *Guard) TryAcquire(ctx context.Context, key string) (ports.ReleaseFunc, bool, error) {
	busyKey := g.key(key)
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, busyKey, token, g.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis error acquiring busy marker: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	return func(ctx context.Context) error {
		return g.client.Eval(ctx, releaseScript, []string{busyKey}, token).Err()
	}, true, nil
}

// Busy reports whether the busy marker exists.
func (g *Guard) Busy(ctx context.Context, key string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis error checking busy marker: %w", err)
	}
	return n > 0, nil
}

// Close closes the redis client.
func (g *Guard) Close() error {
	return g.client.Close()
}
