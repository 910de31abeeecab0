package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/adrift/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, redisURL string, mutate ...func(*ServeOptions)) (string, context.CancelFunc, <-chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := testConfig()
	cfg.RedisURL = redisURL

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	opts := ServeOptions{
		Config:    cfg,
		Listener:  ln,
		LogOutput: io.Discard,
		Completer: testutils.NewCompleter(),
	}
	for _, m := range mutate {
		m(&opts)
	}
	go func() {
		done <- RunServe(ctx, opts)
	}()

	base := fmt.Sprintf("http://%s", ln.Addr().String())
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	return base, cancel, done
}

func stopServer(t *testing.T, cancel context.CancelFunc, done <-chan error) {
	t.Helper()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * shutdownTimeout):
		t.Fatal("server did not stop")
	}
}

func playOverHTTP(t *testing.T, base string) {
	t.Helper()
	resp, err := http.Post(base+"/sessions", "application/json", nil)
	require.NoError(t, err)
	var created struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, input := range []string{"adrift", "1", "2"} {
		resp, err = http.Post(base+"/sessions/"+created.SessionID+"/input", "application/json",
			strings.NewReader(fmt.Sprintf(`{"input": %q}`, input)))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestRunServe(t *testing.T) {
	base, cancel, done := startServer(t, "")
	playOverHTTP(t, base)

	resp, err := http.Get(base + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "adrift_sessions 1")
	assert.Contains(t, string(body), `adrift_turns_total{continue="true",error="false",mode="wander"}`)

	stopServer(t, cancel, done)
}

// syncBuffer guards a bytes.Buffer shared with server goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunServe_DebugLogsTurns(t *testing.T) {
	var logs syncBuffer
	base, cancel, done := startServer(t, "", func(o *ServeOptions) {
		o.Debug = true
		o.LogOutput = &logs
	})
	playOverHTTP(t, base)
	stopServer(t, cancel, done)

	out := logs.String()
	assert.Contains(t, out, `"msg":"Turn"`)
	assert.Contains(t, out, `"mode":"wander"`)
}

func TestRunServe_RedisGuard(t *testing.T) {
	mr := miniredis.RunT(t)

	base, cancel, done := startServer(t, "redis://"+mr.Addr())
	playOverHTTP(t, base)
	assert.Empty(t, mr.Keys(), "busy markers are released after each input")

	stopServer(t, cancel, done)
}

func TestRunServe_InvalidRedisURL(t *testing.T) {
	cfg := testConfig()
	cfg.RedisURL = "not-a-url"

	err := RunServe(context.Background(), ServeOptions{
		Config:    cfg,
		LogOutput: io.Discard,
		Completer: testutils.NewCompleter(),
	})
	assert.ErrorContains(t, err, "redis")
}
