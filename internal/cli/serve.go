package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/adrift/internal/metrics"
	httpAdapter "github.com/aretw0/adrift/pkg/adapters/http"
	"github.com/aretw0/adrift/pkg/adapters/redis"
	"github.com/aretw0/adrift/pkg/session"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 5 * time.Second
	pruneInterval   = time.Minute
)

// RunServe exposes sessions over HTTP until ctx is done or a signal arrives.
func RunServe(ctx context.Context, opts ServeOptions) error {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	cfg := opts.Config
	logger, err := createServerLogger(opts.LogOutput, cfg.LogLevel, opts.Debug)
	if err != nil {
		return err
	}
	logger.Info("Configuration loaded", "config", cfg)

	themes, err := loadThemes(cfg.ThemesFile)
	if err != nil {
		return fmt.Errorf("failed to load themes: %w", err)
	}

	collector := metrics.New(metrics.WithLogger(logger))
	hooks := collector.Hooks()
	if opts.Debug {
		hooks = combineHooks(hooks, createDebugHooks(logger))
	}

	completer := opts.Completer
	if completer == nil {
		completer = newCompleter(cfg, hooks, logger)
	}

	sessionOpts := []session.Option{
		session.WithHooks(hooks),
		session.WithLogger(logger),
		session.WithThemes(themes),
		session.WithSettings(session.Settings{
			Model:     cfg.Model,
			Timeout:   cfg.Timeout,
			Rendering: RenderingJSON,
		}),
	}
	if cfg.RedisURL != "" {
		guard, err := redis.New(cfg.RedisURL, redis.WithTTL(max(3*cfg.Timeout, time.Minute)))
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer guard.Close()
		sessionOpts = append(sessionOpts, session.WithGuard(guard))
		logger.Info("Busy guard backed by Redis")
	}

	manager := session.NewManager(
		httpAdapter.NewFactory(completer, sessionOpts...),
		session.WithManagerLogger(logger),
	)
	collector.WatchSessions(manager.Len)

	srv := &http.Server{
		Handler: httpAdapter.NewHandler(manager,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(collector.Handler()),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln := opts.Listener
	if ln == nil {
		ln, err = net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		logger.Info("Starting adrift server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		if sig := sigCtx.Signal(); sig != nil {
			logger.Info("Start shutdown", "signal", sig.String())
		}

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		logger.Info("adrift server stopped gracefully")
		return nil
	})
	g.Go(func() error {
		return manager.PruneEvery(gctx, pruneInterval, cfg.SessionIdle)
	})

	return g.Wait()
}
