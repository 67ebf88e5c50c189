package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ShutdownHook is a function called during graceful shutdown
type ShutdownHook func(ctx context.Context) error

// GracefulShutdown runs a Server until its context is cancelled, then
// drains connections and runs the registered hooks.
type GracefulShutdown struct {
	server  *Server
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	hooks []ShutdownHook
}

// NewGracefulShutdown creates a new graceful shutdown handler. A zero
// timeout means 30 seconds.
func NewGracefulShutdown(server *Server, timeout time.Duration, logger *zap.Logger) *GracefulShutdown {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GracefulShutdown{server: server, timeout: timeout, logger: logger}
}

// RegisterHook registers a hook to run after the HTTP server has stopped,
// e.g. closing the store.
func (gs *GracefulShutdown) RegisterHook(hook ShutdownHook) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.hooks = append(gs.hooks, hook)
}

// Run serves until ctx is done or the server fails. Cancellation triggers a
// graceful shutdown bounded by the configured timeout.
func (gs *GracefulShutdown) Run(ctx context.Context) error {
	if err := gs.server.Listen(); err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		gs.logger.Info("server listening", zap.String("addr", gs.server.Addr()))
		if err := gs.server.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server failed: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		gs.logger.Info("shutdown requested", zap.Duration("timeout", gs.timeout))
		return gs.shutdown()
	case err, ok := <-errChan:
		if !ok {
			return nil
		}
		_ = gs.runHooks(context.Background())
		return err
	}
}

func (gs *GracefulShutdown) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), gs.timeout)
	defer cancel()

	var result error
	if err := gs.server.Shutdown(ctx); err != nil {
		gs.logger.Error("server shutdown failed", zap.Error(err))
		result = fmt.Errorf("server shutdown error: %w", err)
	}
	if err := gs.runHooks(ctx); err != nil && result == nil {
		result = err
	}
	gs.logger.Info("server stopped")
	return result
}

// runHooks runs every hook, continuing past failures, and returns the
// first error.
func (gs *GracefulShutdown) runHooks(ctx context.Context) error {
	gs.mu.Lock()
	hooks := make([]ShutdownHook, len(gs.hooks))
	copy(hooks, gs.hooks)
	gs.mu.Unlock()

	var first error
	for i, hook := range hooks {
		if err := hook(ctx); err != nil {
			gs.logger.Warn("shutdown hook failed", zap.Int("hook", i), zap.Error(err))
			if first == nil {
				first = fmt.Errorf("shutdown hook %d: %w", i, err)
			}
		}
	}
	return first
}
