// Package server runs the layout daemon's long-lived components and winds
// them down cleanly on SIGINT or SIGTERM.
package server

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// A Component is one long-lived piece of the daemon, such as the HTTP layout
// server. Serve blocks until the component stops or fails; Shutdown asks the
// component to stop and returns once it has let go of its resources.
type Component interface {
	Serve() error
	Shutdown()
}

// Runner serves registered components until a termination signal arrives or
// one of them fails, then shuts them all down in reverse registration order.
type Runner struct {
	logger *zap.Logger

	mu      sync.Mutex
	entries []runnerEntry
}

type runnerEntry struct {
	name      string
	component Component
}

// NewRunner creates a Runner logging to logger.
//
// Precondition: logger must be non-nil.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logger}
}

// Register adds a named component. Components are served in registration
// order and shut down in reverse.
//
// Precondition: name must be non-empty; c must be non-nil.
func (r *Runner) Register(name string, c Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, runnerEntry{name: name, component: c})
}

// Run serves every registered component and blocks until SIGINT, SIGTERM,
// context cancellation, or a component failure, whichever comes first. The
// failure, if any, is returned after every component has shut down.
//
// Postcondition: every registered component has been shut down.
func (r *Runner) Run(ctx context.Context) error {
	started := time.Now()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	failures := make(chan error, len(r.entries))
	for _, e := range r.entries {
		go func(e runnerEntry) {
			r.logger.Info("component serving", zap.String("component", e.name))
			if err := e.component.Serve(); err != nil {
				failures <- fmt.Errorf("component %s: %w", e.name, err)
			}
		}(e)
	}

	var cause error
	select {
	case <-ctx.Done():
		r.logger.Info("shutdown requested",
			zap.Duration("uptime", time.Since(started)),
		)
	case cause = <-failures:
		r.logger.Error("component failed, shutting down", zap.Error(cause))
	}

	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		shutdownStart := time.Now()
		e.component.Shutdown()
		r.logger.Info("component shut down",
			zap.String("component", e.name),
			zap.Duration("elapsed", time.Since(shutdownStart)),
		)
	}
	r.logger.Info("daemon stopped",
		zap.Duration("uptime", time.Since(started)),
	)
	return cause
}
