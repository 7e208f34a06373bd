// Package server provides process lifecycle management for the foreground
// game task, including shutdown on termination signals.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ErrInterrupted is returned by Run when a termination signal arrives before
// the task finishes.
var ErrInterrupted = errors.New("interrupted by signal")

// Task is a blocking foreground job, such as a replay loop reading stdin.
type Task func(ctx context.Context) error

// Lifecycle runs one task until it finishes, fails, or the process is told
// to stop.
type Lifecycle struct {
	logger  *zap.Logger
	signals <-chan os.Signal
}

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithSignals replaces the process signal subscription with ch.
func WithSignals(ch <-chan os.Signal) Option {
	return func(l *Lifecycle) { l.signals = ch }
}

// NewLifecycle creates a new Lifecycle manager.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger, opts ...Option) *Lifecycle {
	l := &Lifecycle{logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run starts task and blocks until it returns, ctx is cancelled, or SIGINT
// or SIGTERM is received. A task blocked on input is abandoned rather than
// waited for; its context is cancelled either way.
//
// Postcondition: Returns nil if the task finished cleanly, the task's
// wrapped error, ctx.Err(), or ErrInterrupted.
func (l *Lifecycle) Run(ctx context.Context, name string, task Task) error {
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := l.signals
	if sigCh == nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(ch)
		sigCh = ch
	}

	l.logger.Info("starting task", zap.String("task", name))
	errCh := make(chan error, 1)
	go func() {
		errCh <- task(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			l.logger.Error("task failed",
				zap.String("task", name),
				zap.Error(err),
				zap.Duration("uptime", time.Since(start)),
			)
			return fmt.Errorf("task %s: %w", name, err)
		}
		l.logger.Info("task finished",
			zap.String("task", name),
			zap.Duration("uptime", time.Since(start)),
		)
		return nil
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down",
			zap.String("task", name),
			zap.String("signal", sig.String()),
		)
		return ErrInterrupted
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down", zap.String("task", name))
		return ctx.Err()
	}
}
