// Package goroutine runs background work (message consumers, scheduled jobs)
// under a shared concurrency limit so shutdown can wait for all of it.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/mabinihs/portal/internal/pkg/stacktrace"
	"go.uber.org/atomic"
)

// DefaultMaxGoroutine is multiplied by NumCPU when NewManager gets a non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager starts tasks with a bounded semaphore, recovers their panics and
// collects their errors for Wait.
type Manager struct {
	wg      sync.WaitGroup
	sema    chan struct{}
	running atomic.Int32

	errMu sync.Mutex
	errs  []error

	stateMu sync.RWMutex
	closed  bool
}

// NewManager creates a Manager allowing at most maxGoroutine concurrent tasks.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}
	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go runs f in a new goroutine. It is a no-op after Wait has been called or
// when the limit is reached; both cases are logged.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) {
	if g == nil {
		return
	}

	g.stateMu.RLock()
	defer g.stateMu.RUnlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, task dropped")
		return
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached, task dropped", "limit", cap(g.sema))
		return
	}

	g.running.Inc()
	g.wg.Go(func() {
		defer func() {
			g.running.Dec()
			<-g.sema

			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
					slog.ErrorContext(ctx, "panic in goroutine", "panic", rvr, "stack", paths)
				} else {
					slog.ErrorContext(ctx, "panic in goroutine", "panic", rvr, "stack", string(stack))
				}
			}
		}()

		if ctx.Err() != nil {
			slog.WarnContext(ctx, "goroutine canceled before start", "error", ctx.Err())
			return
		}

		if err := f(ctx); err != nil {
			g.errMu.Lock()
			g.errs = append(g.errs, err)
			g.errMu.Unlock()
		}
	})
}

// Running returns the number of tasks currently executing.
func (g *Manager) Running() int {
	return int(g.running.Load())
}

// Wait closes the manager to new tasks, blocks until running ones finish and
// returns their joined errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	g.errMu.Lock()
	defer g.errMu.Unlock()
	return errors.Join(g.errs...)
}
