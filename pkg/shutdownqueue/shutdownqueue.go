// Package shutdownqueue collects cleanup tasks during startup and drains
// them in reverse order when the process exits.
//
// Register with Add from anywhere; drain once at the end of main:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	defer shutdownqueue.Shutdown(ctx) // or a linter-friendly wrapper
//
// Shutdown runs each task once, newest first, recovers panics, and
// reports all failures through errors.Join. Calling it again is a no-op.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is one cleanup step. It should honor ctx deadlines.
type Task func(ctx context.Context) error

var (
	mu     sync.Mutex
	tasks  []Task
	closed bool
)

// Add queues t for the next Shutdown. Nil tasks, and tasks added after
// shutdown has begun, are dropped.
func Add(t Task) {
	if t == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if closed {
		return
	}

	tasks = append(tasks, t)
}

// Shutdown drains the queue newest-first. If ctx expires mid-drain the
// remaining tasks are skipped and the context error joins the result.
func Shutdown(ctx context.Context) error {
	mu.Lock()

	pending := tasks
	tasks = nil
	closed = true

	mu.Unlock()

	var errs []error

	for i := len(pending) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))

			break
		}

		err := run(ctx, pending[i])
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func run(ctx context.Context, t Task) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task: %v", r)
		}
	}()

	return t(ctx)
}
