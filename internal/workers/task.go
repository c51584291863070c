package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/thrillee/glowshop/internal/logging"
)

// Task is a piece of follow-up work detached from the request that started
// it, such as a customer e-mail.
type Task struct {
	done chan struct{}
	err  error
}

// Go runs fn in the background. fn keeps the logging values of ctx but not its
// cancellation, and is bounded by timeout instead.
func Go(ctx context.Context, name string, timeout time.Duration, fn func(ctx context.Context) error) *Task {
	t := &Task{done: make(chan struct{})}
	taskCtx, cancel := context.WithTimeout(logging.ContextWithWorker(context.WithoutCancel(ctx), name), timeout)
	go func() {
		defer close(t.done)
		defer cancel()
		if err := fn(taskCtx); err != nil {
			t.err = err
			slog.ErrorContext(taskCtx, "Background task failed", slog.Any("error", err))
		}
	}()
	return t
}

// Wait blocks until the task finishes and returns its error.
func (t *Task) Wait() error {
	if t == nil {
		return nil
	}
	<-t.done
	return t.err
}
