package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/thrillee/glowshop/internal/logging"
)

// DefaultRunTimeout bounds a single run of a loop started with RunLoop.
const DefaultRunTimeout = time.Minute

// WorkerFunc defines the function signature for work performed by a worker loop.
// It returns the number of items processed and any critical error encountered.
type WorkerFunc func(ctx context.Context, batchSize int) (int, error)

// RunLoop runs workerFunc every interval until ctx is cancelled.
func RunLoop(ctx context.Context, name string, interval time.Duration, batchSize int, workerFunc WorkerFunc) {
	runWorkerLoop(ctx, name, interval, batchSize, DefaultRunTimeout, workerFunc)
}

// runWorkerLoop runs a generic worker function periodically.
func runWorkerLoop(ctx context.Context, name string, interval time.Duration, batchSize int, timeout time.Duration, workerFunc WorkerFunc) {
	ctx = logging.ContextWithWorker(ctx, name)
	slog.InfoContext(ctx, "Worker starting", slog.Duration("interval", interval), slog.Int("batch_size", batchSize))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Worker stopping")
			return
		case <-ticker.C:
			runWork(ctx, batchSize, timeout, workerFunc)
		}
	}
}

// runWork executes a single batch of work with a timeout.
func runWork(ctx context.Context, batchSize int, timeout time.Duration, workerFunc WorkerFunc) int {
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	processedCount, err := workerFunc(runCtx, batchSize)
	if err != nil {
		// "no rows" only means there was nothing to do.
		if !errors.Is(err, pgx.ErrNoRows) {
			slog.ErrorContext(ctx, "Worker run failed", slog.Any("error", err))
		}
		return processedCount
	}
	if processedCount > 0 {
		slog.InfoContext(ctx, "Worker run processed items", slog.Int("count", processedCount))
	}
	return processedCount
}
