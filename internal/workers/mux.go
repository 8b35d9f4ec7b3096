// internal/workers/mux.go
package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/parts-be/internal/pkg/logger"
)

// NewServeMux routes every task type to its processor
func NewServeMux(imports *ImportProcessor, replenish *ReplenishProcessor, log *slog.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(taskLogging(log))
	mux.HandleFunc(TypeImportCSV, imports.ProcessTask)
	mux.HandleFunc(TypeReplenishStock, replenish.ProcessTask)
	return mux
}

// taskLogging tags the context with the task id and logs each run.
func taskLogging(log *slog.Logger) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			if id, ok := asynq.GetTaskID(ctx); ok {
				ctx = logger.WithTaskID(ctx, id)
			}
			start := time.Now()
			err := next.ProcessTask(ctx, t)

			attrs := []any{
				slog.String("type", t.Type()),
				slog.Duration("duration_ms", time.Since(start)),
			}
			if err != nil {
				log.WarnContext(ctx, "task failed", append(attrs, slog.String("error", err.Error()))...)
			} else {
				log.DebugContext(ctx, "task done", attrs...)
			}
			return err
		})
	}
}
