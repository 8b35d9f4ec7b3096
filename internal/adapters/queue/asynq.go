// internal/adapters/queue/asynq.go
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/parts-be/internal/core/ports"
	"github.com/ammerola/parts-be/internal/pkg/metrics"
)

// enqueuer is the part of *asynq.Client the queue uses.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Options controls how submitted tasks are enqueued
type Options struct {
	DefaultQueue string
	MaxRetry     int
	// Retention keeps completed tasks and their results readable.
	Retention time.Duration
	Timeout   time.Duration
}

// AsynqQueue submits tasks to Redis through asynq
type AsynqQueue struct {
	client  enqueuer
	opts    Options
	metrics *metrics.Metrics
	logger  *slog.Logger
}

var _ ports.TaskQueue = (*AsynqQueue)(nil)

// NewAsynqQueue creates a task queue. m may be nil.
func NewAsynqQueue(client enqueuer, opts Options, m *metrics.Metrics, logger *slog.Logger) *AsynqQueue {
	if opts.DefaultQueue == "" {
		opts.DefaultQueue = "default"
	}
	return &AsynqQueue{
		client:  client,
		opts:    opts,
		metrics: m,
		logger:  logger.With(slog.String("adapter", "asynq_queue")),
	}
}

// Submit enqueues task and returns as soon as it is stored
func (q *AsynqQueue) Submit(ctx context.Context, task ports.Task) (*ports.TaskHandle, error) {
	queueName := task.Queue
	if queueName == "" {
		queueName = q.opts.DefaultQueue
	}

	opts := []asynq.Option{
		asynq.Queue(queueName),
		asynq.MaxRetry(q.opts.MaxRetry),
	}
	if q.opts.Retention > 0 {
		opts = append(opts, asynq.Retention(q.opts.Retention))
	}
	if q.opts.Timeout > 0 {
		opts = append(opts, asynq.Timeout(q.opts.Timeout))
	}

	info, err := q.client.EnqueueContext(ctx, asynq.NewTask(task.Type, task.Payload), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue %s task: %w", task.Type, err)
	}
	q.metrics.TaskEnqueued(task.Type)

	q.logger.InfoContext(ctx, "task enqueued",
		slog.String("task_id", info.ID),
		slog.String("type", info.Type),
		slog.String("queue", info.Queue))

	return &ports.TaskHandle{
		ID:         info.ID,
		Type:       info.Type,
		Queue:      info.Queue,
		EnqueuedAt: time.Now().UTC(),
	}, nil
}

// taskInfoGetter is the part of *asynq.Inspector the inspector uses.
type taskInfoGetter interface {
	GetTaskInfo(queue, id string) (*asynq.TaskInfo, error)
}

// AsynqInspector reads task state from asynq
type AsynqInspector struct {
	inspector taskInfoGetter
}

var _ ports.TaskInspector = (*AsynqInspector)(nil)

// NewAsynqInspector wraps an asynq inspector
func NewAsynqInspector(inspector taskInfoGetter) *AsynqInspector {
	return &AsynqInspector{inspector: inspector}
}

// TaskStatus looks up a task by queue and id
func (i *AsynqInspector) TaskStatus(ctx context.Context, queue, id string) (*ports.TaskStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := i.inspector.GetTaskInfo(queue, id)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			return nil, ports.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to inspect task: %w", err)
	}

	return toTaskStatus(info), nil
}

func toTaskStatus(info *asynq.TaskInfo) *ports.TaskStatus {
	status := &ports.TaskStatus{
		ID:        info.ID,
		Type:      info.Type,
		Queue:     info.Queue,
		State:     info.State.String(),
		Retried:   info.Retried,
		MaxRetry:  info.MaxRetry,
		LastError: info.LastErr,
	}
	if !info.CompletedAt.IsZero() {
		completed := info.CompletedAt.UTC()
		status.CompletedAt = &completed
	}
	if len(info.Result) > 0 && json.Valid(info.Result) {
		status.Result = json.RawMessage(info.Result)
	}
	return status
}
