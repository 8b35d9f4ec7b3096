// internal/core/ports/task_queue.go
package ports

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrTaskNotFound is returned by a TaskInspector for unknown task ids.
var ErrTaskNotFound = errors.New("task not found")

// Task is a unit of background work.
type Task struct {
	Type    string
	Payload []byte
	Queue   string
}

// TaskHandle identifies a submitted task.
type TaskHandle struct {
	ID         string    `json:"task_id"`
	Type       string    `json:"type"`
	Queue      string    `json:"queue"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// TaskQueue submits tasks without waiting for them to run.
type TaskQueue interface {
	Submit(ctx context.Context, task Task) (*TaskHandle, error)
}

// TaskStatus is the observable state of a submitted task.
type TaskStatus struct {
	ID          string          `json:"task_id"`
	Type        string          `json:"type"`
	Queue       string          `json:"queue"`
	State       string          `json:"state"`
	Retried     int             `json:"retried"`
	MaxRetry    int             `json:"max_retry"`
	LastError   string          `json:"last_error,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// TaskInspector reads the state and stored result of a task.
type TaskInspector interface {
	TaskStatus(ctx context.Context, queue, id string) (*TaskStatus, error)
}
