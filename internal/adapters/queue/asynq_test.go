package queue

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/parts-be/internal/core/ports"
	"github.com/ammerola/parts-be/test/helpers"
)

type fakeEnqueuer struct {
	task *asynq.Task
	opts []asynq.Option
	err  error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.task = task
	f.opts = opts

	queueName := "default"
	for _, o := range opts {
		if o.Type() == asynq.QueueOpt {
			queueName = o.Value().(string)
		}
	}
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type(), Queue: queueName, Payload: task.Payload()}, nil
}

func optionValues(opts []asynq.Option) map[asynq.OptionType]interface{} {
	out := make(map[asynq.OptionType]interface{}, len(opts))
	for _, o := range opts {
		out[o.Type()] = o.Value()
	}
	return out
}

func TestAsynqQueue_Submit(t *testing.T) {
	tests := []struct {
		name      string
		task      ports.Task
		opts      Options
		wantQueue string
		wantOpts  map[asynq.OptionType]interface{}
	}{
		{
			name:      "explicit_queue",
			task:      ports.Task{Type: "parts:import_csv", Payload: []byte(`{"csv_text":"a"}`), Queue: "critical"},
			opts:      Options{DefaultQueue: "default", MaxRetry: 3, Retention: 24 * time.Hour},
			wantQueue: "critical",
			wantOpts: map[asynq.OptionType]interface{}{
				asynq.QueueOpt:     "critical",
				asynq.MaxRetryOpt:  3,
				asynq.RetentionOpt: 24 * time.Hour,
			},
		},
		{
			name:      "default_queue_and_timeout",
			task:      ports.Task{Type: "parts:replenish_stock", Payload: []byte(`{"minimum":10}`)},
			opts:      Options{DefaultQueue: "low", MaxRetry: 1, Timeout: time.Minute},
			wantQueue: "low",
			wantOpts: map[asynq.OptionType]interface{}{
				asynq.QueueOpt:    "low",
				asynq.MaxRetryOpt: 1,
				asynq.TimeoutOpt:  time.Minute,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeEnqueuer{}
			q := NewAsynqQueue(client, tt.opts, nil, helpers.TestLogger())

			handle, err := q.Submit(context.Background(), tt.task)
			require.NoError(t, err)

			assert.Equal(t, "task-1", handle.ID)
			assert.Equal(t, tt.task.Type, handle.Type)
			assert.Equal(t, tt.wantQueue, handle.Queue)
			assert.False(t, handle.EnqueuedAt.IsZero())

			assert.Equal(t, tt.task.Type, client.task.Type())
			assert.Equal(t, tt.task.Payload, client.task.Payload())
			assert.Equal(t, tt.wantOpts, optionValues(client.opts))
		})
	}
}

func TestAsynqQueue_Submit_Error(t *testing.T) {
	client := &fakeEnqueuer{err: errors.New("redis unavailable")}
	q := NewAsynqQueue(client, Options{}, nil, helpers.TestLogger())

	handle, err := q.Submit(context.Background(), ports.Task{Type: "parts:import_csv"})
	assert.Nil(t, handle)
	assert.ErrorContains(t, err, "redis unavailable")
}

type fakeInspector struct {
	info *asynq.TaskInfo
	err  error
}

func (f *fakeInspector) GetTaskInfo(queue, id string) (*asynq.TaskInfo, error) {
	return f.info, f.err
}

func TestAsynqInspector_TaskStatus(t *testing.T) {
	completedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		inspector *fakeInspector
		want      *ports.TaskStatus
		errorIs   error
	}{
		{
			name: "completed_with_result",
			inspector: &fakeInspector{info: &asynq.TaskInfo{
				ID: "t1", Type: "parts:import_csv", Queue: "default",
				State: asynq.TaskStateCompleted, MaxRetry: 3,
				CompletedAt: completedAt,
				Result:      []byte(`{"created":1}`),
			}},
			want: &ports.TaskStatus{
				ID: "t1", Type: "parts:import_csv", Queue: "default",
				State: "completed", MaxRetry: 3,
				CompletedAt: &completedAt,
				Result:      []byte(`{"created":1}`),
			},
		},
		{
			name: "retrying_without_result",
			inspector: &fakeInspector{info: &asynq.TaskInfo{
				ID: "t2", Type: "parts:import_csv", Queue: "default",
				State: asynq.TaskStateRetry, Retried: 1, MaxRetry: 3,
				LastErr: "database unavailable",
				Result:  []byte("not json"),
			}},
			want: &ports.TaskStatus{
				ID: "t2", Type: "parts:import_csv", Queue: "default",
				State: "retry", Retried: 1, MaxRetry: 3,
				LastError: "database unavailable",
			},
		},
		{
			name:      "unknown_task",
			inspector: &fakeInspector{err: fmt.Errorf("lookup: %w", asynq.ErrTaskNotFound)},
			errorIs:   ports.ErrTaskNotFound,
		},
		{
			name:      "unknown_queue",
			inspector: &fakeInspector{err: asynq.ErrQueueNotFound},
			errorIs:   ports.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := NewAsynqInspector(tt.inspector).TaskStatus(context.Background(), "default", "t")
			if tt.errorIs != nil {
				assert.ErrorIs(t, err, tt.errorIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestAsynqInspector_TaskStatus_Error(t *testing.T) {
	_, err := NewAsynqInspector(&fakeInspector{err: errors.New("connection refused")}).
		TaskStatus(context.Background(), "default", "t")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrTaskNotFound)
}
