// internal/workers/scheduler.go
package workers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/parts-be/internal/pkg/logger"
)

// ScheduleConfig describes the periodic replenishment job
type ScheduleConfig struct {
	ReplenishCron    string
	Timezone         string
	ReplenishMinimum int
	Queue            string
}

// registrar is the part of *asynq.Scheduler used to register entries.
type registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

// NewScheduler creates a scheduler that enqueues the replenishment task on
// cfg.ReplenishCron, evaluated in cfg.Timezone.
func NewScheduler(redisOpt asynq.RedisConnOpt, cfg ScheduleConfig, log *slog.Logger) (*asynq.Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
	}

	log = log.With(slog.String("component", "scheduler"))
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: loc,
		Logger:   logger.NewAsynqLogger(log),
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				log.Error("failed to enqueue scheduled task", slog.String("error", err.Error()))
				return
			}
			log.Info("scheduled task enqueued",
				slog.String("task_id", info.ID),
				slog.String("type", info.Type))
		},
	})

	entryID, err := registerReplenish(scheduler, cfg)
	if err != nil {
		return nil, err
	}

	log.Info("replenishment scheduled",
		slog.String("entry_id", entryID),
		slog.String("cron", cfg.ReplenishCron),
		slog.String("timezone", loc.String()),
		slog.Int("minimum", cfg.ReplenishMinimum))

	return scheduler, nil
}

func registerReplenish(r registrar, cfg ScheduleConfig) (string, error) {
	if cfg.ReplenishMinimum < 0 {
		return "", fmt.Errorf("replenish minimum must not be negative, got %d", cfg.ReplenishMinimum)
	}
	payload, err := json.Marshal(ReplenishPayload{Minimum: cfg.ReplenishMinimum})
	if err != nil {
		return "", fmt.Errorf("failed to marshal replenish payload: %w", err)
	}

	queue := cfg.Queue
	if queue == "" {
		queue = "default"
	}

	entryID, err := r.Register(cfg.ReplenishCron, asynq.NewTask(TypeReplenishStock, payload), asynq.Queue(queue))
	if err != nil {
		return "", fmt.Errorf("failed to register replenish schedule: %w", err)
	}
	return entryID, nil
}
