// internal/adapters/queue/redis.go
package queue

import (
	"github.com/hibiken/asynq"

	"github.com/ammerola/parts-be/internal/pkg/config"
)

// RedisConnOpt points asynq at the shared Redis server, on its own logical DB.
func RedisConnOpt(r config.RedisConfig, a config.AsynqConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:         r.Addr(),
		Password:     r.Password,
		DB:           a.RedisDB,
		DialTimeout:  r.DialTimeout,
		ReadTimeout:  r.ReadTimeout,
		WriteTimeout: r.WriteTimeout,
		PoolSize:     r.PoolSize,
	}
}

// OptionsFromSettings builds the enqueue options for the import queue.
func OptionsFromSettings(a config.AsynqConfig, i config.ImportConfig) Options {
	return Options{
		DefaultQueue: i.Queue,
		MaxRetry:     a.MaxRetry,
		Retention:    a.RetentionPeriod,
	}
}
