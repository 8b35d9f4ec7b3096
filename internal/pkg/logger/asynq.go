// internal/pkg/logger/asynq.go
package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// AsynqLogger adapts slog to the asynq.Logger interface
type AsynqLogger struct {
	logger *slog.Logger
}

// NewAsynqLogger wraps logger for asynq servers and schedulers
func NewAsynqLogger(logger *slog.Logger) *AsynqLogger {
	return &AsynqLogger{logger: logger.With(slog.String("component", "asynq"))}
}

func (l *AsynqLogger) Debug(args ...interface{}) { l.logger.Debug(fmt.Sprint(args...)) }
func (l *AsynqLogger) Info(args ...interface{})  { l.logger.Info(fmt.Sprint(args...)) }
func (l *AsynqLogger) Warn(args ...interface{})  { l.logger.Warn(fmt.Sprint(args...)) }
func (l *AsynqLogger) Error(args ...interface{}) { l.logger.Error(fmt.Sprint(args...)) }

// Fatal logs and exits, as asynq expects.
func (l *AsynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...), slog.Bool("fatal", true))
	os.Exit(1)
}
