// internal/workers/replenish_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/ports"
	"github.com/ammerola/parts-be/internal/pkg/metrics"
)

// ReplenishProcessor raises every quantity below the minimum to the minimum
type ReplenishProcessor struct {
	replenisher ports.StockReplenisher
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewReplenishProcessor creates a new replenishment processor. m may be nil.
func NewReplenishProcessor(replenisher ports.StockReplenisher, m *metrics.Metrics, logger *slog.Logger) *ReplenishProcessor {
	return &ReplenishProcessor{
		replenisher: replenisher,
		metrics:     m,
		logger:      logger.With(slog.String("processor", "replenish_stock")),
	}
}

// ProcessTask runs one replenishment sweep. An empty payload uses the
// default minimum.
func (p *ReplenishProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	payload := ReplenishPayload{Minimum: domain.DefaultReplenishMinimum}
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	result, err := p.replenisher.Replenish(ctx, payload.Minimum)
	p.metrics.ObserveReplenish(result, err)
	p.metrics.ObserveTask(t.Type(), time.Since(start), err)

	if err != nil {
		p.logger.ErrorContext(ctx, "stock replenishment failed",
			slog.Int("minimum", payload.Minimum),
			slog.String("error", err.Error()))
		if errors.Is(err, domain.ErrValidation) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}

	writeResult(ctx, t, result, p.logger)
	return nil
}
