// internal/handlers/health.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/parts-be/internal/core/ports"
	"github.com/ammerola/parts-be/internal/pkg/config"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// RedisPinger is the part of *redis.Client the health checks use.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
	PoolStats() *redis.PoolStats
}

// QueueInspector is the part of *asynq.Inspector the health checks use.
type QueueInspector interface {
	Queues() ([]string, error)
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
	Servers() ([]*asynq.ServerInfo, error)
}

// HealthHandler serves liveness and readiness for the API process.
type HealthHandler struct {
	db        ports.Database
	redis     RedisPinger
	asynq     QueueInspector
	app       config.AppConfig
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler. inspector may be nil.
func NewHealthHandler(
	database ports.Database,
	redisClient RedisPinger,
	inspector QueueInspector,
	app config.AppConfig,
	logger *slog.Logger,
) *HealthHandler {
	return &HealthHandler{
		db:        database,
		redis:     redisClient,
		asynq:     inspector,
		app:       app,
		logger:    logger.With(slog.String("handler", "health")),
		startTime: time.Now(),
	}
}

// HealthStatus is the /health response body
type HealthStatus struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Uptime      string                 `json:"uptime"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]ServiceInfo `json:"services"`
	Runtime     RuntimeInfo            `json:"runtime"`
}

// ServiceInfo is the outcome of probing one dependency
type ServiceInfo struct {
	Status       string                 `json:"status"`
	Message      string                 `json:"message,omitempty"`
	ResponseTime string                 `json:"response_time,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// RuntimeInfo carries a few Go runtime figures
type RuntimeInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	HeapAllocMB   uint64 `json:"heap_alloc_mb"`
	NumGC         uint32 `json:"num_gc"`
}

// probe checks one dependency and fills details on success.
type probe struct {
	name     string
	required bool
	run      func(ctx context.Context, details map[string]interface{}) error
}

func (h *HealthHandler) probes() []probe {
	probes := []probe{
		{name: "database", required: true, run: h.probeDatabase},
		{name: "redis", required: true, run: h.probeRedis},
	}
	if h.asynq != nil {
		probes = append(probes, probe{name: "asynq", run: h.probeQueues})
	}
	return probes
}

// Health reports every dependency. Any failing probe degrades the service.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := HealthStatus{
		Status:      statusHealthy,
		Version:     h.app.Version,
		Environment: h.app.Environment,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now().UTC(),
		Services:    make(map[string]ServiceInfo),
		Runtime:     runtimeInfo(),
	}

	for _, p := range h.probes() {
		info := h.runProbe(ctx, p)
		health.Services[p.name] = info
		if info.Status != statusHealthy {
			health.Status = statusDegraded
		}
	}

	status := http.StatusOK
	if health.Status != statusHealthy {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respondJSON(w, h.logger, status, health)
}

// Readiness reports whether the required dependencies answer.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ready := true
	details := make(map[string]string)
	for _, p := range h.probes() {
		if !p.required {
			continue
		}
		if err := p.run(ctx, map[string]interface{}{}); err != nil {
			ready = false
			details[p.name] = "not ready"
			continue
		}
		details[p.name] = "ready"
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respondJSON(w, h.logger, status, map[string]interface{}{
		"ready":   ready,
		"details": details,
	})
}

func (h *HealthHandler) runProbe(ctx context.Context, p probe) ServiceInfo {
	start := time.Now()
	info := ServiceInfo{Status: statusHealthy, Details: make(map[string]interface{})}

	if err := p.run(ctx, info.Details); err != nil {
		h.logger.ErrorContext(ctx, "health check failed",
			slog.String("dependency", p.name),
			slog.String("error", err.Error()))
		return ServiceInfo{Status: statusUnhealthy, Message: err.Error()}
	}

	info.ResponseTime = time.Since(start).String()
	return info
}

func (h *HealthHandler) probeDatabase(ctx context.Context, details map[string]interface{}) error {
	if err := h.db.Ping(ctx); err != nil {
		return err
	}
	for k, v := range h.db.Health(ctx) {
		details[k] = v
	}
	return nil
}

func (h *HealthHandler) probeRedis(ctx context.Context, details map[string]interface{}) error {
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return err
	}
	if stats := h.redis.PoolStats(); stats != nil {
		details["total_conns"] = stats.TotalConns
		details["idle_conns"] = stats.IdleConns
	}
	return nil
}

// probeQueues reports the backlog of each queue: imports waiting, retrying
// or given up on.
func (h *HealthHandler) probeQueues(_ context.Context, details map[string]interface{}) error {
	queues, err := h.asynq.Queues()
	if err != nil {
		return err
	}

	backlog := make(map[string]interface{}, len(queues))
	for _, queue := range queues {
		info, err := h.asynq.GetQueueInfo(queue)
		if err != nil {
			continue
		}
		backlog[queue] = map[string]int{
			"pending":  info.Pending,
			"active":   info.Active,
			"retry":    info.Retry,
			"archived": info.Archived,
		}
	}
	details["queues"] = backlog

	if servers, err := h.asynq.Servers(); err == nil {
		details["workers"] = len(servers)
	}
	return nil
}

func runtimeInfo() RuntimeInfo {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return RuntimeInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		HeapAllocMB:   mem.HeapAlloc / 1024 / 1024,
		NumGC:         mem.NumGC,
	}
}
