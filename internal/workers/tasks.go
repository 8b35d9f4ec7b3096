// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/ports"
)

const (
	TypeImportCSV      = "parts:import_csv"
	TypeReplenishStock = "parts:replenish_stock"
)

// ImportCSVPayload is the payload of a TypeImportCSV task
type ImportCSVPayload struct {
	CSVText    string `json:"csv_text"`
	Filename   string `json:"filename,omitempty"`
	ArchiveKey string `json:"archive_key,omitempty"`
}

// ImportCSVResult is stored as the result of a completed import task
type ImportCSVResult struct {
	domain.ImportResult
	Filename   string `json:"filename,omitempty"`
	ArchiveKey string `json:"archive_key,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// ReplenishPayload is the payload of a TypeReplenishStock task
type ReplenishPayload struct {
	Minimum int `json:"minimum"`
}

// NewImportCSVTask builds an import task for queue
func NewImportCSVTask(payload ImportCSVPayload, queue string) (ports.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return ports.Task{}, fmt.Errorf("failed to marshal import payload: %w", err)
	}
	return ports.Task{Type: TypeImportCSV, Payload: b, Queue: queue}, nil
}

// NewReplenishTask builds a replenishment task for queue
func NewReplenishTask(minimum int, queue string) (ports.Task, error) {
	b, err := json.Marshal(ReplenishPayload{Minimum: minimum})
	if err != nil {
		return ports.Task{}, fmt.Errorf("failed to marshal replenish payload: %w", err)
	}
	return ports.Task{Type: TypeReplenishStock, Payload: b, Queue: queue}, nil
}
