// internal/core/domain/stock.go
package domain

// DefaultReplenishMinimum is the replenishment floor used when none is given.
const DefaultReplenishMinimum = 10

// ImportResult holds the per-row outcome counts of one CSV import.
// Total always equals Created + Updated + Skipped.
type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// Written reports whether the import touched the repository.
func (r ImportResult) Written() bool {
	return r.Created+r.Updated > 0
}

// ReplenishResult holds the outcome of one replenishment sweep.
type ReplenishResult struct {
	Minimum      int `json:"minimum"`
	UpdatedCount int `json:"updated_count"`
}
