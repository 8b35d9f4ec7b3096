// test/helpers/part_store.go
package helpers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/ports"
)

// PartStore is an in-memory ports.PartRepository with the same matching and
// ordering rules as the PostgreSQL repository.
type PartStore struct {
	mu    sync.Mutex
	parts []*domain.Part
	// Calls counts repository calls by method name.
	Calls map[string]int
	// FailUpsertAfter makes UpsertByNameAndPrice fail once it has succeeded
	// this many times. Zero disables it.
	FailUpsertAfter int
	FailErr         error
}

var _ ports.PartRepository = (*PartStore)(nil)

// NewPartStore creates a store seeded with copies of parts.
func NewPartStore(parts ...*domain.Part) *PartStore {
	s := &PartStore{Calls: map[string]int{}}
	for _, p := range parts {
		cp := *p
		s.insert(&cp)
		*p = cp
	}
	return s
}

func (s *PartStore) insert(p *domain.Part) {
	now := time.Now().UTC()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Price = domain.NormalizePrice(p.Price)
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.parts = append(s.parts, &cp)
}

// Snapshot returns copies of every stored part in insertion order.
func (s *PartStore) Snapshot() []domain.Part {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Part, len(s.parts))
	for i, p := range s.parts {
		out[i] = *p
	}
	return out
}

// FindByName returns copies of every part named name.
func (s *PartStore) FindByName(name string) []domain.Part {
	var out []domain.Part
	for _, p := range s.Snapshot() {
		if p.Name == name {
			out = append(out, p)
		}
	}
	return out
}

func (s *PartStore) Create(ctx context.Context, part *domain.Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["Create"]++
	part.ID = uuid.Nil
	s.insert(part)
	return nil
}

func (s *PartStore) Update(ctx context.Context, part *domain.Part) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["Update"]++
	for _, p := range s.parts {
		if p.ID == part.ID {
			p.Name = part.Name
			p.Description = part.Description
			p.Price = domain.NormalizePrice(part.Price)
			p.Quantity = part.Quantity
			p.UpdatedAt = time.Now().UTC()
			part.CreatedAt = p.CreatedAt
			part.UpdatedAt = p.UpdatedAt
			return nil
		}
	}
	return domain.ErrPartNotFound
}

func (s *PartStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Part, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["FindByID"]++
	for _, p := range s.parts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrPartNotFound
}

func (s *PartStore) List(ctx context.Context, params ports.ListParams) ([]*domain.Part, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["List"]++

	var matched []*domain.Part
	for _, p := range s.parts {
		if params.Search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(params.Search)) {
			cp := *p
			matched = append(matched, &cp)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := int64(len(matched))
	start := (params.Page - 1) * params.PageSize
	if start < 0 || start >= len(matched) {
		return []*domain.Part{}, total, nil
	}
	end := start + params.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *PartStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["Delete"]++
	for i, p := range s.parts {
		if p.ID == id {
			s.parts = append(s.parts[:i], s.parts[i+1:]...)
			return nil
		}
	}
	return domain.ErrPartNotFound
}

func (s *PartStore) ForEach(ctx context.Context, fn func(*domain.Part) error) error {
	for _, p := range s.Snapshot() {
		cp := p
		if err := fn(&cp); err != nil {
			return err
		}
	}
	return nil
}

func (s *PartStore) UpsertByNameAndPrice(ctx context.Context, part *domain.Part) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["UpsertByNameAndPrice"]++

	if s.FailUpsertAfter > 0 && s.Calls["UpsertByNameAndPrice"] > s.FailUpsertAfter {
		return false, s.FailErr
	}

	price := domain.NormalizePrice(part.Price)
	for _, p := range s.parts {
		if p.Name == part.Name && p.Price.Equal(price) {
			p.Description = part.Description
			p.Quantity = part.Quantity
			p.UpdatedAt = time.Now().UTC()
			*part = *p
			return false, nil
		}
	}

	part.ID = uuid.Nil
	s.insert(part)
	return true, nil
}

func (s *PartStore) RaiseQuantityFloor(ctx context.Context, minimum int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["RaiseQuantityFloor"]++

	var n int64
	for _, p := range s.parts {
		if p.Quantity < minimum {
			p.Quantity = minimum
			p.UpdatedAt = time.Now().UTC()
			n++
		}
	}
	return n, nil
}

func (s *PartStore) Stats(ctx context.Context, minimum int) (*domain.StockStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["Stats"]++

	stats := &domain.StockStats{Minimum: minimum, InventoryValue: decimal.Zero}
	for _, p := range s.parts {
		stats.TotalParts++
		stats.TotalQuantity += int64(p.Quantity)
		if p.Quantity < minimum {
			stats.BelowMinimum++
		}
		stats.InventoryValue = stats.InventoryValue.Add(p.Value())
	}
	return stats, nil
}
