package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/trailsync/emission-engine/internal/model"
)

// MemoryStore implements RecordStore with an in-memory slice.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.FlightRecord
}

var _ RecordStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, rec model.FlightRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, recordID string) (model.FlightRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.RecordID == recordID {
			return r, nil
		}
	}
	return model.FlightRecord{}, fmt.Errorf("%w: %s", ErrNotFound, recordID)
}

func (s *MemoryStore) List(_ context.Context) ([]model.FlightRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.FlightRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) TopEmitters(ctx context.Context, n int) ([]model.FlightRecord, error) {
	if n <= 0 {
		return nil, nil
	}
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	// Stable so equal emitters keep input order.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Emission.CO2Total > all[j].Emission.CO2Total
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
