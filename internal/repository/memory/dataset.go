package memory

import (
	"context"
	"sync"

	"github.com/opsdash/checkin-report-go/internal/domain/dataset"
)

type DatasetStore struct {
	mu     sync.RWMutex
	active *dataset.Dataset
}

func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// Replace swaps in a new active dataset. The snapshot is stored as-is and
// must not be mutated by the caller afterwards.
func (s *DatasetStore) Replace(_ context.Context, d *dataset.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = d
	return nil
}

// Active returns the current dataset, or ErrNoDataset before the first
// upload.
func (s *DatasetStore) Active(_ context.Context) (*dataset.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return nil, dataset.ErrNoDataset
	}
	return s.active, nil
}
