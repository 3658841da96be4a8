// Package catalog holds the in-memory datasets that lookups rank against.
//
// A Snapshot is never modified once published. Refreshes build a new Snapshot and
// publish it with a single atomic pointer swap, so a lookup that already holds a
// Snapshot keeps seeing a consistent set of datasets until it finishes.
package catalog

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/UnknownOlympus/kiez/internal/models"
	"github.com/google/uuid"
)

// Dataset is the complete candidate list of one category as fetched from its source.
type Dataset struct {
	Category   models.Category
	Candidates []models.Candidate
	FetchedAt  time.Time
	Source     string // Name of the source that produced the dataset.
}

// Snapshot is an immutable set of datasets, at most one per category.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	datasets  map[models.Category]Dataset
}

// Dataset returns the dataset of the given category, if one was loaded.
func (s *Snapshot) Dataset(category models.Category) (Dataset, bool) {
	ds, ok := s.datasets[category]
	return ds, ok
}

// Loaded reports whether the category has been loaded at least once.
func (s *Snapshot) Loaded(category models.Category) bool {
	_, ok := s.datasets[category]
	return ok
}

// Categories returns the loaded categories in models.Categories order.
func (s *Snapshot) Categories() []models.Category {
	out := make([]models.Category, 0, len(s.datasets))
	for _, cat := range models.Categories() {
		if s.Loaded(cat) {
			out = append(out, cat)
		}
	}
	return out
}

// Store publishes snapshots to concurrent readers.
type Store struct {
	mu      sync.Mutex // serializes writers
	current atomic.Pointer[Snapshot]
	now     func() time.Time
}

// NewStore creates a store holding an empty snapshot.
func NewStore() *Store {
	store := &Store{now: time.Now}
	store.current.Store(store.build(nil))

	return store
}

// Current returns the latest published snapshot. It never returns nil.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap publishes a new snapshot made of the current datasets with the given ones
// replacing datasets of the same category. Candidate slices are copied, so callers
// may reuse their slices afterwards.
func (s *Store) Swap(datasets ...Dataset) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.current.Load().datasets)
	for _, ds := range datasets {
		ds.Candidates = slices.Clone(ds.Candidates)
		next[ds.Category] = ds
	}

	snapshot := s.build(next)
	s.current.Store(snapshot)

	return snapshot
}

func (s *Store) build(datasets map[models.Category]Dataset) *Snapshot {
	if datasets == nil {
		datasets = make(map[models.Category]Dataset)
	}

	return &Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
		datasets:  datasets,
	}
}
