// Package reports keeps the in-memory list of lost and found reports that
// list and detail views are served from.
package reports

import (
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/erazemk/tacka/internal/model"
)

// Store holds reports in insertion order.
type Store struct {
	mu      sync.RWMutex
	reports []model.Report
	index   map[string]int
}

// New returns a store preloaded with seed, in the given order.
func New(seed ...model.Report) *Store {
	s := &Store{index: make(map[string]int, len(seed))}
	for _, r := range seed {
		s.Add(r)
	}
	return s
}

// Add appends a finalized report and returns the stored copy. A report
// without an ID gets a fresh one; adding an ID that already exists
// replaces that entry in place.
func (s *Store) Add(r model.Report) model.Report {
	r = r.Clone()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = model.StatusActive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[r.ID]; ok {
		s.reports[i] = r
	} else {
		s.index[r.ID] = len(s.reports)
		s.reports = append(s.reports, r)
	}
	return r.Clone()
}

// Get returns the report with the given ID.
func (s *Store) Get(id string) (model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.Report{}, fmt.Errorf("report %q: %w", id, model.ErrNotFound)
	}
	return s.reports[i].Clone(), nil
}

// SetStatus records a reunion or closure decided outside the store.
func (s *Store) SetStatus(id string, status model.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("report %q: %w", id, model.ErrNotFound)
	}
	s.reports[i].Status = status
	return nil
}

// Len returns the number of stored reports.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// ListByType yields the reports of one kind in insertion order. The
// sequence can be ranged over any number of times.
func (s *Store) ListByType(kind model.Kind) iter.Seq[model.Report] {
	return s.Search(Filter{Kind: kind})
}

// Filter narrows a listing. Zero fields match everything; text fields
// match case-insensitive substrings.
type Filter struct {
	Kind      model.Kind
	Species   string
	Color     string
	Location  string
	HasReward bool
}

func (f Filter) match(r model.Report) bool {
	if f.Kind != "" && r.Kind() != f.Kind {
		return false
	}
	if !contains(r.Species, f.Species) || !contains(r.Color, f.Color) || !contains(r.Location, f.Location) {
		return false
	}
	if f.HasReward && r.Reward() == "" {
		return false
	}
	return true
}

func contains(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

// Search yields the reports matching f in insertion order.
func (s *Store) Search(f Filter) iter.Seq[model.Report] {
	return func(yield func(model.Report) bool) {
		for i := 0; ; i++ {
			r, ok := s.at(i)
			if !ok {
				return
			}
			if !f.match(r) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// at reads one entry without holding the lock across a yield.
func (s *Store) at(i int) (model.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i >= len(s.reports) {
		return model.Report{}, false
	}
	return s.reports[i].Clone(), true
}
