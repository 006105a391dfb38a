package overlay

import (
	"sync"
)

// Store tracks the live preview records for one buffer session.
// Records are kept most-recent-first; a new record is prepended.
type Store struct {
	mu sync.RWMutex

	// records holds live records, index 0 is the most recent.
	records []*Record

	// byID indexes records by their identifier.
	byID map[string]*Record
}

// NewStore creates an empty record store.
func NewStore() *Store {
	return &Store{
		records: make([]*Record, 0),
		byID:    make(map[string]*Record),
	}
}

// Add prepends a record to the store.
func (s *Store) Add(r *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]*Record{r}, s.records...)
	s.byID[r.ID()] = r
}

// Remove removes a record by ID. Returns the removed record, or nil if
// no record has that ID.
func (s *Store) Remove(id string) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[id]
	if !ok {
		return nil
	}
	delete(s.byID, id)

	for i, rec := range s.records {
		if rec.ID() == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	return r
}

// RemoveAtAnchor removes every record anchored at the given position and
// returns them in store order. Zero matches returns nil.
func (s *Store) RemoveAtAnchor(anchor Position) []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []*Record
	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.Anchor() == anchor {
			removed = append(removed, rec)
			delete(s.byID, rec.ID())
		} else {
			kept = append(kept, rec)
		}
	}
	s.records = kept
	return removed
}

// RemoveAll removes every record and returns them in store order.
func (s *Store) RemoveAll() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.records
	s.records = make([]*Record, 0)
	s.byID = make(map[string]*Record)
	return removed
}

// Get returns a record by ID.
func (s *Store) Get(id string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	return r, ok
}

// Count returns the number of live records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Records returns a copy of the live records, most recent first.
func (s *Store) Records() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out
}

// AtAnchor returns the records anchored at the given position, most
// recent first.
func (s *Store) AtAnchor(anchor Position) []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Record
	for _, rec := range s.records {
		if rec.Anchor() == anchor {
			out = append(out, rec)
		}
	}
	return out
}

// HasAnchor reports whether any record is anchored at the given position.
func (s *Store) HasAnchor(anchor Position) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.Anchor() == anchor {
			return true
		}
	}
	return false
}
