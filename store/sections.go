package store

import (
	"sync"

	"github.com/google/uuid"

	"slate-api/domain"
)

// DefaultSectionTitle is the initial title of the default section. The title
// may be edited later; the id never changes.
const DefaultSectionTitle = "Inbox"

// SectionStore owns the ordered set of sections. Sections keep creation
// order, and the default section is created at initialization and survives
// every operation.
type SectionStore struct {
	mu       sync.RWMutex
	sections []domain.Section
	changes  Notifier
}

// NewSectionStore returns a store holding only the default section.
func NewSectionStore() *SectionStore {
	return &SectionStore{
		sections: []domain.Section{{ID: domain.DefaultSectionID, Title: DefaultSectionTitle}},
	}
}

// Subscribe registers a callback fired after every successful mutation.
func (s *SectionStore) Subscribe(fn func()) (cancel func()) {
	return s.changes.Subscribe(fn)
}

// List returns a snapshot of all sections in creation order.
func (s *SectionStore) List() []domain.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Section, len(s.sections))
	copy(out, s.sections)
	return out
}

// Get returns the section with the given id.
func (s *SectionStore) Get(id string) (domain.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.index(id); idx >= 0 {
		return s.sections[idx], nil
	}
	return domain.Section{}, notFound("section", id)
}

// Add appends a section with a freshly generated id and returns it. Title
// validation is the caller's responsibility.
func (s *SectionStore) Add(title string) domain.Section {
	sec := domain.Section{ID: uuid.NewString(), Title: title}
	s.mu.Lock()
	s.sections = append(s.sections, sec)
	s.mu.Unlock()
	s.changes.notify()
	return sec
}

// Update replaces the section's title in place; id and position are
// unchanged.
func (s *SectionStore) Update(id, title string) error {
	s.mu.Lock()
	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		return notFound("section", id)
	}
	s.sections[idx].Title = title
	s.mu.Unlock()
	s.changes.notify()
	return nil
}

// Delete removes the section. Deleting an absent id or the default section is
// a no-op. Tasks referencing the removed id are not reassigned here; callers
// go through Board.DeleteSection so no task is left pointing at a removed
// section.
func (s *SectionStore) Delete(id string) {
	if id == domain.DefaultSectionID {
		return
	}
	s.mu.Lock()
	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.sections = append(s.sections[:idx], s.sections[idx+1:]...)
	s.mu.Unlock()
	s.changes.notify()
}

// index must be called with the lock held.
func (s *SectionStore) index(id string) int {
	for i := range s.sections {
		if s.sections[i].ID == id {
			return i
		}
	}
	return -1
}
