package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"slate-api/domain"
)

// TaskInput carries the full mutable field set of a task. Updates are
// whole-value replaces, not patches.
type TaskInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	SectionID   string
	Reminder    *time.Time
}

// TaskStore owns the ordered set of tasks, newest first. Reads return
// snapshots; mutation goes through the store's operations only, so every
// state change is observable via change notifications.
type TaskStore struct {
	mu      sync.RWMutex
	tasks   []domain.Task
	changes Notifier
}

// NewTaskStore returns an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{}
}

// Subscribe registers a callback fired after every successful mutation.
func (s *TaskStore) Subscribe(fn func()) (cancel func()) {
	return s.changes.Subscribe(fn)
}

// List returns a snapshot of all tasks, most recent first.
func (s *TaskStore) List() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// ListBySection returns the tasks whose SectionID equals sectionID, keeping
// their relative order. An id matching no section yields an empty slice.
func (s *TaskStore) ListBySection(sectionID string) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Task{}
	for _, t := range s.tasks {
		if t.SectionID == sectionID {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Get returns the current value of the task with the given id.
func (s *TaskStore) Get(id string) (domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.index(id); idx >= 0 {
		return s.tasks[idx].Clone(), nil
	}
	return domain.Task{}, notFound("task", id)
}

// Add creates a task with a freshly generated id and prepends it, so it is
// first in List and in ListBySection for its section. New tasks start
// uncompleted; an empty priority defaults to low. The store does not check
// that SectionID resolves to a live section.
func (s *TaskStore) Add(in TaskInput) domain.Task {
	if in.Priority == "" {
		in.Priority = domain.PriorityLow
	}
	task := domain.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		SectionID:   in.SectionID,
		Reminder:    in.Reminder,
	}
	s.mu.Lock()
	s.tasks = append([]domain.Task{task}, s.tasks...)
	s.mu.Unlock()
	s.changes.notify()
	return task.Clone()
}

// Update replaces every mutable field of the task; id, completion state and
// position are unchanged.
func (s *TaskStore) Update(id string, in TaskInput) error {
	if in.Priority == "" {
		in.Priority = domain.PriorityLow
	}
	s.mu.Lock()
	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		return notFound("task", id)
	}
	t := &s.tasks[idx]
	t.Title = in.Title
	t.Description = in.Description
	t.Priority = in.Priority
	t.SectionID = in.SectionID
	t.Reminder = in.Reminder
	s.mu.Unlock()
	s.changes.notify()
	return nil
}

// ToggleCompleted flips the task's completion state.
func (s *TaskStore) ToggleCompleted(id string) error {
	s.mu.Lock()
	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		return notFound("task", id)
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	s.mu.Unlock()
	s.changes.notify()
	return nil
}

// Delete removes the task. Deleting an absent id is a no-op.
func (s *TaskStore) Delete(id string) {
	s.mu.Lock()
	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.mu.Unlock()
	s.changes.notify()
}

// index must be called with the lock held.
func (s *TaskStore) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
