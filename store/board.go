package store

import (
	"errors"
	"sync"

	"slate-api/domain"
)

// Board is the single logical owner of both stores. Every command funnels
// through one mutex, so the multi-step section deletion cannot interleave
// with any other command: no observer can see a task referencing a section
// that has already been removed. Reads go straight to the stores and return
// snapshots.
//
// Subscribers must not issue Board commands from inside a notification
// callback; they re-query and return.
type Board struct {
	cmds     sync.Mutex
	sections *SectionStore
	tasks    *TaskStore
}

// NewBoard creates a board with a fresh section store (holding the default
// section) and an empty task store.
func NewBoard() *Board {
	return &Board{
		sections: NewSectionStore(),
		tasks:    NewTaskStore(),
	}
}

// SubscribeSections registers a callback on the section store.
func (b *Board) SubscribeSections(fn func()) func() {
	return b.sections.Subscribe(fn)
}

// SubscribeTasks registers a callback on the task store.
func (b *Board) SubscribeTasks(fn func()) func() {
	return b.tasks.Subscribe(fn)
}

// Sections returns a snapshot of all sections in creation order.
func (b *Board) Sections() []domain.Section {
	return b.sections.List()
}

// Tasks returns a snapshot of all tasks, most recent first.
func (b *Board) Tasks() []domain.Task {
	return b.tasks.List()
}

// TasksBySection returns the tasks assigned to the given section id.
func (b *Board) TasksBySection(sectionID string) []domain.Task {
	return b.tasks.ListBySection(sectionID)
}

// Task returns the current value of a single task.
func (b *Board) Task(id string) (domain.Task, error) {
	return b.tasks.Get(id)
}

// AddSection creates a section and returns it.
func (b *Board) AddSection(title string) domain.Section {
	b.cmds.Lock()
	defer b.cmds.Unlock()
	return b.sections.Add(title)
}

// RenameSection replaces a section's title.
func (b *Board) RenameSection(id, title string) error {
	b.cmds.Lock()
	defer b.cmds.Unlock()
	return b.sections.Update(id, title)
}

// DeleteSection removes a section after reassigning every task in it to the
// default section, so no task is ever left referencing a removed section.
// Deleting the default section or an absent id is a no-op.
func (b *Board) DeleteSection(id string) {
	if id == domain.DefaultSectionID {
		return
	}
	b.cmds.Lock()
	defer b.cmds.Unlock()

	for _, t := range b.tasks.ListBySection(id) {
		err := b.tasks.Update(t.ID, TaskInput{
			Title:       t.Title,
			Description: t.Description,
			Priority:    t.Priority,
			SectionID:   domain.DefaultSectionID,
			Reminder:    t.Reminder,
		})
		if errors.Is(err, ErrNotFound) {
			// The task vanished between the read and the rewrite; nothing
			// left to reassign.
			continue
		}
	}
	b.sections.Delete(id)
}

// AddTask creates a task and returns it.
func (b *Board) AddTask(in TaskInput) domain.Task {
	b.cmds.Lock()
	defer b.cmds.Unlock()
	return b.tasks.Add(in)
}

// UpdateTask replaces every mutable field of a task.
func (b *Board) UpdateTask(id string, in TaskInput) error {
	b.cmds.Lock()
	defer b.cmds.Unlock()
	return b.tasks.Update(id, in)
}

// ToggleTask flips a task's completion state.
func (b *Board) ToggleTask(id string) error {
	b.cmds.Lock()
	defer b.cmds.Unlock()
	return b.tasks.ToggleCompleted(id)
}

// DeleteTask removes a task; absent ids are a no-op.
func (b *Board) DeleteTask(id string) {
	b.cmds.Lock()
	defer b.cmds.Unlock()
	b.tasks.Delete(id)
}

// View assembles the read projection: sections in creation order, each with
// its tasks in task order. A task whose SectionID matches no live section is
// displayed under the default section; its stored field is left untouched.
func (b *Board) View() domain.BoardView {
	sections := b.sections.List()
	tasks := b.tasks.List()

	views := make([]domain.SectionView, len(sections))
	indexByID := make(map[string]int, len(sections))
	for i, sec := range sections {
		views[i] = domain.SectionView{Section: sec, Tasks: []domain.Task{}}
		indexByID[sec.ID] = i
	}

	fallback := indexByID[domain.DefaultSectionID]
	for _, t := range tasks {
		idx, ok := indexByID[t.SectionID]
		if !ok {
			idx = fallback
		}
		views[idx].Tasks = append(views[idx].Tasks, t)
	}

	return domain.BoardView{Sections: views}
}
