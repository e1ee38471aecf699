package api

import (
	"context"

	"slate-api/domain"
	"slate-api/store"
)

// Board is the command/query surface the handlers operate on.
type Board interface {
	Sections() []domain.Section
	AddSection(title string) domain.Section
	RenameSection(id, title string) error
	DeleteSection(id string)

	Tasks() []domain.Task
	TasksBySection(sectionID string) []domain.Task
	Task(id string) (domain.Task, error)
	AddTask(in store.TaskInput) domain.Task
	UpdateTask(id string, in store.TaskInput) error
	ToggleTask(id string) error
	DeleteTask(id string)

	View() domain.BoardView
	SubscribeSections(fn func()) func()
	SubscribeTasks(fn func()) func()
}

// Snapshots serves encoded read snapshots, optionally cache-backed.
type Snapshots interface {
	SectionsJSON(ctx context.Context) ([]byte, error)
	TasksJSON(ctx context.Context) ([]byte, error)
	BoardJSON(ctx context.Context) ([]byte, error)
}

// Deduper prevents reprocessing of duplicate commands.
type Deduper interface {
	// Add records the idempotency key and returns true if it was newly added.
	Add(ctx context.Context, key string) (bool, error)
}
