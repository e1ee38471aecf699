package domain

import (
	"time"

	"github.com/bytedance/sonic"
)

// Entity types accepted on the command endpoint.
const (
	EntitySection = "section"
	EntityTask    = "task"
)

// Command types.
const (
	CommandCreate = "create"
	CommandUpdate = "update"
	CommandDelete = "delete"
	CommandToggle = "toggle"
)

// Command represents a write request for the domain model.
type Command struct {
	// ID mirrors the idempotency key once the server has finalized the batch.
	ID             string                 `json:"id,omitempty"`
	IdempotencyKey string                 `json:"idempotencyKey"`
	EntityID       string                 `json:"entityId,omitempty"`
	EntityType     string                 `json:"entityType"`
	Type           string                 `json:"type"`
	Data           sonic.NoCopyRawMessage `json:"data,omitempty"`
	Timestamp      int64                  `json:"timestamp"`
}

// SectionData carries the payload of section create and update commands.
type SectionData struct {
	Title string `json:"title"`
}

// TaskData carries the payload of task create and update commands. Updates
// are full-field replaces, so the complete desired field set is expected.
type TaskData struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	SectionID   string     `json:"sectionId"`
	Reminder    *time.Time `json:"reminder,omitempty"`
}
