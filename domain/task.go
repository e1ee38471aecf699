package domain

import "time"

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// NormalizePriority maps empty or unknown values to PriorityLow. The stores
// keep whatever they are given; normalization happens at the command boundary.
func NormalizePriority(p Priority) Priority {
	if p.Valid() {
		return p
	}
	return PriorityLow
}

// Task represents a single board item in the read model. SectionID is a
// reference by value, not an owning pointer: the store does not enforce that
// it resolves to a live section, and the board view displays strays under the
// default section without rewriting them.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	SectionID   string     `json:"sectionId"`
	Reminder    *time.Time `json:"reminder,omitempty"`
}

// Clone returns a copy of t sharing no mutable state with the original.
func (t Task) Clone() Task {
	if t.Reminder != nil {
		r := *t.Reminder
		t.Reminder = &r
	}
	return t
}
