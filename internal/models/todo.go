package models

import "time"

type TodoPriority string

const (
	PriorityLow    TodoPriority = "low"
	PriorityMedium TodoPriority = "medium"
	PriorityHigh   TodoPriority = "high"
)

type TodoStatus string

const (
	StatusPending    TodoStatus = "pending"
	StatusInProgress TodoStatus = "in_progress"
	StatusCompleted  TodoStatus = "completed"
)

type TodoTask struct {
	ID           int64        `json:"id"`
	UserID       int64        `json:"userId"`
	UniversityID *int64       `json:"universityId,omitempty"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Priority     TodoPriority `json:"priority"`
	Status       TodoStatus   `json:"status"`
	DueDate      *time.Time   `json:"dueDate,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    *time.Time   `json:"updatedAt,omitempty"`
	CompletedAt  *time.Time   `json:"completedAt,omitempty"`
}

// TodoPatch carries a partial update; nil fields are left unchanged.
type TodoPatch struct {
	UniversityID *int64        `json:"universityId,omitempty"`
	Title        *string       `json:"title,omitempty"`
	Description  *string       `json:"description,omitempty"`
	Priority     *TodoPriority `json:"priority,omitempty"`
	Status       *TodoStatus   `json:"status,omitempty"`
	DueDate      *time.Time    `json:"dueDate,omitempty"`
}
