package managetodos

import "study-abroad-workers/internal/models"

type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Input drives one operation on the student's application checklist.
// Todo carries the fields for create and the partial update for update.
type Input struct {
	UserID int64            `json:"userId"`
	Action Action           `json:"action"`
	TodoID int64            `json:"todoId,omitempty"`
	Todo   models.TodoPatch `json:"todo"`
}

type Output struct {
	Action  Action            `json:"action"`
	Todos   []models.TodoTask `json:"todos"`
	Todo    *models.TodoTask  `json:"todo,omitempty"`
	Message string            `json:"message,omitempty"`
}
