package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"study-abroad-workers/internal/models"
)

type TodoStore struct {
	db DBTX
}

func NewTodoStore(db DBTX) *TodoStore {
	return &TodoStore{db: db}
}

const todoColumns = `id, user_id, university_id, title, description, priority, status,
	due_date, created_at, updated_at, completed_at`

func scanTodo(row rowScanner) (*models.TodoTask, error) {
	var t models.TodoTask
	var universityID sql.NullInt64
	var priority, status string
	var due, updated, completed sql.NullTime
	if err := row.Scan(&t.ID, &t.UserID, &universityID, &t.Title, &t.Description,
		&priority, &status, &due, &t.CreatedAt, &updated, &completed); err != nil {
		return nil, err
	}
	t.UniversityID = int64Ptr(universityID)
	t.Priority = models.TodoPriority(priority)
	t.Status = models.TodoStatus(status)
	t.DueDate = timePtr(due)
	t.UpdatedAt = timePtr(updated)
	t.CompletedAt = timePtr(completed)
	return &t, nil
}

// List returns the user's todos, newest first.
func (s *TodoStore) List(ctx context.Context, userID int64) ([]models.TodoTask, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+todoColumns+` FROM todo_tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []models.TodoTask{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *t)
	}
	return todos, rows.Err()
}

// Create inserts t, defaulting priority to medium and status to pending,
// and returns the stored row.
func (s *TodoStore) Create(ctx context.Context, t *models.TodoTask) (*models.TodoTask, error) {
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	return scanTodo(s.db.QueryRowContext(ctx, `
		INSERT INTO todo_tasks (user_id, university_id, title, description, priority, status, due_date, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CASE WHEN $6 = 'completed' THEN NOW() END)
		RETURNING `+todoColumns,
		t.UserID, t.UniversityID, t.Title, t.Description, string(t.Priority), string(t.Status), t.DueDate,
	))
}

// Update applies the non-nil fields of patch to the user's todo. Moving to
// completed stamps completed_at; any other status clears it.
func (s *TodoStore) Update(ctx context.Context, userID, todoID int64, patch models.TodoPatch) (*models.TodoTask, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.UniversityID != nil {
		add("university_id", *patch.UniversityID)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Priority != nil {
		add("priority", string(*patch.Priority))
	}
	if patch.DueDate != nil {
		add("due_date", *patch.DueDate)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
		if *patch.Status == models.StatusCompleted {
			sets = append(sets, "completed_at = COALESCE(completed_at, NOW())")
		} else {
			sets = append(sets, "completed_at = NULL")
		}
	}

	args = append(args, todoID, userID)
	query := fmt.Sprintf(`UPDATE todo_tasks SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), todoColumns)

	t, err := scanTodo(s.db.QueryRowContext(ctx, query, args...))
	return t, notFound(err)
}

// Delete removes the user's todo. Another user's todo counts as missing.
func (s *TodoStore) Delete(ctx context.Context, userID, todoID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM todo_tasks WHERE id = $1 AND user_id = $2`, todoID, userID)
	if err != nil {
		return err
	}
	return expectOne(res)
}
