package managetodos

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/common/validation"
	"study-abroad-workers/internal/models"
	"study-abroad-workers/internal/repository"
	"study-abroad-workers/internal/repository/repotest"
)

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WillReturnRows(repotest.UserRows(7, "a@b.co", "h", true, "application"))

	return NewHandler(&Config{Timeout: 5 * time.Second},
		repository.NewUserStore(db), repository.NewTodoStore(db), logger.NewTestLogger(t)), mock
}

func strPtr(s string) *string { return &s }

func TestExecute_List(t *testing.T) {
	handler, mock := setupHandler(t)
	mock.ExpectQuery("SELECT (.+) FROM todo_tasks").
		WithArgs(int64(7)).
		WillReturnRows(repotest.TodoRows(2, 7, "Write SOP", "high", "pending"))

	out, err := handler.Execute(context.Background(), &Input{UserID: 7, Action: ActionList})
	require.NoError(t, err)
	require.Len(t, out.Todos, 1)
	assert.Equal(t, "Write SOP", out.Todos[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_Create(t *testing.T) {
	handler, mock := setupHandler(t)
	priority := models.PriorityHigh
	mock.ExpectQuery("INSERT INTO todo_tasks").
		WithArgs(int64(7), nil, "Book IELTS", "", "high", "pending", nil).
		WillReturnRows(repotest.TodoRows(5, 7, "Book IELTS", "high", "pending"))

	out, err := handler.Execute(context.Background(), &Input{
		UserID: 7,
		Action: ActionCreate,
		Todo:   models.TodoPatch{Title: strPtr("  Book IELTS "), Priority: &priority},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Todo.ID)
	assert.Equal(t, models.PriorityHigh, out.Todo.Priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_CreateNeedsTitle(t *testing.T) {
	handler, _ := setupHandler(t)
	_, err := handler.Execute(context.Background(), &Input{UserID: 7, Action: ActionCreate})
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
}

func TestExecute_UpdateMissingTodo(t *testing.T) {
	handler, mock := setupHandler(t)
	mock.ExpectQuery("UPDATE todo_tasks SET").WillReturnError(sql.ErrNoRows)

	_, err := handler.Execute(context.Background(), &Input{
		UserID: 7, Action: ActionUpdate, TodoID: 9, Todo: models.TodoPatch{Title: strPtr("x")},
	})
	assert.Equal(t, apperrors.ErrCodeTodoNotFound, apperrors.CodeOf(err))
}

func TestExecute_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		code     apperrors.ErrorCode
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, code: apperrors.ErrCodeTodoNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mock := setupHandler(t)
			mock.ExpectExec("DELETE FROM todo_tasks").
				WithArgs(int64(9), int64(7)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			out, err := handler.Execute(context.Background(), &Input{UserID: 7, Action: ActionDelete, TodoID: 9})
			if tt.code != "" {
				assert.Equal(t, tt.code, apperrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Todo deleted successfully", out.Message)
		})
	}
}

func TestExecute_UnsupportedAction(t *testing.T) {
	handler, _ := setupHandler(t)
	_, err := handler.Execute(context.Background(), &Input{UserID: 7, Action: "archive"})
	assert.Equal(t, apperrors.ErrCodeUnsupportedAction, apperrors.CodeOf(err))
}

func TestInputSchema(t *testing.T) {
	assert.NoError(t, validation.Validate(`{"userId": 7, "action": "create", "todo": {"title": "SOP", "priority": "high"}}`, GetInputSchema()))
	assert.Error(t, validation.Validate(`{"userId": 7, "action": "archive"}`, GetInputSchema()))
	assert.Error(t, validation.Validate(`{"userId": 7, "action": "update", "todo": {"status": "done"}}`, GetInputSchema()))
}
