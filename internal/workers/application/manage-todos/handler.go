package managetodos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"study-abroad-workers/internal/common/camunda"
	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/journey"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/common/validation"
	"study-abroad-workers/internal/models"
	"study-abroad-workers/internal/repository"
)

const (
	TaskType = "manage-todos"
)

// Handler serves the application checklist. One task type covers all four
// actions so a process can route on a single variable.
type Handler struct {
	config     *Config
	users      *repository.UserStore
	todos      *repository.TodoStore
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, users *repository.UserStore, todos *repository.TodoStore, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		users:      users,
		todos:      todos,
		logger:     scoped,
		errHandler: apperrors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	if err := validation.Validate(job.Variables, GetInputSchema()); err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errHandler.HandleJobError(ctx, client, job, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	camunda.CompleteJob(ctx, client, job, output, h.logger)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if _, err := journey.LoadUser(ctx, h.users, input.UserID); err != nil {
		return nil, err
	}

	switch input.Action {
	case ActionList:
		return h.list(ctx, input)
	case ActionCreate:
		return h.create(ctx, input)
	case ActionUpdate:
		return h.update(ctx, input)
	case ActionDelete:
		return h.delete(ctx, input)
	default:
		return nil, apperrors.NewUnsupportedActionError(string(input.Action))
	}
}

func (h *Handler) list(ctx context.Context, input *Input) (*Output, error) {
	todos, err := h.todos.List(ctx, input.UserID)
	if err != nil {
		return nil, apperrors.FromStorage("list todos", err)
	}
	return &Output{Action: ActionList, Todos: todos}, nil
}

func (h *Handler) create(ctx context.Context, input *Input) (*Output, error) {
	fields := input.Todo
	if fields.Title == nil || strings.TrimSpace(*fields.Title) == "" {
		return nil, apperrors.NewInvalidInputError("todo.title is required")
	}

	task := &models.TodoTask{
		UserID:       input.UserID,
		UniversityID: fields.UniversityID,
		Title:        strings.TrimSpace(*fields.Title),
		DueDate:      fields.DueDate,
	}
	if fields.Description != nil {
		task.Description = *fields.Description
	}
	if fields.Priority != nil {
		task.Priority = *fields.Priority
	}
	if fields.Status != nil {
		task.Status = *fields.Status
	}

	created, err := h.todos.Create(ctx, task)
	if err != nil {
		return nil, apperrors.NewDatabaseInsertFailedError(err)
	}

	h.logger.Info("todo created", map[string]interface{}{
		"userId": input.UserID,
		"todoId": created.ID,
	})
	return &Output{Action: ActionCreate, Todo: created}, nil
}

func (h *Handler) update(ctx context.Context, input *Input) (*Output, error) {
	if input.TodoID <= 0 {
		return nil, apperrors.NewInvalidInputError("todoId is required for update")
	}

	updated, err := h.todos.Update(ctx, input.UserID, input.TodoID, input.Todo)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewTodoNotFoundError(input.TodoID)
	}
	if err != nil {
		return nil, apperrors.FromStorage("update todo", err)
	}
	return &Output{Action: ActionUpdate, Todo: updated}, nil
}

func (h *Handler) delete(ctx context.Context, input *Input) (*Output, error) {
	if input.TodoID <= 0 {
		return nil, apperrors.NewInvalidInputError("todoId is required for delete")
	}

	err := h.todos.Delete(ctx, input.UserID, input.TodoID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewTodoNotFoundError(input.TodoID)
	}
	if err != nil {
		return nil, apperrors.FromStorage("delete todo", err)
	}

	h.logger.Info("todo deleted", map[string]interface{}{
		"userId": input.UserID,
		"todoId": input.TodoID,
	})
	return &Output{Action: ActionDelete, Message: "Todo deleted successfully"}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
