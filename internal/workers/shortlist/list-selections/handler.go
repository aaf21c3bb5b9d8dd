package listselections

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"study-abroad-workers/internal/common/camunda"
	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/journey"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/models"
	"study-abroad-workers/internal/repository"
)

const (
	TaskType = "list-selections"
)

type Handler struct {
	config     *Config
	users      *repository.UserStore
	selections *repository.SelectionStore
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, users *repository.UserStore, selections *repository.SelectionStore, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		users:      users,
		selections: selections,
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

	shortlisted, err := h.selections.ListShortlisted(ctx, input.UserID)
	if err != nil {
		return nil, apperrors.FromStorage("list shortlisted", err)
	}
	locked, err := h.selections.ListLocked(ctx, input.UserID)
	if err != nil {
		return nil, apperrors.FromStorage("list locked", err)
	}

	// Empty lists go out as [] rather than null.
	if shortlisted == nil {
		shortlisted = []models.ShortlistedUniversity{}
	}
	if locked == nil {
		locked = []models.University{}
	}
	return &Output{Shortlisted: shortlisted, Locked: locked}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
