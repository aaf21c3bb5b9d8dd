package lockuniversity

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"study-abroad-workers/internal/common/camunda"
	"study-abroad-workers/internal/common/database"
	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/journey"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/common/validation"
	"study-abroad-workers/internal/models"
	"study-abroad-workers/internal/repository"
)

const (
	TaskType = "lock-university"
)

// Handler commits a student to a shortlisted university and moves them to
// the application stage.
type Handler struct {
	config     *Config
	db         *sql.DB
	users      *repository.UserStore
	selections *repository.SelectionStore
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, users *repository.UserStore, selections *repository.SelectionStore, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		db:         db,
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

	shortlisted, err := h.selections.IsShortlisted(ctx, input.UserID, input.UniversityID)
	if err != nil {
		return nil, apperrors.FromStorage("check shortlist", err)
	}
	if !shortlisted {
		return nil, apperrors.NewNotShortlistedError(input.UniversityID)
	}

	locked, err := h.selections.IsLocked(ctx, input.UserID, input.UniversityID)
	if err != nil {
		return nil, apperrors.FromStorage("check lock", err)
	}
	if locked {
		return nil, apperrors.NewAlreadyLockedError(input.UniversityID)
	}

	entry := models.LockedEntry{UserID: input.UserID, UniversityID: input.UniversityID}
	err = database.InTx(ctx, h.db, func(tx *sql.Tx) error {
		if err := h.selections.WithTx(tx).Lock(ctx, &entry); err != nil {
			return err
		}
		return h.users.WithTx(tx).SetStage(ctx, input.UserID, models.StageApplication)
	})
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, apperrors.NewAlreadyLockedError(input.UniversityID)
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.NewTokenInvalidError(fmt.Sprintf("user %d no longer exists", input.UserID))
	case err != nil:
		return nil, apperrors.FromStorage("lock university", err)
	}

	h.logger.Info("university locked", map[string]interface{}{
		"userId":       input.UserID,
		"universityId": input.UniversityID,
	})

	return &Output{
		Message:      "University locked successfully",
		Entry:        entry,
		CurrentStage: string(models.StageApplication),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
