package saveprofile

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
	TaskType = "save-profile"
)

// Handler merges the submitted onboarding answers into the stored profile
// and moves the student on to the dashboard in the same transaction.
type Handler struct {
	config     *Config
	db         *sql.DB
	users      *repository.UserStore
	profiles   *repository.ProfileStore
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, users *repository.UserStore, profiles *repository.ProfileStore, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		db:         db,
		users:      users,
		profiles:   profiles,
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

	var profile *models.StudentProfile
	err := database.InTx(ctx, h.db, func(tx *sql.Tx) error {
		store := h.profiles.WithTx(tx)
		existing, err := store.GetForUpdate(ctx, input.UserID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			existing = &models.StudentProfile{}
		case err != nil:
			return err
		}

		input.Profile.ApplyTo(existing)
		existing.UserID = input.UserID
		if existing.Currency == "" {
			existing.Currency = "USD"
		}
		if existing.BudgetMin != nil && existing.BudgetMax != nil && *existing.BudgetMin > *existing.BudgetMax {
			return apperrors.NewInvalidInputError("budgetMin must not exceed budgetMax")
		}

		if err := store.Upsert(ctx, existing); err != nil {
			return err
		}
		profile = existing
		return h.users.WithTx(tx).MarkOnboarded(ctx, input.UserID)
	})
	var stdErr *apperrors.StandardError
	switch {
	case errors.As(err, &stdErr):
		return nil, stdErr
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.NewTokenInvalidError(fmt.Sprintf("user %d no longer exists", input.UserID))
	case err != nil:
		return nil, apperrors.FromStorage("save profile", err)
	}

	if err := h.profiles.Invalidate(ctx, input.UserID); err != nil {
		h.logger.Warn("failed to invalidate cached profile", map[string]interface{}{
			"userId": input.UserID,
			"error":  err.Error(),
		})
	}

	h.logger.Info("profile saved", map[string]interface{}{
		"userId": input.UserID,
	})

	return &Output{
		Profile:      *profile,
		IsOnboarded:  true,
		CurrentStage: string(models.StageDashboard),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
