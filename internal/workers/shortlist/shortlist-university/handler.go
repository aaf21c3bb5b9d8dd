package shortlistuniversity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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
	TaskType = "shortlist-university"
)

type Handler struct {
	config       *Config
	users        *repository.UserStore
	universities *repository.UniversityStore
	selections   *repository.SelectionStore
	logger       logger.Logger
	errHandler   *apperrors.ErrorHandler
}

func NewHandler(
	config *Config,
	users *repository.UserStore,
	universities *repository.UniversityStore,
	selections *repository.SelectionStore,
	log logger.Logger,
) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		users:        users,
		universities: universities,
		selections:   selections,
		logger:       scoped,
		errHandler:   apperrors.NewErrorHandler(scoped),
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
	if _, err := journey.LoadUniversity(ctx, h.universities, input.UniversityID); err != nil {
		return nil, err
	}

	exists, err := h.selections.IsShortlisted(ctx, input.UserID, input.UniversityID)
	if err != nil {
		return nil, apperrors.FromStorage("check shortlist", err)
	}
	if exists {
		return nil, apperrors.NewAlreadyShortlistedError(input.UniversityID)
	}

	entry := models.ShortlistEntry{
		UserID:       input.UserID,
		UniversityID: input.UniversityID,
		Category:     input.Category,
		Notes:        input.Notes,
	}
	err = h.selections.Shortlist(ctx, &entry)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperrors.NewAlreadyShortlistedError(input.UniversityID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseInsertFailedError(err)
	}

	h.logger.Info("university shortlisted", map[string]interface{}{
		"userId":       input.UserID,
		"universityId": input.UniversityID,
		"category":     input.Category,
	})

	return &Output{Message: "University shortlisted successfully", Entry: entry}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
