package registeruser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"study-abroad-workers/internal/common/auth"
	"study-abroad-workers/internal/common/camunda"
	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/common/validation"
	"study-abroad-workers/internal/models"
	"study-abroad-workers/internal/repository"
)

const (
	TaskType = "register-user"
)

type Handler struct {
	config     *Config
	users      *repository.UserStore
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, users *repository.UserStore, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		users:      users,
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
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" || strings.TrimSpace(input.FullName) == "" {
		return nil, apperrors.NewInvalidInputError("email, password and fullName are required")
	}

	_, err := h.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperrors.NewEmailAlreadyRegisteredError(email)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.FromStorage("lookup email", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}

	user := &models.User{
		Email:          email,
		HashedPassword: hash,
		FullName:       strings.TrimSpace(input.FullName),
		CurrentStage:   models.StageOnboarding,
	}
	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewEmailAlreadyRegisteredError(email)
		}
		return nil, apperrors.NewDatabaseInsertFailedError(err)
	}

	h.logger.Info("user registered", map[string]interface{}{
		"userId": user.ID,
	})

	return &Output{
		UserID:       user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		IsOnboarded:  user.IsOnboarded,
		CurrentStage: string(user.CurrentStage),
		CreatedAt:    user.CreatedAt,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
