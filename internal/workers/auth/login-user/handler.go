package loginuser

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
	"study-abroad-workers/internal/repository"
)

const (
	TaskType = "login-user"
)

type Handler struct {
	config     *Config
	users      *repository.UserStore
	tokens     *auth.TokenIssuer
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, users *repository.UserStore, tokens *auth.TokenIssuer, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		users:      users,
		tokens:     tokens,
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
	user, err := h.users.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInvalidCredentialsError()
	}
	if err != nil {
		return nil, apperrors.FromStorage("lookup email", err)
	}

	if !auth.VerifyPassword(input.Password, user.HashedPassword) {
		h.logger.Warn("password mismatch", map[string]interface{}{"userId": user.ID})
		return nil, apperrors.NewInvalidCredentialsError()
	}

	token, expiresAt, err := h.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	h.logger.Info("user logged in", map[string]interface{}{
		"userId":    user.ID,
		"expiresAt": expiresAt,
	})

	return &Output{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		UserID:      user.ID,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
