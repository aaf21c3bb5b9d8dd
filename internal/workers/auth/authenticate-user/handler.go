package authenticateuser

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
	"study-abroad-workers/internal/repository"
)

const (
	TaskType = "authenticate-user"
)

// Handler resolves a bearer token to the user id the rest of the process
// works with.
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
	raw := strings.TrimSpace(input.AccessToken)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	if raw == "" {
		return nil, apperrors.NewTokenInvalidError("missing bearer token")
	}

	claims, err := h.tokens.Parse(raw)
	if err != nil {
		return nil, apperrors.NewTokenInvalidError(err.Error())
	}

	user, err := h.users.GetByEmail(ctx, claims.Email())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewTokenInvalidError("token subject no longer exists")
	}
	if err != nil {
		return nil, apperrors.FromStorage("lookup token subject", err)
	}

	return &Output{
		UserID:       user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		IsOnboarded:  user.IsOnboarded,
		CurrentStage: string(user.CurrentStage),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
