package counsellorchat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"study-abroad-workers/internal/common/camunda"
	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/genai"
	"study-abroad-workers/internal/common/journey"
	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/repository"
)

const (
	TaskType = "counsellor-chat"
)

// Handler answers a student's message with the journey so far as context.
type Handler struct {
	config     *Config
	counsellor *genai.Counsellor
	users      *repository.UserStore
	profiles   *repository.ProfileStore
	selections *repository.SelectionStore
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(
	config *Config,
	counsellor *genai.Counsellor,
	users *repository.UserStore,
	profiles *repository.ProfileStore,
	selections *repository.SelectionStore,
	log logger.Logger,
) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		counsellor: counsellor,
		users:      users,
		profiles:   profiles,
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
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, apperrors.NewInvalidInputError("Message is required")
	}
	if h.config.MaxMessageChars > 0 && len([]rune(message)) > h.config.MaxMessageChars {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("message exceeds %d characters", h.config.MaxMessageChars))
	}

	user, err := journey.RequireOnboarded(ctx, h.users, input.UserID)
	if err != nil {
		return nil, err
	}

	profile, err := h.profiles.Find(ctx, input.UserID)
	if err != nil {
		return nil, apperrors.FromStorage("load profile", err)
	}
	if profile == nil {
		return nil, apperrors.NewProfileNotFoundError(input.UserID)
	}

	shortlisted, err := h.selections.ListShortlisted(ctx, input.UserID)
	if err != nil {
		return nil, apperrors.FromStorage("list shortlisted", err)
	}
	locked, err := h.selections.ListLocked(ctx, input.UserID)
	if err != nil {
		return nil, apperrors.FromStorage("list locked", err)
	}

	prompt := genai.ChatPrompt(message, user.CurrentStage, profile, shortlisted, locked)
	reply, limited, err := h.counsellor.Reply(ctx, prompt)
	if err != nil {
		return nil, err
	}

	h.logger.Info("counsellor replied", map[string]interface{}{
		"userId":      input.UserID,
		"stage":       string(user.CurrentStage),
		"shortlisted": len(shortlisted),
		"locked":      len(locked),
		"rateLimited": limited,
	})

	return &Output{Response: reply, RateLimited: limited}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
