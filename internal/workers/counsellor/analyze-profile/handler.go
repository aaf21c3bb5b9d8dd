package analyzeprofile

import (
	"context"
	"encoding/json"
	"fmt"

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
	TaskType = "analyze-profile"
)

type Handler struct {
	config     *Config
	counsellor *genai.Counsellor
	users      *repository.UserStore
	profiles   *repository.ProfileStore
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(
	config *Config,
	counsellor *genai.Counsellor,
	users *repository.UserStore,
	profiles *repository.ProfileStore,
	log logger.Logger,
) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		counsellor: counsellor,
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
	if _, err := journey.RequireOnboarded(ctx, h.users, input.UserID); err != nil {
		return nil, err
	}

	profile, err := h.profiles.Find(ctx, input.UserID)
	if err != nil {
		return nil, apperrors.FromStorage("load profile", err)
	}
	if profile == nil {
		return nil, apperrors.NewProfileNotFoundError(input.UserID)
	}

	analysis, limited, err := h.counsellor.Reply(ctx, genai.AnalysisPrompt(profile))
	if err != nil {
		return nil, err
	}

	h.logger.Info("profile analysed", map[string]interface{}{
		"userId":      input.UserID,
		"rateLimited": limited,
	})

	return &Output{Analysis: analysis, RateLimited: limited}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
