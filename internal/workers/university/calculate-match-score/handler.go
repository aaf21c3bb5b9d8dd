package calculatematchscore

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
	"study-abroad-workers/internal/common/validation"
	"study-abroad-workers/internal/matching"
	"study-abroad-workers/internal/repository"
)

const (
	TaskType = "calculate-match-score"
)

type Handler struct {
	config       *Config
	engine       *matching.Engine
	users        *repository.UserStore
	profiles     *repository.ProfileStore
	universities *repository.UniversityStore
	logger       logger.Logger
	errHandler   *apperrors.ErrorHandler
}

func NewHandler(
	config *Config,
	engine *matching.Engine,
	users *repository.UserStore,
	profiles *repository.ProfileStore,
	universities *repository.UniversityStore,
	log logger.Logger,
) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		engine:       engine,
		users:        users,
		profiles:     profiles,
		universities: universities,
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

	university, err := journey.LoadUniversity(ctx, h.universities, input.UniversityID)
	if err != nil {
		return nil, err
	}

	profile, err := h.profiles.Find(ctx, input.UserID)
	if err != nil {
		return nil, apperrors.FromStorage("load profile", err)
	}

	breakdown := h.engine.Breakdown(*university, profile)

	h.logger.Debug("match score calculated", map[string]interface{}{
		"userId":       input.UserID,
		"universityId": university.ID,
		"matchScore":   breakdown.Total,
		"neutral":      breakdown.Neutral,
	})

	return &Output{
		UniversityID: university.ID,
		MatchScore:   breakdown.Total,
		Factors:      breakdown,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
