// internal/workers/recommendation/generate-recommendations/handler.go
package generaterecommendations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/common/metrics"
	"recommendation-workers/internal/common/validation"
	"recommendation-workers/internal/models"
	"recommendation-workers/internal/recommend"
	"recommendation-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "generate-recommendations"
)

type Handler struct {
	config   *Config
	profiles store.ProfileStore
	engine   *recommend.Engine
	errors   *stderrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, profiles store.ProfileStore, engine *recommend.Engine, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		profiles: profiles,
		engine:   engine,
		errors:   stderrors.NewErrorHandler(l),
		logger:   l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer func() {
		metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

// Execute resolves the user profile, picks the scoring preset and runs
// the engine. An inline profile with a user id is persisted before
// scoring; a profile already stored for that user wins over the inline
// one. Exported for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	presetName := input.Preset
	if presetName == "" {
		presetName = h.config.DefaultPreset
	}
	preset := recommend.PresetByNameWithOverrides(presetName, h.config.PresetOverrides)

	result, err := h.engine.Generate(ctx, profile, preset)
	if err != nil {
		return nil, err
	}

	output := &Output{
		RecommendationID: uuid.New().String(),
		Products:         result.Products,
		UserProfile:      profile,
		TotalMatches:     result.TotalMatches,
		Preset:           preset.Name,
		GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Info("recommendations generated", map[string]interface{}{
		"recommendationId": output.RecommendationID,
		"userId":           input.UserID,
		"preset":           preset.Name,
		"totalMatches":     result.TotalMatches,
		"returned":         len(result.Products),
	})

	return output, nil
}

// resolveProfile returns the profile to score against. With only a user
// id it loads the stored profile. An inline profile that also names a
// user id is stored for that user unless one already exists, in which
// case the stored profile wins.
func (h *Handler) resolveProfile(ctx context.Context, input *Input) (*models.UserProfile, error) {
	if input.UserProfile == nil {
		if input.UserID == "" {
			return nil, stderrors.NewValidationFailedError([]string{"userId or userProfile"})
		}
		stored, err := h.profiles.FindUserProfile(ctx, input.UserID)
		if err != nil {
			return nil, stderrors.NewDatabaseConnectionFailedError(err)
		}
		if stored == nil {
			return nil, stderrors.NewProfileNotFoundError(input.UserID)
		}
		return stored, nil
	}

	profile := input.UserProfile
	if input.UserID == "" {
		return profile, nil
	}

	profile.UserID = input.UserID
	if missing := validation.MissingProfileFields(profile); len(missing) > 0 {
		return nil, stderrors.NewValidationFailedError(missing)
	}

	stored, _, err := h.profiles.EnsureUserProfile(ctx, profile)
	if err != nil {
		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) {
			return nil, err
		}
		return nil, stderrors.NewDatabaseInsertFailedError(err)
	}
	return stored, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}
