// internal/workers/recommendation/ensure-user-profile/handler.go
package ensureuserprofile

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
	"recommendation-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "ensure-user-profile"
)

type Handler struct {
	config   *Config
	profiles store.ProfileStore
	logger   logger.Logger
}

func NewHandler(config *Config, profiles store.ProfileStore, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		profiles: profiles,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

	if err := checkPayloadShape([]byte(job.Variables)); err != nil {
		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) {
			h.failJob(client, job, string(stdErr.Code), stdErr.Message)
		} else {
			h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		}
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) {
			h.failJob(client, job, string(stdErr.Code), stdErr.Message)
		} else {
			h.failJob(client, job, "EXECUTION_ERROR", err.Error())
		}
		return
	}

	h.completeJob(client, job, output)
}

// checkPayloadShape runs the wire-level schema over the raw job
// variables before decoding, so wrongly typed fields report as
// validation failures with field names rather than a decode error.
func checkPayloadShape(raw []byte) error {
	result, err := validation.ValidateJSONBytes(raw, validation.EnsureProfileInputSchema)
	if err != nil {
		return err
	}
	if !result.Valid {
		return stderrors.NewInvalidPayloadError(result.GetErrorMessages())
	}
	return nil
}

// Execute stores the profile unless the user already has one, in which
// case the stored profile wins untouched. Exported for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserID == "" {
		return nil, stderrors.NewValidationFailedError([]string{"userId"})
	}
	if input.UserProfile == nil {
		return nil, stderrors.NewValidationFailedError([]string{"userProfile"})
	}

	profile := input.UserProfile
	profile.UserID = input.UserID

	if missing := validation.ValidateUserProfile(profile); len(missing) > 0 {
		return nil, stderrors.NewValidationFailedError(missing)
	}

	stored, created, err := h.profiles.EnsureUserProfile(ctx, profile)
	if err != nil {
		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) {
			return nil, stdErr
		}
		return nil, stderrors.NewDatabaseInsertFailedError(err)
	}

	h.logger.Info("user profile ensured", map[string]interface{}{
		"userId":    input.UserID,
		"profileId": stored.ID,
		"created":   created,
	})

	return &Output{
		ProfileID: stored.ID,
		UserID:    stored.UserID,
		Created:   created,
		CreatedAt: stored.CreatedAt,
	}, nil
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
