// internal/workers/recommendation/save-feedback/handler.go
package savefeedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/common/metrics"
	"recommendation-workers/internal/models"
	"recommendation-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "save-feedback"
)

var allowedFeedbackTypes = map[string]bool{
	"like":       true,
	"dislike":    true,
	"irrelevant": true,
	"purchased":  true,
}

type Handler struct {
	config   *Config
	feedback store.FeedbackStore
	logger   logger.Logger
}

func NewHandler(config *Config, feedback store.FeedbackStore, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		feedback: feedback,
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

// Execute validates the feedback event and persists it. Exported for
// tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	var missing []string
	if input.UserID == "" {
		missing = append(missing, "userId")
	}
	if input.ProductID == "" {
		missing = append(missing, "productId")
	}
	if input.FeedbackType == "" {
		missing = append(missing, "feedbackType")
	}
	if len(missing) > 0 {
		return nil, stderrors.NewValidationFailedError(missing)
	}
	if !allowedFeedbackTypes[input.FeedbackType] {
		return nil, stderrors.NewValidationFailedError([]string{"feedbackType"})
	}

	fb := &models.Feedback{
		UserID:           input.UserID,
		ProductID:        input.ProductID,
		RecommendationID: input.RecommendationID,
		FeedbackType:     input.FeedbackType,
		Rating:           input.Rating,
		Comment:          input.Comment,
	}

	if err := h.feedback.InsertFeedback(ctx, fb); err != nil {
		return nil, stderrors.NewDatabaseInsertFailedError(err)
	}

	h.logger.Info("feedback saved", map[string]interface{}{
		"feedbackId":   fb.ID,
		"userId":       fb.UserID,
		"productId":    fb.ProductID,
		"feedbackType": fb.FeedbackType,
	})

	return &Output{
		FeedbackID: fb.ID,
		SavedAt:    fb.CreatedAt,
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
