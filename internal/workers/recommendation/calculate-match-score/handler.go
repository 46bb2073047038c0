// internal/workers/recommendation/calculate-match-score/handler.go
package calculatematchscore

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
)

const (
	TaskType = "calculate-match-score"
)

type Handler struct {
	config   *Config
	catalog  store.CatalogReader
	profiles store.ProfileStore
	scorer   *recommend.Scorer
	logger   logger.Logger
}

func NewHandler(config *Config, catalog store.CatalogReader, profiles store.ProfileStore, scorer *recommend.Scorer, log logger.Logger) *Handler {
	if scorer == nil {
		scorer = recommend.NewScorer(nil)
	}
	return &Handler{
		config:   config,
		catalog:  catalog,
		profiles: profiles,
		scorer:   scorer,
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

// Execute scores a single product against a user profile. Both sides can
// arrive inline in the job variables or be resolved from storage by id.
// Exported for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}
	if missing := validation.ValidateUserProfile(profile); len(missing) > 0 {
		return nil, stderrors.NewValidationFailedError(missing)
	}

	product, err := h.resolveProduct(ctx, input)
	if err != nil {
		return nil, err
	}

	pp := input.ProductProfile
	if pp == nil {
		pp, err = h.findProductProfile(ctx, product.ID)
		if err != nil {
			return nil, err
		}
	}

	presetName := input.Preset
	if presetName == "" {
		presetName = h.config.DefaultPreset
	}
	preset := recommend.PresetByNameWithOverrides(presetName, h.config.PresetOverrides)

	score := h.scorer.Score(profile, product, pp, preset)
	path := "heuristic"
	if pp != nil {
		path = "profile"
	}

	output := &Output{
		ProductID:      product.ID,
		MatchScore:     score,
		WhyRecommended: h.scorer.Reasons(profile, product, pp, score),
		ScoringPath:    path,
		Preset:         preset.Name,
	}

	h.logger.Info("match score calculated", map[string]interface{}{
		"productId":   product.ID,
		"matchScore":  score,
		"scoringPath": path,
		"preset":      preset.Name,
	})

	return output, nil
}

func (h *Handler) resolveProfile(ctx context.Context, input *Input) (*models.UserProfile, error) {
	if input.UserProfile != nil {
		return input.UserProfile, nil
	}
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

func (h *Handler) resolveProduct(ctx context.Context, input *Input) (*models.Product, error) {
	if input.Product != nil {
		return input.Product, nil
	}
	if input.ProductID == "" {
		return nil, stderrors.NewValidationFailedError([]string{"productId or product"})
	}
	product, err := h.catalog.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, stderrors.NewDatabaseConnectionFailedError(err)
	}
	if product == nil {
		return nil, stderrors.NewProductNotFoundError(input.ProductID)
	}
	return product, nil
}

// findProductProfile scans the curated profiles for the product. The
// table is small enough that a dedicated lookup query is not worth it.
func (h *Handler) findProductProfile(ctx context.Context, productID string) (*models.ProductProfile, error) {
	if productID == "" {
		return nil, nil
	}
	profiles, err := h.catalog.ListProductProfiles(ctx)
	if err != nil {
		return nil, stderrors.NewCatalogReadFailedError(err)
	}
	for i := range profiles {
		if profiles[i].ProductID == productID {
			return &profiles[i], nil
		}
	}
	return nil, nil
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
