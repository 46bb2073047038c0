// internal/workers/catalog/search-products/handler.go
package searchproducts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/common/metrics"
	"recommendation-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "search-products"
)

// Searcher is the slice of ProductSearch this worker needs.
type Searcher interface {
	SearchProducts(ctx context.Context, query, category string, maxPrice float64, size int) (*store.SearchResult, error)
}

type Handler struct {
	config *Config
	search Searcher
	logger logger.Logger
}

func NewHandler(config *Config, search Searcher, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		search: search,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

// Execute runs the product search with the requested size clamped to the
// configured maximum. Exported for tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	size := input.Size
	if size <= 0 || size > h.config.MaxResults {
		size = h.config.MaxResults
	}

	result, err := h.search.SearchProducts(ctx, input.Query, input.Category, input.MaxPrice, size)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, stderrors.NewSearchTimeoutError()
		case strings.Contains(err.Error(), "not found"):
			return nil, stderrors.NewIndexNotFoundError(err.Error())
		default:
			return nil, stderrors.NewSearchQueryFailedError(err)
		}
	}

	h.logger.Info("product search complete", map[string]interface{}{
		"query":     input.Query,
		"category":  input.Category,
		"totalHits": result.TotalHits,
		"returned":  len(result.Products),
		"tookMs":    result.Took,
	})

	return &Output{
		Products:  result.Products,
		TotalHits: result.TotalHits,
		Took:      result.Took,
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
