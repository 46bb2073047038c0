// internal/workers/recommendation/save-feedback/handler_test.go
package savefeedback

import (
	"context"
	"errors"
	"testing"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeedbackStore struct {
	saved     *models.Feedback
	insertErr error
}

func (f *fakeFeedbackStore) InsertFeedback(ctx context.Context, fb *models.Feedback) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	fb.ID = "fb-1"
	fb.CreatedAt = "2026-02-01T12:00:00Z"
	f.saved = fb
	return nil
}

func newTestHandler(feedback *fakeFeedbackStore) *Handler {
	return NewHandler(LoadConfig(), feedback, logger.NewNoOpLogger())
}

func TestExecute_SavesFeedback(t *testing.T) {
	feedback := &fakeFeedbackStore{}
	handler := newTestHandler(feedback)

	output, err := handler.Execute(context.Background(), &Input{
		UserID:           "user-1",
		ProductID:        "p1",
		RecommendationID: "rec-1",
		FeedbackType:     "like",
		Rating:           4,
		Comment:          "solid pick",
	})

	require.NoError(t, err)
	assert.Equal(t, "fb-1", output.FeedbackID)
	assert.Equal(t, "2026-02-01T12:00:00Z", output.SavedAt)
	require.NotNil(t, feedback.saved)
	assert.Equal(t, "like", feedback.saved.FeedbackType)
	assert.Equal(t, "rec-1", feedback.saved.RecommendationID)
	assert.Equal(t, 4, feedback.saved.Rating)
}

func TestExecute_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		field string
	}{
		{
			name:  "no userId",
			input: Input{ProductID: "p1", FeedbackType: "like"},
			field: "userId",
		},
		{
			name:  "no productId",
			input: Input{UserID: "user-1", FeedbackType: "like"},
			field: "productId",
		},
		{
			name:  "no feedbackType",
			input: Input{UserID: "user-1", ProductID: "p1"},
			field: "feedbackType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(&fakeFeedbackStore{})

			output, err := handler.Execute(context.Background(), &tt.input)

			assert.Nil(t, output)
			var stdErr *stderrors.StandardError
			require.True(t, errors.As(err, &stdErr))
			assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
			assert.Contains(t, stdErr.Message, tt.field)
		})
	}
}

func TestExecute_UnknownFeedbackType(t *testing.T) {
	handler := newTestHandler(&fakeFeedbackStore{})

	output, err := handler.Execute(context.Background(), &Input{
		UserID:       "user-1",
		ProductID:    "p1",
		FeedbackType: "meh",
	})

	assert.Nil(t, output)
	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
}

func TestExecute_InsertFails(t *testing.T) {
	handler := newTestHandler(&fakeFeedbackStore{insertErr: errors.New("connection reset")})

	output, err := handler.Execute(context.Background(), &Input{
		UserID:       "user-1",
		ProductID:    "p1",
		FeedbackType: "dislike",
	})

	assert.Nil(t, output)
	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeDatabaseInsertFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
