package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "study-abroad-workers/internal/common/errors"
	"study-abroad-workers/internal/common/metrics"
)

var fastRetry = &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestWithRetry_RetriesTransientErrors(t *testing.T) {
	calls := 0
	res, err := WithRetry(context.Background(), fastRetry, func(context.Context) (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("rpc error: code = Unavailable desc = connection refused")
		}
		return "ok", nil
	}, "complete job")

	require.NoError(t, err)
	assert.Equal(t, "ok", res)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastRetry, func(context.Context) (interface{}, error) {
		calls++
		return nil, errors.New("rpc error: code = NotFound desc = job not found")
	}, "complete job")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, apperrors.ErrCodeWorkflowEngineUnavailable, apperrors.CodeOf(err))
	assert.False(t, apperrors.Normalize(err).Retryable)
}

func TestWithRetry_ExhaustedTimeout(t *testing.T) {
	_, err := WithRetry(context.Background(), fastRetry, func(context.Context) (interface{}, error) {
		return nil, errors.New("context deadline exceeded")
	}, "complete job")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeWorkflowEngineTimeout, apperrors.CodeOf(err))
}

func TestWithRetry_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	slow := &RetryConfig{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: time.Second}

	_, err := WithRetry(ctx, slow, func(context.Context) (interface{}, error) {
		return nil, errors.New("connection reset by peer")
	}, "complete job")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInstrument_TracksActiveJobsAndDuration(t *testing.T) {
	const taskType = "instrument-test"
	var sawActive float64

	handler := Instrument(taskType, func(worker.JobClient, entities.Job) {
		sawActive = testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType))
	}, nil)

	handler(nil, entities.Job{})

	assert.Equal(t, float64(1), sawActive)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.WorkerJobDuration, "worker_job_duration_seconds"))
}
