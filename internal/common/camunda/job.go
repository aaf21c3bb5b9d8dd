// internal/common/camunda/job.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"study-abroad-workers/internal/common/logger"
	"study-abroad-workers/internal/common/metrics"
)

// completeRetry is short: the job lease is still held while we retry.
var completeRetry = &RetryConfig{
	MaxRetries: 2,
	BaseDelay:  200 * time.Millisecond,
	MaxDelay:   1 * time.Second,
}

// CompleteJob completes job with output as its variables and counts the
// completion. Failures to reach the broker are logged; the broker will
// hand the job out again once its lease expires.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}, log logger.Logger) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	_, err = WithRetry(ctx, completeRetry, func(ctx context.Context) (interface{}, error) {
		return cmd.Send(ctx)
	}, "complete job")
	if err != nil {
		log.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(job.Type).Inc()
}
