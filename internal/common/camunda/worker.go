// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"study-abroad-workers/internal/common/config"
	"study-abroad-workers/internal/common/metrics"
	"study-abroad-workers/internal/common/observability"
)

// HandlerFunc is the signature every worker's Handle method satisfies.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// RegisterWorker opens a job worker for taskType with the limits from
// wcfg. It returns nil when the worker is disabled.
func RegisterWorker(
	client zbc.Client,
	taskType string,
	wcfg config.WorkerConfig,
	handler HandlerFunc,
	obs *observability.Observability,
	log *zap.Logger,
) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(Instrument(taskType, handler, obs))).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return jobWorker
}

// Instrument wraps handler with the active-jobs gauge and the duration
// histograms. obs may be nil.
func Instrument(taskType string, handler HandlerFunc, obs *observability.Observability) HandlerFunc {
	active := metrics.WorkerJobsActive.WithLabelValues(taskType)
	duration := metrics.WorkerJobDuration.WithLabelValues(taskType)

	return func(client worker.JobClient, job entities.Job) {
		active.Inc()
		start := time.Now()
		defer func() {
			elapsed := time.Since(start)
			active.Dec()
			duration.Observe(elapsed.Seconds())
			obs.RecordJob(context.Background(), taskType, elapsed)
		}()
		handler(client, job)
	}
}
