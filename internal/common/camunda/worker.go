// internal/common/camunda/worker.go
package camunda

import (
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// WorkerOptions mirrors the per-worker config block.
type WorkerOptions struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
}

// Workers opens job workers on one client and closes them together.
type Workers struct {
	client zbc.Client
	logger *zap.Logger

	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewWorkers(client zbc.Client, logger *zap.Logger) *Workers {
	return &Workers{
		client:  client,
		logger:  logger,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a worker for taskType. Disabled workers are logged and skipped.
func (w *Workers) Start(taskType string, opts WorkerOptions, handler worker.JobHandler) {
	if !opts.Enabled {
		w.logger.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	jobWorker := w.client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Open()

	w.mu.Lock()
	w.workers[taskType] = jobWorker
	w.mu.Unlock()

	w.logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", opts.MaxJobsActive),
		zap.Duration("timeout", opts.Timeout),
	)
}

// Running lists the task types with an open worker.
func (w *Workers) Running() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.workers))
	for taskType := range w.workers {
		out = append(out, taskType)
	}
	return out
}

// Close stops every worker and waits for in-flight jobs.
func (w *Workers) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for taskType, jw := range w.workers {
		w.logger.Info("stopping worker", zap.String("taskType", taskType))
		jw.Close()
		jw.AwaitClose()
		delete(w.workers, taskType)
	}
}
