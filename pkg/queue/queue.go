// Package queue provides a small background job system used for
// reconciliation work that must survive a failed request step, e.g.
// retrying the cart-clear after an order has already committed.
//
// Usage:
//
//	// Define a job
//	type ClearCartJob struct { Buyer string }
//	func (j *ClearCartJob) Handle(ctx context.Context) error { ... }
//
//	// Register at boot, then dispatch from anywhere
//	queue.Register("jobs.ClearCartJob", func() queue.Job { return &jobs.ClearCartJob{} })
//	queue.Dispatch(&jobs.ClearCartJob{Buyer: id})
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/kipngetich-lab/TukoShop-App/pkg/logger"
	"github.com/kipngetich-lab/TukoShop-App/pkg/metrics"
)

// Job is the interface every queued job must satisfy. Handle receives a
// context that is cancelled on worker shutdown; long-running jobs should
// honor it.
type Job interface {
	Handle(ctx context.Context) error
}

// FailedJob records a job that exhausted its retries.
type FailedJob struct {
	Job      Job
	Err      error
	FailedAt time.Time
	Attempts int
}

// Driver is the queue storage backend.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

type jobEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Manager is the central queue hub.
type Manager struct {
	mu       sync.RWMutex
	driver   Driver
	registry map[string]func() Job // type name → constructor
	failed   []FailedJob
	maxRetry int
}

var defaultManager = &Manager{
	registry: map[string]func() Job{},
	maxRetry: 3,
	driver:   NewMemoryDriver(),
}

// SetDriver swaps the underlying queue driver (e.g. Redis).
func SetDriver(d Driver) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.driver = d
}

// SetMaxRetry sets how many times a failing job is attempted.
func SetMaxRetry(n int) { defaultManager.maxRetry = n }

// Register makes a job type available for deserialization by name.
// Call this once at boot for every job type you define.
func Register(name string, factory func() Job) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.registry[name] = factory
}

// Dispatch pushes job onto the default queue immediately.
func Dispatch(job Job) error {
	typeName := fmt.Sprintf("%T", job)

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: marshal job %s: %w", typeName, err)
	}
	env, err := json.Marshal(jobEnvelope{Type: typeName, Payload: payload})
	if err != nil {
		return fmt.Errorf("queue: marshal envelope: %w", err)
	}

	return defaultManager.currentDriver().Push(env)
}

func (m *Manager) currentDriver() Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.driver
}

// StartWorkers launches n concurrent workers that pull and run jobs until
// ctx is cancelled.
func StartWorkers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go defaultManager.work(ctx)
	}
	logger.Info("queue: workers started", "count", n)
}

func (m *Manager) work(ctx context.Context) {
	for ctx.Err() == nil {
		raw, err := m.currentDriver().Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Transient driver error (e.g. Redis hiccup); back off briefly.
			if !sleep(ctx, 500*time.Millisecond) {
				return
			}
			continue
		}
		if raw == nil {
			continue
		}

		m.process(ctx, raw)
	}
}

func (m *Manager) process(ctx context.Context, raw []byte) {
	var env jobEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()
	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		return
	}

	m.runWithRetry(ctx, job, env.Type)
}

func (m *Manager) runWithRetry(ctx context.Context, job Job, typeName string) {
	var lastErr error
	for attempt := 1; attempt <= m.maxRetry; attempt++ {
		lastErr = job.Handle(ctx)
		if lastErr == nil {
			metrics.QueueJobsProcessed.WithLabelValues("success").Inc()
			logger.Info("queue: job processed", "type", typeName)
			return
		}

		logger.Warn("queue: job failed, retrying",
			"type", typeName, "attempt", attempt, "error", lastErr)
		if attempt < m.maxRetry && !sleep(ctx, time.Duration(attempt)*time.Second) { // linear backoff
			break
		}
	}

	// Retries exhausted; keep the failure visible to operators.
	m.mu.Lock()
	m.failed = append(m.failed, FailedJob{
		Job: job, Err: lastErr, FailedAt: time.Now(), Attempts: m.maxRetry,
	})
	m.mu.Unlock()

	metrics.QueueJobsProcessed.WithLabelValues("failed").Inc()
	logger.Error("queue: job exhausted retries", "type", typeName, "error", lastErr)
}

// sleep waits for d or until ctx is cancelled; reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// FailedJobs returns a snapshot of all jobs that exhausted their retries.
func FailedJobs() []FailedJob {
	defaultManager.mu.RLock()
	defer defaultManager.mu.RUnlock()
	out := make([]FailedJob, len(defaultManager.failed))
	copy(out, defaultManager.failed)
	return out
}
