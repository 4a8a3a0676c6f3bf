package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/model"
	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/pkg/logger"
)

// JobStore is an in-memory store for asynchronous agent jobs. Jobs are
// never deleted by clients; the sweeper bounds memory growth by removing
// jobs older than maxAge regardless of status.
type JobStore struct {
	mu     sync.RWMutex
	jobs   map[string]*model.Job
	maxAge time.Duration
}

func NewJobStore(maxAge time.Duration) *JobStore {
	return &JobStore{
		jobs:   make(map[string]*model.Job),
		maxAge: maxAge,
	}
}

// Create inserts a new pending job and returns a copy of it.
func (s *JobStore) Create(inputText, sessionID, jobType string) model.Job {
	if jobType == "" {
		jobType = "agent-invocation"
	}

	now := time.Now()
	job := &model.Job{
		JobID:     newJobID(),
		Status:    model.StatusPending,
		InputText: inputText,
		SessionID: sessionID,
		JobType:   jobType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.JobID] = job
	return *job
}

// Get returns a copy of the job, or false if unknown.
func (s *JobStore) Get(id string) (model.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return model.Job{}, false
	}
	return *job, true
}

// MarkProcessing moves a pending job to processing. Transitions are
// monotonic: any other starting state is left untouched.
func (s *JobStore) MarkProcessing(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.jobs[id]; ok && job.Status == model.StatusPending {
		job.Status = model.StatusProcessing
		job.UpdatedAt = time.Now()
	}
}

// Complete stores the result and moves a processing job to completed.
func (s *JobStore) Complete(id, result, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.jobs[id]; ok && job.Status == model.StatusProcessing {
		job.Status = model.StatusCompleted
		job.Result = result
		job.SessionID = sessionID
		job.UpdatedAt = time.Now()
	}
}

// Fail records the error and moves a processing job to failed.
func (s *JobStore) Fail(id, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.jobs[id]; ok && job.Status == model.StatusProcessing {
		job.Status = model.StatusFailed
		job.ErrorMsg = errMsg
		job.UpdatedAt = time.Now()
	}
}

// Sweep removes every job older than maxAge, terminal or not, and
// returns the number removed.
func (s *JobStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.CreatedAt) > s.maxAge {
			slog.Info("cleaned up old job",
				"job_id", id,
				"status", job.Status,
				"age", now.Sub(job.CreatedAt).String(),
			)
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until ctx is cancelled.
func (s *JobStore) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Count returns the number of jobs in the store.
func (s *JobStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

func newJobID() string {
	return fmt.Sprintf("job-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// JobRunner executes submitted jobs against the agent gateway, one
// attempt per job with no retry.
type JobRunner struct {
	store *JobStore
	agent AgentInvoker
}

func NewJobRunner(store *JobStore, agent AgentInvoker) *JobRunner {
	return &JobRunner{store: store, agent: agent}
}

// Submit inserts a pending job and schedules its execution without
// blocking the caller.
func (r *JobRunner) Submit(inputText, sessionID, jobType string) model.Job {
	job := r.store.Create(inputText, sessionID, jobType)

	go r.run(job.JobID)

	return job
}

func (r *JobRunner) run(jobID string) {
	ctx := context.WithValue(context.Background(), logger.JobIDKey, jobID)

	job, ok := r.store.Get(jobID)
	if !ok {
		return
	}

	r.store.MarkProcessing(jobID)
	logger.Info(ctx, "processing job", "job_type", job.JobType)

	reply, err := r.agent.Invoke(ctx, job.InputText, job.SessionID)
	if err != nil {
		logger.Error(ctx, "job failed", "error", err)
		r.store.Fail(jobID, err.Error())
		return
	}

	r.store.Complete(jobID, reply.Output, reply.SessionID)
	logger.Info(ctx, "job completed")
}
