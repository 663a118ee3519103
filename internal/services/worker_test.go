package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/profile-screener/internal/models"
	"alfredoptarigan/profile-screener/internal/repositories"
)

// completingProcessor marks every job completed, like the real pipeline would.
type completingProcessor struct {
	repo *repositories.MemorySubmissionRepository

	mu   sync.Mutex
	seen map[uuid.UUID]int
	done chan uuid.UUID
}

func newCompletingProcessor(repo *repositories.MemorySubmissionRepository) *completingProcessor {
	return &completingProcessor{repo: repo, seen: map[uuid.UUID]int{}, done: make(chan uuid.UUID, 16)}
}

func (p *completingProcessor) ProcessSubmission(ctx context.Context, id uuid.UUID) error {
	p.mu.Lock()
	p.seen[id]++
	p.mu.Unlock()
	if err := p.repo.UpdateStatus(id, models.StatusCompleted); err != nil {
		return err
	}
	select {
	case p.done <- id:
	default:
	}
	return nil
}

func waitForJob(t *testing.T, done <-chan uuid.UUID) uuid.UUID {
	t.Helper()
	select {
	case id := <-done:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("job was not processed")
		return uuid.Nil
	}
}

func TestWorkerProcessesEnqueuedJobs(t *testing.T) {
	repo := repositories.NewMemorySubmissionRepository()
	proc := newCompletingProcessor(repo)
	w := NewWorker(repo, proc, WorkerOptions{Concurrency: 2, PollInterval: time.Hour})

	sub := &models.Submission{}
	require.NoError(t, repo.Create(sub))

	w.Start(context.Background())
	defer w.Stop()

	w.EnqueueJob(sub.ID)
	assert.Equal(t, sub.ID, waitForJob(t, proc.done))

	got, err := repo.FindByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestWorkerPollsQueuedSubmissions(t *testing.T) {
	repo := repositories.NewMemorySubmissionRepository()
	proc := newCompletingProcessor(repo)

	queued := &models.Submission{}
	require.NoError(t, repo.Create(queued))
	finished := &models.Submission{}
	require.NoError(t, repo.Create(finished))
	require.NoError(t, repo.UpdateStatus(finished.ID, models.StatusCompleted))

	w := NewWorker(repo, proc, WorkerOptions{Concurrency: 1, PollInterval: 10 * time.Millisecond})
	w.Start(context.Background())
	assert.Equal(t, queued.ID, waitForJob(t, proc.done))
	w.Stop()

	proc.mu.Lock()
	defer proc.mu.Unlock()
	assert.Zero(t, proc.seen[finished.ID])
}

func TestWorkerStopIsIdempotent(t *testing.T) {
	repo := repositories.NewMemorySubmissionRepository()
	w := NewWorker(repo, newCompletingProcessor(repo), WorkerOptions{})
	w.Start(context.Background())
	w.Stop()
	w.Stop()

	// Enqueueing after stop must not block once the queue is full.
	full := NewWorker(repo, newCompletingProcessor(repo), WorkerOptions{QueueSize: 1})
	full.Stop()
	finished := make(chan struct{})
	go func() {
		full.EnqueueJob(uuid.New())
		full.EnqueueJob(uuid.New())
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("EnqueueJob blocked after Stop")
	}
}
