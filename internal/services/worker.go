package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/profile-screener/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(submissionID uuid.UUID)
}

// JobProcessor handles one queued submission.
type JobProcessor interface {
	ProcessSubmission(ctx context.Context, submissionID uuid.UUID) error
}

type WorkerOptions struct {
	Concurrency  int
	QueueSize    int
	PollInterval time.Duration
	PollBatch    int
}

type worker struct {
	subRepo      repositories.SubmissionRepository
	processor    JobProcessor
	jobQueue     chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	pollBatch    int
	wg           sync.WaitGroup
	stopChan     chan struct{}
	stopOnce     sync.Once
}

func NewWorker(
	subRepo repositories.SubmissionRepository,
	processor JobProcessor,
	opts WorkerOptions,
) Worker {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 100
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}
	if opts.PollBatch < 1 {
		opts.PollBatch = 10
	}

	return &worker{
		subRepo:      subRepo,
		processor:    processor,
		jobQueue:     make(chan uuid.UUID, opts.QueueSize),
		concurrency:  opts.Concurrency,
		pollInterval: opts.PollInterval,
		pollBatch:    opts.PollBatch,
		stopChan:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Info().Int("concurrency", w.concurrency).Msg("🚀 Starting worker")

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Info().Msg("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Info().Msg("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Info().Msg("✅ Worker stopped")
	})
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(submissionID uuid.UUID) {
	select {
	case w.jobQueue <- submissionID:
		log.Debug().Str("submission_id", submissionID.String()).Msg("📥 Job enqueued")
	case <-w.stopChan:
		log.Warn().Str("submission_id", submissionID.String()).Msg("⚠️ Worker stopped, cannot enqueue job")
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Debug().Int("worker", workerID).Msg("👷 Worker stopped")
			return
		case <-ctx.Done():
			return
		case submissionID := <-w.jobQueue:
			logger := log.With().Int("worker", workerID).Str("submission_id", submissionID.String()).Logger()
			logger.Info().Msg("👷 Processing job")
			if err := w.processor.ProcessSubmission(ctx, submissionID); err != nil {
				logger.Error().Err(err).Msg("❌ Failed to process job")
			} else {
				logger.Info().Msg("✅ Completed job")
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	log.Debug().Dur("interval", w.pollInterval).Msg("🔄 Starting pending jobs poller")

	for {
		select {
		case <-w.stopChan:
			log.Debug().Msg("🔄 Pending jobs poller stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pendingJobs, err := w.subRepo.FindPendingJobs(w.pollBatch)
			if err != nil {
				log.Warn().Err(err).Msg("⚠️ Failed to fetch pending jobs")
				continue
			}

			if len(pendingJobs) > 0 {
				log.Info().Int("count", len(pendingJobs)).Msg("📋 Found pending jobs")
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
