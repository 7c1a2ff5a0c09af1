package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"nota/internal/models"
	"nota/internal/storage"
)

// JobHandler is a function that processes a job.
// On success it may return the ID of the note it produced, which gets
// linked to the completed job record.
type JobHandler func(ctx context.Context, job *models.ProcessingJob) (noteID string, err error)

// Worker processes jobs from the queue
type Worker struct {
	jobRepo         *storage.JobRepository
	handlers        map[string]JobHandler
	interval        time.Duration
	cleanupInterval time.Duration
	retainDays      int
	stop            chan struct{}
	wg              sync.WaitGroup
	mu              sync.RWMutex
}

// NewWorker creates a new worker
func NewWorker(jobRepo *storage.JobRepository) *Worker {
	return &Worker{
		jobRepo:         jobRepo,
		handlers:        make(map[string]JobHandler),
		interval:        1 * time.Second,
		cleanupInterval: 1 * time.Hour,
		retainDays:      7,
		stop:            make(chan struct{}),
	}
}

// RegisterHandler registers a handler for a job type
func (w *Worker) RegisterHandler(jobType string, handler JobHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[jobType] = handler
}

// SetInterval sets the polling interval
func (w *Worker) SetInterval(interval time.Duration) {
	w.interval = interval
}

// SetCleanup configures the periodic removal of old completed jobs
func (w *Worker) SetCleanup(interval time.Duration, retainDays int) {
	w.cleanupInterval = interval
	w.retainDays = retainDays
}

// Start begins processing jobs
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
	log.Info().Msg("worker started")
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	close(w.stop)
	w.wg.Wait()
	log.Info().Msg("worker stopped")
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	cleanup := time.NewTicker(w.cleanupInterval)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-ticker.C:
			w.processNextJob(ctx)
		case <-cleanup.C:
			w.cleanupOldJobs(ctx)
		}
	}
}

func (w *Worker) cleanupOldJobs(ctx context.Context) {
	removed, err := w.jobRepo.CleanupCompleted(ctx, w.retainDays)
	if err != nil {
		log.Error().Err(err).Msg("failed to clean up completed jobs")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("cleaned up completed jobs")
	}
}

func (w *Worker) processNextJob(ctx context.Context) {
	job, err := w.jobRepo.GetNextQueued(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch next job")
		return
	}
	if job == nil {
		return // No jobs to process
	}

	w.mu.RLock()
	handler, ok := w.handlers[job.Type]
	w.mu.RUnlock()

	if !ok {
		log.Warn().Str("job_id", job.ID).Str("type", job.Type).Msg("no handler for job type")
		_ = w.jobRepo.Fail(ctx, job.ID, "no handler registered for job type: "+job.Type)
		return
	}

	// Start the job
	if err := w.jobRepo.Start(ctx, job.ID); err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("failed to start job")
		return
	}

	log.Info().Str("job_id", job.ID).Str("type", job.Type).Msg("processing job")

	// Execute the handler
	noteID, err := handler(ctx, job)
	if err != nil {
		log.Warn().Err(err).Str("job_id", job.ID).Msg("job failed")
		w.handleJobFailure(ctx, job, err)
		return
	}

	// Complete the job
	if err := w.jobRepo.Complete(ctx, job.ID, noteID); err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("failed to complete job")
		return
	}

	log.Info().Str("job_id", job.ID).Str("note_id", noteID).Msg("job completed")
}

func (w *Worker) handleJobFailure(ctx context.Context, job *models.ProcessingJob, jobErr error) {
	maxRetries := 3

	if job.RetryCount < maxRetries {
		// Retry the job
		if err := w.jobRepo.Retry(ctx, job.ID); err != nil {
			log.Error().Err(err).Str("job_id", job.ID).Msg("failed to requeue job")
		} else {
			log.Info().
				Str("job_id", job.ID).
				Int("attempt", job.RetryCount+1).
				Int("max", maxRetries).
				Msg("job queued for retry")
		}
	} else {
		// Max retries exceeded, mark as failed
		if err := w.jobRepo.Fail(ctx, job.ID, jobErr.Error()); err != nil {
			log.Error().Err(err).Str("job_id", job.ID).Msg("failed to mark job as failed")
		}
	}
}

// SubmitJob creates a new job and adds it to the queue
func (w *Worker) SubmitJob(ctx context.Context, jobType, videoURL string, priority int) (*models.ProcessingJob, error) {
	job := &models.ProcessingJob{
		Type:     jobType,
		VideoURL: videoURL,
		Priority: priority,
	}

	if err := w.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	log.Info().
		Str("job_id", job.ID).
		Str("type", jobType).
		Int("priority", priority).
		Msg("job submitted")
	return job, nil
}
