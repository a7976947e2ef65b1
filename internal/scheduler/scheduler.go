package scheduler

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"immoinvest/server/internal/portfolio"
	"immoinvest/server/internal/queue"
)

// Scheduler periodically queues portfolios that were stored without an output
type Scheduler struct {
	store     portfolio.Store
	queue     *queue.PortfolioQueue
	logger    *logrus.Logger
	interval  time.Duration
	batchSize int
	stopChan  chan struct{}
	wg        sync.WaitGroup
	jobMutex  sync.Mutex // Ensures sequential job execution
}

// NewScheduler creates a new scheduler
func NewScheduler(store portfolio.Store, q *queue.PortfolioQueue, interval time.Duration, batchSize int, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		store:     store,
		queue:     q,
		logger:    logger,
		interval:  interval,
		batchSize: batchSize,
		stopChan:  make(chan struct{}),
	}
}

// Start runs one backfill immediately and then one per interval
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.runScheduler()
}

func (s *Scheduler) runScheduler() {
	defer s.wg.Done()

	s.logger.Info("Running startup backfill")
	s.RunBackfill(context.Background())

	if s.interval <= 0 {
		s.logger.Info("Periodic backfill disabled")
		<-s.stopChan
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunBackfill(context.Background())
		}
	}
}

// RunBackfill queues portfolios without output and returns how many were queued.
// At most one queue's worth of batches is read per run.
func (s *Scheduler) RunBackfill(ctx context.Context) int {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	batchSize := max(s.batchSize, 1)
	free := s.queue.Cap() - s.queue.Len()
	if free <= 0 {
		s.logger.Debug("Skipping backfill while the queue is full")
		return 0
	}

	pending, err := s.store.ListWithoutOutput(ctx, free*batchSize)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list portfolios without output")
		return 0
	}
	if len(pending) == 0 {
		return 0
	}

	queued, err := s.queue.PushAll(pending, batchSize)
	fields := logrus.Fields{
		"pending": len(pending),
		"queued":  queued,
	}
	switch {
	case errors.Is(err, queue.ErrQueueFull):
		s.logger.WithFields(fields).Warn("Queue full, remaining portfolios are retried on the next run")
	case err != nil:
		s.logger.WithError(err).WithFields(fields).Error("Failed to queue portfolios for backfill")
	default:
		s.logger.WithFields(fields).Info("Queued portfolios for backfill")
	}
	return queued
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
