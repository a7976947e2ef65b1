package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"immoinvest/server/config"
	"immoinvest/server/internal/models"
	"immoinvest/server/internal/portfolio"
	"immoinvest/server/internal/queue"
)

// Refresher recomputes the stored output of a portfolio in place.
type Refresher interface {
	Refresh(ctx context.Context, p *models.Portfolio)
}

// BatchProcessor recalculates queued portfolio batches and persists them
type BatchProcessor struct {
	store     portfolio.Store
	refresher Refresher
	logger    *logrus.Logger
	config    *config.Config
	queue     *queue.PortfolioQueue
	jobs      chan []*models.Portfolio
	waitGroup sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewBatchProcessor creates a new batch processor instance
func NewBatchProcessor(store portfolio.Store, refresher Refresher, queue *queue.PortfolioQueue, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		store:     store,
		refresher: refresher,
		queue:     queue,
		config:    config,
		logger:    logger,
		jobs:      make(chan []*models.Portfolio),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start subscribes to the queue and launches the configured number of workers
func (p *BatchProcessor) Start() {
	workers := max(p.config.BatchProcessing.ProcessorCount, 1)
	for i := 0; i < workers; i++ {
		p.waitGroup.Add(1)
		go p.processLoop(i)
	}

	p.queue.Subscribe(p.dispatch)
}

// Stop cancels in-flight retries and waits for the workers to exit
func (p *BatchProcessor) Stop() {
	p.cancel()
	p.waitGroup.Wait()
}

// dispatch hands a batch to the next free worker. It blocks while all workers are
// busy, so the queue buffers further batches.
func (p *BatchProcessor) dispatch(batch []*models.Portfolio) error {
	select {
	case p.jobs <- batch:
		return nil
	case <-p.ctx.Done():
		return fmt.Errorf("processor stopped, dropping batch of %d portfolios", len(batch))
	}
}

func (p *BatchProcessor) processLoop(worker int) {
	defer p.waitGroup.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case batch := <-p.jobs:
			if err := p.processBatch(batch); err != nil {
				p.logger.WithError(err).WithFields(logrus.Fields{
					"worker":     worker,
					"batch_size": len(batch),
				}).Error("Dropping portfolio batch")
			}
		}
	}
}

// processBatch recomputes every portfolio and writes the outputs with retry logic.
// Portfolios deleted or edited since they were queued are skipped by the store.
func (p *BatchProcessor) processBatch(batch []*models.Portfolio) error {
	updates := make([]portfolio.OutputUpdate, 0, len(batch))
	for _, item := range batch {
		u := portfolio.NewOutputUpdate(item)
		p.refresher.Refresh(p.ctx, item)
		if item.Output != nil {
			u.Output = *item.Output
		}
		u.UpdatedAt = item.UpdatedAt
		updates = append(updates, u)
	}

	maxRetries := p.config.BatchProcessing.MaxRetries
	retryDelay := time.Duration(p.config.BatchProcessing.RetryDelay) * time.Second

	var err error
	attempt := 0
	for ; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch processing, attempt %d of %d", attempt, maxRetries)
			select {
			case <-time.After(retryDelay):
			case <-p.ctx.Done():
				return fmt.Errorf("batch processing cancelled: %w", p.ctx.Err())
			}
		}

		var written int
		written, err = p.store.UpdateOutputs(p.ctx, updates)
		if err == nil {
			p.logger.WithFields(logrus.Fields{
				"written": written,
				"skipped": len(updates) - written,
			}).Infof("Successfully processed batch of %d portfolios", len(batch))
			return nil
		}

		p.logger.Errorf("Batch processing failed: %v", err)
	}

	return fmt.Errorf("failed to process batch after %d attempts: %w", attempt, err)
}
