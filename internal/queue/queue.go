package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"immoinvest/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// Handler receives one batch of portfolios awaiting recalculation.
type Handler func([]*models.Portfolio) error

// PortfolioQueue is an in-memory queue of portfolio batches
type PortfolioQueue struct {
	items    chan []*models.Portfolio
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []Handler
}

// NewPortfolioQueue creates a new queue holding at most bufferSize batches
func NewPortfolioQueue(bufferSize int, logger *logrus.Logger) *PortfolioQueue {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return &PortfolioQueue{
		items:    make(chan []*models.Portfolio, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]Handler, 0),
	}
}

// Push adds a batch to the queue without blocking
func (q *PortfolioQueue) Push(batch []*models.Portfolio) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- batch:
		q.logger.WithField("batch_size", len(batch)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// PushAll splits portfolios into batches of at most batchSize and pushes them in order.
// It stops at the first batch that cannot be queued and returns how many portfolios were queued.
func (q *PortfolioQueue) PushAll(portfolios []*models.Portfolio, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = len(portfolios)
	}

	queued := 0
	for start := 0; start < len(portfolios); start += batchSize {
		end := min(start+batchSize, len(portfolios))
		if err := q.Push(portfolios[start:end]); err != nil {
			return queued, err
		}
		queued = end
	}
	return queued, nil
}

// Subscribe adds a handler function that will be called for each batch
func (q *PortfolioQueue) Subscribe(handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue
func (q *PortfolioQueue) Start() {
	go q.process()
}

func (q *PortfolioQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case batch, ok := <-q.items:
			if !ok {
				return
			}
			q.processBatch(batch)
		}
	}
}

// processBatch sends the batch to all subscribed handlers
func (q *PortfolioQueue) processBatch(batch []*models.Portfolio) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).WithField("batch_size", len(batch)).Error("Handler failed to process batch")
		}
	}
}

// Close stops the queue and prevents new items from being added
func (q *PortfolioQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the current number of batches in the queue
func (q *PortfolioQueue) Len() int {
	return len(q.items)
}

// Cap returns the number of batches the queue can buffer
func (q *PortfolioQueue) Cap() int {
	return q.maxSize
}

func (q *PortfolioQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
