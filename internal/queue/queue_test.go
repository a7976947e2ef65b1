package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"immoinvest/server/internal/models"
)

func portfolios(ids ...string) []*models.Portfolio {
	batch := make([]*models.Portfolio, 0, len(ids))
	for _, id := range ids {
		batch = append(batch, &models.Portfolio{ID: id, UserID: "user-1"})
	}
	return batch
}

func TestNewPortfolioQueue(t *testing.T) {
	q := NewPortfolioQueue(10, logrus.New())
	assert.NotNil(t, q)
	assert.Equal(t, 10, q.maxSize)
	assert.False(t, q.IsClosed())
}

func TestPortfolioQueue_Push(t *testing.T) {
	q := NewPortfolioQueue(2, logrus.New())

	err := q.Push(portfolios("p1"))
	assert.NoError(t, err)
	assert.Equal(t, 1, q.Len())

	_ = q.Push(portfolios("p2"))
	err = q.Push(portfolios("p3"))
	assert.ErrorIs(t, err, ErrQueueFull)

	q.Close()
	err = q.Push(portfolios("p4"))
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestPortfolioQueue_PushAll(t *testing.T) {
	tests := []struct {
		name       string
		bufferSize int
		batchSize  int
		ids        []string
		wantQueued int
		wantLen    int
		wantErr    error
	}{
		{name: "Single batch", bufferSize: 4, batchSize: 10, ids: []string{"a", "b", "c"}, wantQueued: 3, wantLen: 1},
		{name: "Split into batches", bufferSize: 4, batchSize: 2, ids: []string{"a", "b", "c", "d", "e"}, wantQueued: 5, wantLen: 3},
		{name: "Zero batch size keeps one batch", bufferSize: 4, batchSize: 0, ids: []string{"a", "b"}, wantQueued: 2, wantLen: 1},
		{name: "Queue fills up", bufferSize: 1, batchSize: 2, ids: []string{"a", "b", "c"}, wantQueued: 2, wantLen: 1, wantErr: ErrQueueFull},
		{name: "Nothing to queue", bufferSize: 1, batchSize: 2, ids: nil, wantQueued: 0, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewPortfolioQueue(tt.bufferSize, nil)
			queued, err := q.PushAll(portfolios(tt.ids...), tt.batchSize)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantQueued, queued)
			assert.Equal(t, tt.wantLen, q.Len())
		})
	}
}

func TestPortfolioQueue_Subscribe(t *testing.T) {
	q := NewPortfolioQueue(10, logrus.New())
	defer q.Close()

	var processed []*models.Portfolio
	var mu sync.Mutex

	q.Subscribe(func(batch []*models.Portfolio) error {
		mu.Lock()
		processed = append(processed, batch...)
		mu.Unlock()
		return nil
	})

	q.Start()

	err := q.Push(portfolios("p1", "p2"))
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(processed) == 2
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Equal(t, "p1", processed[0].ID)
	assert.Equal(t, "p2", processed[1].ID)
	mu.Unlock()
}

func TestPortfolioQueue_Close(t *testing.T) {
	q := NewPortfolioQueue(10, logrus.New())

	err := q.Close()
	assert.NoError(t, err)
	assert.True(t, q.IsClosed())

	err = q.Close()
	assert.NoError(t, err)
}

func TestPortfolioQueue_ProcessBatch(t *testing.T) {
	q := NewPortfolioQueue(10, logrus.New())
	defer q.Close()

	var wg sync.WaitGroup
	processedBatches := 0
	var mu sync.Mutex

	for i := 0; i < 3; i++ {
		wg.Add(1)
		q.Subscribe(func(batch []*models.Portfolio) error {
			mu.Lock()
			processedBatches++
			mu.Unlock()
			wg.Done()
			return nil
		})
	}

	q.Start()

	err := q.Push(portfolios("p1"))
	assert.NoError(t, err)

	wg.Wait()

	mu.Lock()
	assert.Equal(t, 3, processedBatches)
	mu.Unlock()
}
