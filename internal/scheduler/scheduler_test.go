package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immoinvest/server/internal/calculator"
	"immoinvest/server/internal/models"
	"immoinvest/server/internal/portfolio"
	"immoinvest/server/internal/queue"
)

func seedStore(t *testing.T, pending, done int) *portfolio.FileStore {
	t.Helper()
	store, err := portfolio.NewFileStore(t.TempDir(), logrus.New())
	require.NoError(t, err)

	batch := make([]*models.Portfolio, 0, pending+done)
	for i := 0; i < pending+done; i++ {
		p := &models.Portfolio{
			ID:     fmt.Sprintf("p%02d", i),
			UserID: "alice",
			Name:   "Flat",
			Input:  models.PropertyInput{PurchasePrice: 150000, ColdRentActual: 600, AfAType: models.AfAAltbauAb1925},
		}
		if i >= pending {
			output := calculator.CalculatePropertyKPIs(p.Input)
			p.Output = &output
		}
		batch = append(batch, p)
	}
	require.NoError(t, store.SaveBatch(context.Background(), batch))
	return store
}

func TestScheduler_RunBackfill(t *testing.T) {
	tests := []struct {
		name       string
		pending    int
		done       int
		queueSize  int
		batchSize  int
		wantQueued int
		wantLen    int
	}{
		{name: "Nothing pending", pending: 0, done: 3, queueSize: 4, batchSize: 2, wantQueued: 0, wantLen: 0},
		{name: "Pending portfolios are batched", pending: 5, done: 2, queueSize: 4, batchSize: 2, wantQueued: 5, wantLen: 3},
		{name: "Limited by free queue space", pending: 9, done: 0, queueSize: 2, batchSize: 2, wantQueued: 4, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seedStore(t, tt.pending, tt.done)
			q := queue.NewPortfolioQueue(tt.queueSize, logrus.New())
			s := NewScheduler(store, q, time.Minute, tt.batchSize, logrus.New())

			queued := s.RunBackfill(context.Background())
			assert.Equal(t, tt.wantQueued, queued)
			assert.Equal(t, tt.wantLen, q.Len())
		})
	}
}

func TestScheduler_SkipsWhenQueueFull(t *testing.T) {
	store := seedStore(t, 3, 0)
	q := queue.NewPortfolioQueue(1, logrus.New())
	require.NoError(t, q.Push([]*models.Portfolio{{ID: "other"}}))

	s := NewScheduler(store, q, time.Minute, 10, nil)
	assert.Zero(t, s.RunBackfill(context.Background()))
	assert.Equal(t, 1, q.Len())
}

func TestScheduler_StartStop(t *testing.T) {
	store := seedStore(t, 2, 0)
	q := queue.NewPortfolioQueue(4, logrus.New())
	s := NewScheduler(store, q, time.Hour, 10, logrus.New())

	s.Start()
	assert.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 10*time.Millisecond, "startup backfill runs immediately")
	s.Stop()
}

func TestScheduler_DisabledInterval(t *testing.T) {
	store := seedStore(t, 1, 0)
	q := queue.NewPortfolioQueue(4, logrus.New())
	s := NewScheduler(store, q, 0, 10, logrus.New())

	s.Start()
	assert.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 10*time.Millisecond)
	s.Stop()
}
