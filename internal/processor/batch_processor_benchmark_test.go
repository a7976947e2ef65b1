package processor

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"immoinvest/server/internal/portfolio"
	"immoinvest/server/internal/queue"
)

func BenchmarkBatchProcessing(b *testing.B) {
	store := setupTestDB(b)
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel) // Reduce logging noise during benchmarks

	for _, batchSize := range []int{10, 50, 100} {
		b.Run(fmt.Sprintf("BatchSize_%d", batchSize), func(b *testing.B) {
			cfg := testConfig(1, 0)
			portfolioQueue := queue.NewPortfolioQueue(1, logger)
			service := portfolio.NewService(store, nil, nil, batchSize, logger)
			processor := NewBatchProcessor(store, service, portfolioQueue, cfg, logger)

			batch := generateTestPortfolios(fmt.Sprintf("bench%d", batchSize), batchSize)
			require.NoError(b, store.SaveBatch(context.Background(), batch))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				require.NoError(b, processor.processBatch(batch))
			}
			b.ReportMetric(float64(batchSize*b.N)/b.Elapsed().Seconds(), "portfolios/sec")
		})
	}
}
