package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"immoinvest/server/internal/calculator"
	"immoinvest/server/internal/models"
)

const propertyNamespace = "kpi"

// CachedCalculator wraps calculator.CalculatePropertyKPIs with a Repository.
// Cache failures are logged and never fail a calculation.
type CachedCalculator struct {
	cache  Repository
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedCalculator(cache Repository, ttl time.Duration, logger *logrus.Logger) *CachedCalculator {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &CachedCalculator{cache: cache, ttl: ttl, logger: logger}
}

// Calculate returns the output for input, from the cache when present.
// The second result reports a cache hit.
func (c *CachedCalculator) Calculate(ctx context.Context, input models.PropertyInput) (models.PropertyOutput, bool) {
	key, err := Key(propertyNamespace, input)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to build cache key")
		return calculator.CalculatePropertyKPIs(input), false
	}

	if cached, ok := c.cache.Get(ctx, key); ok {
		var output models.PropertyOutput
		if err := json.Unmarshal([]byte(cached), &output); err == nil {
			return output, true
		}
		c.logger.WithField("key", key).Warn("Discarding unreadable cache entry")
	}

	output := calculator.CalculatePropertyKPIs(input)

	data, err := json.Marshal(output)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to encode calculation for cache")
		return output, false
	}
	if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Failed to write to cache")
	}

	return output, false
}
