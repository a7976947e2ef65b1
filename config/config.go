package config

import "github.com/caarlos0/env/v6"

type Config struct {
	Server struct {
		Port string `env:"PORT" envDefault:"5250"`

		// Origins allowed by the CORS middleware
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

		// Requests per client per minute
		RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	}

	Storage struct {
		// "sqlite" or "file"
		Backend      string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
		DatabasePath string `env:"DATABASE_PATH" envDefault:"database/immo.db"`
		PortfolioDir string `env:"PORTFOLIO_DIR" envDefault:"data/portfolios"`
	}

	Cache struct {
		// Empty address selects the in-memory cache
		RedisAddr string `env:"REDIS_ADDR"`
		TTL       int    `env:"CACHE_TTL" envDefault:"3600"`
	}

	Calculation struct {
		// Year used for building-age adjustments; 0 means the current year
		ReferenceYear int    `env:"REFERENCE_YEAR" envDefault:"0"`
		CityRentsFile string `env:"CITY_RENTS_FILE"`
	}

	// BatchProcessing configuration
	BatchProcessing struct {
		// Maximum number of portfolios per recalculation batch
		MaxBatchSize int `env:"BATCH_MAX_SIZE" envDefault:"100"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`

		// Number of batches the queue buffers
		QueueSize int `env:"BATCH_QUEUE_SIZE" envDefault:"32"`

		// Seconds between backfill runs for portfolios without output
		BackfillInterval int `env:"BACKFILL_INTERVAL" envDefault:"300"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
