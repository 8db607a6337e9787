package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Output
	OutputPrecision int32 `env:"OUTPUT_PRECISION" envDefault:"-1"`
	SortOutput      bool  `env:"SORT_OUTPUT"      envDefault:"true"`

	// Metrics (optional - leave empty to disable)
	MetricsFile string `env:"METRICS_FILE" envDefault:""`

	// Redis export (optional - leave empty to disable)
	RedisURL       string        `env:"REDIS_URL"        envDefault:""`
	RedisKeyPrefix string        `env:"REDIS_KEY_PREFIX" envDefault:"xact:account:"`
	RedisTTL       time.Duration `env:"REDIS_TTL"        envDefault:"0s"`
	RedisTimeout   time.Duration `env:"REDIS_TIMEOUT"    envDefault:"5s"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
