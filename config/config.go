package config

import "github.com/caarlos0/env/v6"

type Config struct {
	Server struct {
		// Port the API listens on
		Port string `env:"SERVER_PORT" envDefault:"5250"`

		// Origins allowed by the CORS middleware
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	Database struct {
		// Path to the sqlite database file
		Path string `env:"DATABASE_PATH" envDefault:"database/homeworth.db"`
	}

	Auth struct {
		// Secret used to sign identity tokens
		JWTSecret string `env:"JWT_SECRET" envDefault:"homeworth-dev-secret"`

		// Token lifetime in hours
		TokenExpiryHours int `env:"JWT_EXPIRY_HOURS" envDefault:"72"`
	}

	Guessing struct {
		// Days a user must wait between edits of their own guess
		CooldownDays int `env:"GUESS_COOLDOWN_DAYS" envDefault:"5"`

		// Guesses below this fraction of the reference value are flagged
		OutlierLowerRatio float64 `env:"OUTLIER_LOWER_RATIO" envDefault:"0.1"`

		// Guesses above this multiple of the reference value are flagged
		OutlierUpperRatio float64 `env:"OUTLIER_UPPER_RATIO" envDefault:"10"`

		// Share of the assessed value blended into low-confidence estimates
		AnchorBlendRatio float64 `env:"ANCHOR_BLEND_RATIO" envDefault:"0.5"`
	}

	Cache struct {
		// Minutes a cached property reference stays fresh
		ReferenceTTLMinutes int `env:"REFERENCE_CACHE_TTL_MIN" envDefault:"10"`
	}

	Import struct {
		// Maximum number of reference batches buffered in the queue
		QueueSize int `env:"IMPORT_QUEUE_SIZE" envDefault:"16"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"IMPORT_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"IMPORT_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
