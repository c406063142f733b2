package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// envConfig lists the environment variables the client reads.
type envConfig struct {
	APIBaseURL     string `env:"TASKDESK_API_URL"`
	StatePath      string `env:"TASKDESK_STATE"`
	RequestTimeout string `env:"TASKDESK_TIMEOUT"`
	LogLevel       string `env:"TASKDESK_LOG_LEVEL"`
}

// loadDotEnv imports a .env file from the working directory, if present.
// Variables already set in the environment win.
func loadDotEnv() {
	_ = godotenv.Load()
}

// parseEnv overlays cfg with the TASKDESK_* variables. TASKDESK_STATE may be
// set to an empty value to disable token persistence.
func parseEnv(cfg *Config) error {
	var ec envConfig
	if err := cleanenv.ReadEnv(&ec); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if _, set := os.LookupEnv("TASKDESK_STATE"); set {
		cfg.StatePath = ec.StatePath
	}
	if ec.RequestTimeout != "" {
		d, err := parseTimeout(ec.RequestTimeout)
		if err != nil {
			return fmt.Errorf("TASKDESK_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	return nil
}
