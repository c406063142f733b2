package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultAPIBaseURL     = "http://localhost:5000"
	DefaultStatePath      = "taskdesk.db"
	DefaultRequestTimeout = 30 * time.Second
	DefaultLogLevel       = "info"
)

// Config holds runtime settings for the taskdesk CLI.
//
// Fields:
//   - APIBaseURL: root URL of the task API, e.g. http://localhost:5000.
//   - StatePath: SQLite file keeping the session token. "" disables
//     persistence, ":memory:" keeps it for the process lifetime only.
//   - RequestTimeout: upper bound for a single API request.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	StatePath      string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.StatePath = DefaultStatePath
	c.RequestTimeout = DefaultRequestTimeout
	c.LogLevel = DefaultLogLevel
}

// LoadConfig builds a Config from defaults, the optional config file, the
// environment and the command-line flags, in that order. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}

	loadDotEnv()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseTimeout accepts a Go duration ("15s") or a whole number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative timeout %d", n)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", v, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative timeout %q", v)
	}
	return d, nil
}
