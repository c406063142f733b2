package config

import (
	"fmt"

	"github.com/dmitrijs2005/taskdesk/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
)

// fileConfig is the on-disk shape of the config file. Every field is
// optional; absent values keep what earlier sources set.
type fileConfig struct {
	APIBaseURL     string `json:"api_url" yaml:"api_url"`
	StatePath      string `json:"state_path" yaml:"state_path"`
	RequestTimeout string `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       string `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c or -config. The format
// (JSON or YAML) follows the file extension.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	var fc fileConfig
	if err := cleanenv.ReadConfig(path, &fc); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.StatePath != "" {
		cfg.StatePath = fc.StatePath
	}
	if fc.RequestTimeout != "" {
		d, err := parseTimeout(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
		cfg.RequestTimeout = d
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	return nil
}
