// Package config loads adrift's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable, e.g. ADRIFT_API_KEY.
const Prefix = "adrift"

// Config holds the runtime settings. Command flags override these values.
type Config struct {
	APIKey       string        `envconfig:"API_KEY"`
	APIURL       string        `envconfig:"API_URL"`
	Model        string        `envconfig:"MODEL" default:"gpt-4o-mini"`
	Timeout      time.Duration `envconfig:"TIMEOUT" default:"30s"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	RedisURL     string        `envconfig:"REDIS_URL"`
	MaxInputSize int           `envconfig:"MAX_INPUT_SIZE" default:"4096"`
	Plain        bool          `envconfig:"PLAIN" default:"false"`
	Port         int           `envconfig:"PORT" default:"8080"`
	ThemesFile   string        `envconfig:"THEMES"`
	SessionIdle  time.Duration `envconfig:"SESSION_IDLE" default:"30m"`
}

// Load reads the optional dotenv files (".env" when none is given) and then the environment.
// Variables already set in the environment win over dotenv values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings needed to talk to the storyteller.
func (c *Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, errors.New("ADRIFT_API_KEY is required"))
	}
	if c.Model == "" {
		errs = append(errs, errors.New("model must not be empty"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.MaxInputSize <= 0 {
		errs = append(errs, fmt.Errorf("max input size must be positive, got %d", c.MaxInputSize))
	}
	if c.SessionIdle <= 0 {
		errs = append(errs, fmt.Errorf("session idle timeout must be positive, got %s", c.SessionIdle))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	return errors.Join(errs...)
}

// LogValue implements slog.LogValuer and never prints the API key.
func (c *Config) LogValue() slog.Value {
	key := "[unset]"
	if c.APIKey != "" {
		key = "[set]"
	}
	return slog.GroupValue(
		slog.String("api_key", key),
		slog.String("api_url", c.APIURL),
		slog.String("model", c.Model),
		slog.Duration("timeout", c.Timeout),
		slog.String("log_level", c.LogLevel),
		slog.Bool("redis", c.RedisURL != ""),
		slog.Int("max_input_size", c.MaxInputSize),
		slog.Bool("plain", c.Plain),
		slog.Duration("session_idle", c.SessionIdle),
	)
}
