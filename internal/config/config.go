package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level taskd.yml configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
}

// ServerConfig specifies the HTTP listener
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"TASKD_ADDR" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"TASKD_READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"TASKD_WRITE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"TASKD_SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// RedisConfig specifies the task store connection
type RedisConfig struct {
	URL          string `yaml:"url" env:"REDIS_URL" validate:"required"`
	Namespace    string `yaml:"namespace" env:"TASKD_NAMESPACE" validate:"excludesall=:"` // Empty: tasks keyed by bare id
	PoolSize     int    `yaml:"pool_size" env:"TASKD_REDIS_POOL_SIZE" validate:"gte=0"`   // 0 = go-redis default
	AtomicCreate bool   `yaml:"atomic_create" env:"TASKD_ATOMIC_CREATE"`                  // Conditional create instead of check-then-write
}

var validate = validator.New()

// Default returns the configuration used when nothing else is set.
// Redis.URL has no default and must be supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "0.0.0.0:8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Validate performs strict validation on the configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			problems := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s failed '%s'", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag()))
			}
			return fmt.Errorf("%s", strings.Join(problems, "; "))
		}
		return err
	}

	if _, err := redis.ParseURL(c.Redis.URL); err != nil {
		return fmt.Errorf("invalid redis url: %w", err)
	}

	return nil
}

// Options builds go-redis options from the Redis section.
// Client-side retries are disabled: every store command is one round trip.
func (r RedisConfig) Options() (*redis.Options, error) {
	opts, err := redis.ParseURL(r.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if r.PoolSize > 0 {
		opts.PoolSize = r.PoolSize
	}
	opts.MaxRetries = -1
	return opts, nil
}

// Load builds the configuration from defaults, the optional YAML file at
// path, environment variables and finally overrides, in that order, then
// validates the result.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	config := Default()

	if path != "" {
		if err := readFile(path, config); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	for _, override := range overrides {
		override(config)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func readFile(path string, config *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}
