package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Port string `yaml:"port"`

	// Auth
	APIKey string `yaml:"api_key"`

	// Itinerary generation
	AnthropicAPIKey  string `yaml:"anthropic_api_key"`
	AnthropicModel   string `yaml:"anthropic_model"`
	AnthropicBaseURL string `yaml:"anthropic_base_url"`

	// Worker pool
	WorkerCount  int `yaml:"worker_count"`
	MaxQueueSize int `yaml:"max_queue_size"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// Job state
	JobTTL time.Duration `yaml:"job_ttl"`

	// Trip storage
	StoreBackend  string        `yaml:"store_backend"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	TripTTL       time.Duration `yaml:"trip_ttl"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// PDF
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:                 "8090",
		AnthropicModel:       "claude-sonnet-4-5-20250929",
		WorkerCount:          4,
		MaxQueueSize:         100,
		MaxUploadBytes:       10 << 20,
		JobTTL:               time.Hour,
		StoreBackend:         BackendMemory,
		RedisAddr:            "localhost:6379",
		LogLevel:             "info",
		LogFormat:            "json",
		PDFFallbackPdftotext: true,
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// TRIPGEST_CONFIG (if any), then environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("TRIPGEST_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = envOr("PORT", c.Port)
	c.APIKey = envOr("TRIPGEST_API_KEY", c.APIKey)

	c.AnthropicAPIKey = envOr("ANTHROPIC_API_KEY", c.AnthropicAPIKey)
	c.AnthropicModel = envOr("ANTHROPIC_MODEL", c.AnthropicModel)
	c.AnthropicBaseURL = envOr("ANTHROPIC_BASE_URL", c.AnthropicBaseURL)

	c.WorkerCount = envInt("WORKER_COUNT", c.WorkerCount)
	c.MaxQueueSize = envInt("MAX_QUEUE_SIZE", c.MaxQueueSize)
	c.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", c.MaxUploadBytes)
	c.JobTTL = envDuration("JOB_TTL", c.JobTTL)

	c.StoreBackend = envOr("STORE_BACKEND", c.StoreBackend)
	c.RedisAddr = envOr("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = envOr("REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = envInt("REDIS_DB", c.RedisDB)
	c.TripTTL = envDuration("TRIP_TTL", c.TripTTL)

	c.LogLevel = envOr("LOG_LEVEL", c.LogLevel)
	c.LogFormat = envOr("LOG_FORMAT", c.LogFormat)

	c.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", c.PDFFallbackPdftotext)
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	d := Default()
	if c.WorkerCount <= 0 {
		c.WorkerCount = d.WorkerCount
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = d.MaxQueueSize
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = d.MaxUploadBytes
	}
	if c.JobTTL <= 0 {
		c.JobTTL = d.JobTTL
	}
	if c.TripTTL < 0 {
		c.TripTTL = 0
	}
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	if c.StoreBackend == "" {
		c.StoreBackend = d.StoreBackend
	}
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("TRIPGEST_API_KEY is required")
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
