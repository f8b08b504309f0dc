package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configEnv = []string{
	"TRIPGEST_CONFIG", "PORT", "TRIPGEST_API_KEY", "ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
	"ANTHROPIC_BASE_URL", "WORKER_COUNT", "MAX_QUEUE_SIZE", "MAX_UPLOAD_BYTES", "JOB_TTL",
	"STORE_BACKEND", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "TRIP_TTL",
	"LOG_LEVEL", "LOG_FORMAT", "PDF_FALLBACK_PDFTOTEXT",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("JOB_TTL", "30m")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected 30m job ttl, got %v", cfg.JobTTL)
	}
	if cfg.StoreBackend != BackendRedis {
		t.Errorf("expected redis backend, got %q", cfg.StoreBackend)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback disabled")
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("WORKER_COUNT", "lots")
	t.Setenv("MAX_QUEUE_SIZE", "-3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected default workers, got %d", cfg.WorkerCount)
	}
	if cfg.MaxQueueSize != 100 {
		t.Errorf("expected default queue size, got %d", cfg.MaxQueueSize)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "tripgest.yaml")
	content := "port: \"7000\"\nworker_count: 2\njob_ttl: 15m\nstore_backend: redis\nredis_addr: cache:6379\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRIPGEST_CONFIG", path)
	t.Setenv("WORKER_COUNT", "6")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7000" {
		t.Errorf("expected port from file, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 6 {
		t.Errorf("expected env to win over file, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != 15*time.Minute {
		t.Errorf("expected 15m job ttl, got %v", cfg.JobTTL)
	}
	if cfg.RedisAddr != "cache:6379" {
		t.Errorf("expected redis addr from file, got %q", cfg.RedisAddr)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIPGEST_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Default()
	valid.APIKey = "k"
	valid.AnthropicAPIKey = "a"

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing api key", func(c *Config) { c.APIKey = "" }, true},
		{"missing anthropic key", func(c *Config) { c.AnthropicAPIKey = "" }, true},
		{"redis", func(c *Config) { c.StoreBackend = BackendRedis }, false},
		{"redis without addr", func(c *Config) { c.StoreBackend = BackendRedis; c.RedisAddr = "" }, true},
		{"unknown backend", func(c *Config) { c.StoreBackend = "postgres" }, true},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
