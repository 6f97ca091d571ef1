package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config carries the fixed extraction constants alongside service settings.
// Components receive it explicitly; nothing reads the environment at
// extraction time.
type Config struct {
	Port string

	// Ollama generation
	OllamaURL       string
	OllamaModel     string
	GenerateTimeout time.Duration

	// Document acquisition
	FetchTimeout  time.Duration
	MaxFetchBytes int64

	// Extraction bounds
	ChunkSize  int // fragment size in runes handed to an extractor
	MaxPages   int // page-count ceiling scanned for front-matter
	PreviewLen int // diagnostic preview length in runes
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "4000"),

		OllamaURL:       envOr("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:     envOr("OLLAMA_MODEL", "llama2:latest"),
		GenerateTimeout: envDuration("GENERATE_TIMEOUT", 120*time.Second),

		FetchTimeout:  envDuration("FETCH_TIMEOUT", 30*time.Second),
		MaxFetchBytes: envInt64("MAX_FETCH_BYTES", 52428800), // 50MB

		ChunkSize:  envInt("CHUNK_SIZE", 3000),
		MaxPages:   envInt("MAX_PAGES", 3),
		PreviewLen: envInt("PREVIEW_LEN", 200),
	}

	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 120 * time.Second
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	if cfg.MaxFetchBytes <= 0 {
		cfg.MaxFetchBytes = 52428800
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 3000
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 3
	}
	if cfg.PreviewLen <= 0 {
		cfg.PreviewLen = 200
	}

	return cfg
}

func (c Config) Validate() error {
	if c.OllamaModel == "" {
		return fmt.Errorf("OLLAMA_MODEL is required")
	}
	u, err := url.Parse(c.OllamaURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("OLLAMA_URL %q is not a valid http(s) url", c.OllamaURL)
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
