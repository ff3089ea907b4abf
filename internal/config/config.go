package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// CORS holds the browser-origin allow-list.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Session holds identity-cookie settings.
type Session struct {
	MaxAgeSeconds int `yaml:"max_age_seconds"`
}

// Config is the process configuration. Values come from an optional YAML file
// (CONFIG_PATH, default config.yaml) with environment variables taking
// precedence over anything in the file.
type Config struct {
	Port                  string  `yaml:"port"`
	DatabaseURL           string  `yaml:"database_url"`
	RequestTimeoutSeconds int     `yaml:"request_timeout_seconds"`
	CORS                  CORS    `yaml:"cors"`
	Session               Session `yaml:"session"`
}

// Load reads the YAML config file if present, applies env overrides, then
// fills defaults. A missing file is not an error; a malformed one is fatal.
func Load() Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Failed to parse %s: %v", path, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = splitOrigins(origins)
	}

	if cfg.Port == "" {
		cfg.Port = "5050"
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = 15
	}
	if cfg.Session.MaxAgeSeconds <= 0 {
		cfg.Session.MaxAgeSeconds = 86400
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}

	return cfg
}

// RequestTimeout is the per-request deadline applied by the router.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func splitOrigins(s string) []string {
	var origins []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
