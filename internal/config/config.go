package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cfg is the global configuration loaded at startup.
var Cfg Config

// Config holds all application configuration.
type Config struct {
	// Server
	Port            string
	BaseURL         string
	Environment     string
	H2CEnabled      bool
	ShutdownTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Sentry
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string

	// Rate limiter
	RateLimitRPS   int
	RateLimitBurst int

	// Gzip
	GzipEnabled bool

	// Metrics
	MetricsEnabled bool

	// Fiscal tables
	TabelleDir  string
	AnnoFiscale int

	// Content and state
	GuideDir    string
	CounterFile string
	MaxUploadMB int
}

// Load reads .env (if present) and populates Cfg from environment variables.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables")
	}

	Cfg = Config{
		Port:            envOr("PORT", "8080"),
		BaseURL:         envOr("BASE_URL", "http://localhost:8080"),
		Environment:     envOr("APP_ENV", "production"),
		H2CEnabled:      envBool("H2C_ENABLED", false),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel:  strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(envOr("LOG_FORMAT", "json")),

		SentryDSN:         os.Getenv("SENTRY_DSN"),
		SentryEnvironment: envOr("SENTRY_ENVIRONMENT", "production"),
		SentryRelease:     envOr("SENTRY_RELEASE", "stipendionetto@1.0.0"),

		RateLimitRPS:   envInt("RATE_LIMIT_RPS", 20),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 40),

		GzipEnabled: envBool("GZIP_ENABLED", true),

		MetricsEnabled: envBool("METRICS_ENABLED", true),

		TabelleDir:  envOr("TABELLE_DIR", "data/tabelle"),
		AnnoFiscale: envInt("ANNO_FISCALE", 0),

		GuideDir:    envOr("GUIDE_DIR", "content/guide"),
		CounterFile: envOr("COUNTER_FILE", "counter.json"),
		MaxUploadMB: envInt("MAX_UPLOAD_MB", 5),
	}

	log.Printf("config: loaded (port=%s, env=%s, h2c=%v, metrics=%v, anno=%s)",
		Cfg.Port, Cfg.Environment, Cfg.H2CEnabled, Cfg.MetricsEnabled, annoLabel(Cfg.AnnoFiscale))
}

// Validate reports configuration values the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("PORT non numerica: %q", c.Port))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS e RATE_LIMIT_BURST devono essere positivi"))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB deve essere positivo"))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT sconosciuto: %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

func annoLabel(anno int) string {
	if anno == 0 {
		return "(più recente)"
	}
	return strconv.Itoa(anno)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
