package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Redis     RedisConfig
	Store     StoreConfig
	Logger    LoggerConfig
	Twilio    TwilioConfig
	Coverage  CoverageConfig
	Responder ResponderConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	WebhookPath           string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// StoreConfig selects where shift requests live.
type StoreConfig struct {
	Backend string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// TwilioConfig holds the messaging account. Empty credentials switch outbound
// delivery to log-only.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	Channel    string
}

// Enabled reports whether real deliveries can be made.
func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

// CoverageConfig tunes the coverage-request flow.
type CoverageConfig struct {
	NotifyDelayMillis          int
	NotifyReporterOnResolution bool
}

// NotifyDelay returns the gap between replying to the reporter and messaging the responder.
func (c CoverageConfig) NotifyDelay() time.Duration {
	if c.NotifyDelayMillis <= 0 {
		return 0
	}
	return time.Duration(c.NotifyDelayMillis) * time.Millisecond
}

// ResponderConfig lists who can be asked to cover, in order of preference.
type ResponderConfig struct {
	Numbers    []string
	RosterFile string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "shift-coverage-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			WebhookPath:           getEnv("WEBHOOK_PATH", "/whatsapp-webhook"),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:  os.Getenv("REDIS_PASSWORD"),
			DB:        redisDB,
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "shiftcover:"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getEnv("STORE_BACKEND", StoreBackendMemory)),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
			Channel:    strings.ToLower(getEnv("TWILIO_CHANNEL", "whatsapp")),
		},
		Coverage: CoverageConfig{
			NotifyDelayMillis:          getEnvAsInt("NOTIFY_DELAY_MS", 2000),
			NotifyReporterOnResolution: getEnvAsBool("NOTIFY_REPORTER_ON_RESOLUTION", false),
		},
		Responder: ResponderConfig{
			Numbers:    getEnvAsList("RESPONDER_NUMBERS"),
			RosterFile: os.Getenv("ROSTER_FILE"),
		},
	}

	if cfg.Store.Backend != StoreBackendMemory && cfg.Store.Backend != StoreBackendRedis {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: want %q or %q", cfg.Store.Backend, StoreBackendMemory, StoreBackendRedis)
	}
	if cfg.Twilio.Channel != "whatsapp" && cfg.Twilio.Channel != "sms" {
		return nil, fmt.Errorf("invalid TWILIO_CHANNEL %q: want whatsapp or sms", cfg.Twilio.Channel)
	}
	if !strings.HasPrefix(cfg.App.WebhookPath, "/") {
		return nil, fmt.Errorf("invalid WEBHOOK_PATH %q: must start with /", cfg.App.WebhookPath)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
