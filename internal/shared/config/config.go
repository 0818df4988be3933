package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Transition submitter modes
const (
	SubmitterHTTP     = "http"
	SubmitterRabbitMQ = "rabbitmq"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Backend   BackendConfig
	Submitter SubmitterConfig
	Redis     RedisConfig
	Scheduler SchedulerConfig
	TLS       TLSConfig
	Firebase  FirebaseConfig
	Telemetry TelemetryConfig
	Log       LogConfig
	Display   DisplayConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	AllowedHosts   []string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
}

// BackendConfig points at the wallet backend's admin API
type BackendConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

type SubmitterConfig struct {
	Mode        string
	RabbitMQURL string
	Exchange    string
}

// RedisConfig enables the double-submit guard when URL is set
type RedisConfig struct {
	URL          string
	Prefix       string
	DedupeWindow time.Duration
}

type SchedulerConfig struct {
	Enabled     bool
	WorkerCount int
	QueueSize   int
	JobDelay    time.Duration
	BacklogCron string
}

type TLSConfig struct {
	Enabled      bool
	CertPath     string
	KeyPath      string
	RedirectHTTP bool
}

// FirebaseConfig enables push notifications when CredentialsFile is set.
// MessagesFile optionally overrides the built-in push texts.
type FirebaseConfig struct {
	CredentialsFile string
	MessagesFile    string
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	Environment  string
	OTLPEndpoint string
	MetricsPort  string
}

type LogConfig struct {
	Level  string
	Format string
}

// DisplayConfig controls how records are presented
type DisplayConfig struct {
	Location  *time.Location
	ListLimit int
}

var defaults = map[string]any{
	"PORT":                   "8080",
	"HOST":                   "0.0.0.0",
	"DB_HOST":                "localhost",
	"DB_PORT":                "5432",
	"DB_USER":                "wallet",
	"DB_NAME":                "wallet",
	"DB_SSLMODE":             "disable",
	"DB_MAX_OPEN_CONNS":      "25",
	"BACKEND_URL":            "http://localhost:3000/api",
	"BACKEND_TIMEOUT":        "15s",
	"TRANSITION_SUBMITTER":   SubmitterHTTP,
	"RABBITMQ_EXCHANGE":      "wallet_admin_events",
	"REDIS_PREFIX":           "walletadmin:dedupe",
	"DEDUPE_WINDOW":          "30s",
	"SCHEDULER_ENABLED":      "true",
	"SCHEDULER_WORKERS":      "5",
	"SCHEDULER_QUEUE_SIZE":   "100",
	"SCHEDULER_JOB_DELAY":    "0s",
	"SCHEDULER_BACKLOG_CRON": "*/15 * * * *",
	"OTEL_ENABLED":           "false",
	"OTEL_SERVICE_NAME":      "walletadmin-api",
	"OTEL_ENVIRONMENT":       "development",
	"OTEL_EXPORTER_ENDPOINT": "localhost:4317",
	"METRICS_PORT":           "9090",
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "json",
	"DISPLAY_TIMEZONE":       "Local",
	"LIST_LIMIT":             "500",
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	e := env{v: v}

	dbPort := e.int("DB_PORT")
	dbMaxOpen := e.int("DB_MAX_OPEN_CONNS")
	backendTimeout := e.duration("BACKEND_TIMEOUT")
	dedupeWindow := e.duration("DEDUPE_WINDOW")
	workers := e.int("SCHEDULER_WORKERS")
	queueSize := e.int("SCHEDULER_QUEUE_SIZE")
	jobDelay := e.duration("SCHEDULER_JOB_DELAY")
	listLimit := e.int("LIST_LIMIT")
	if e.err != nil {
		return nil, e.err
	}

	loc, err := time.LoadLocation(e.string("DISPLAY_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           e.string("PORT"),
			Host:           e.string("HOST"),
			AllowedHosts:   e.list("ALLOWED_HOSTS"),
			AllowedOrigins: e.list("ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:         e.string("DB_HOST"),
			Port:         dbPort,
			User:         e.string("DB_USER"),
			Password:     e.string("DB_PASSWORD"),
			DBName:       e.string("DB_NAME"),
			SSLMode:      e.string("DB_SSLMODE"),
			MaxOpenConns: dbMaxOpen,
		},
		Backend: BackendConfig{
			BaseURL:  e.string("BACKEND_URL"),
			APIToken: e.string("BACKEND_API_TOKEN"),
			Timeout:  backendTimeout,
		},
		Submitter: SubmitterConfig{
			Mode:        strings.ToLower(e.string("TRANSITION_SUBMITTER")),
			RabbitMQURL: e.string("RABBITMQ_URL"),
			Exchange:    e.string("RABBITMQ_EXCHANGE"),
		},
		Redis: RedisConfig{
			URL:          e.string("REDIS_URL"),
			Prefix:       e.string("REDIS_PREFIX"),
			DedupeWindow: dedupeWindow,
		},
		Scheduler: SchedulerConfig{
			Enabled:     e.bool("SCHEDULER_ENABLED", true),
			WorkerCount: workers,
			QueueSize:   queueSize,
			JobDelay:    jobDelay,
			BacklogCron: e.string("SCHEDULER_BACKLOG_CRON"),
		},
		TLS: TLSConfig{
			Enabled:      e.bool("TLS_ENABLED", false),
			CertPath:     e.string("TLS_CERT_PATH"),
			KeyPath:      e.string("TLS_KEY_PATH"),
			RedirectHTTP: e.bool("TLS_REDIRECT_HTTP", false),
		},
		Firebase: FirebaseConfig{
			CredentialsFile: e.string("FIREBASE_CREDENTIALS_FILE"),
			MessagesFile:    e.string("PUSH_MESSAGES_FILE"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      e.bool("OTEL_ENABLED", false),
			ServiceName:  e.string("OTEL_SERVICE_NAME"),
			Environment:  e.string("OTEL_ENVIRONMENT"),
			OTLPEndpoint: e.string("OTEL_EXPORTER_ENDPOINT"),
			MetricsPort:  e.string("METRICS_PORT"),
		},
		Log: LogConfig{
			Level:  e.string("LOG_LEVEL"),
			Format: strings.ToLower(e.string("LOG_FORMAT")),
		},
		Display: DisplayConfig{
			Location:  loc,
			ListLimit: listLimit,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Submitter.Mode {
	case SubmitterHTTP:
		if c.Backend.BaseURL == "" {
			return fmt.Errorf("BACKEND_URL is required when TRANSITION_SUBMITTER=http")
		}
	case SubmitterRabbitMQ:
		if c.Submitter.RabbitMQURL == "" {
			return fmt.Errorf("RABBITMQ_URL is required when TRANSITION_SUBMITTER=rabbitmq")
		}
	default:
		return fmt.Errorf("TRANSITION_SUBMITTER must be %q or %q, got %q", SubmitterHTTP, SubmitterRabbitMQ, c.Submitter.Mode)
	}

	if c.Scheduler.WorkerCount <= 0 {
		return fmt.Errorf("SCHEDULER_WORKERS must be positive")
	}
	if c.Scheduler.QueueSize <= 0 {
		return fmt.Errorf("SCHEDULER_QUEUE_SIZE must be positive")
	}
	if c.Display.ListLimit <= 0 {
		return fmt.Errorf("LIST_LIMIT must be positive")
	}

	if c.TLS.Enabled {
		if c.TLS.CertPath == "" {
			return fmt.Errorf("TLS_CERT_PATH is required when TLS_ENABLED=true")
		}
		if c.TLS.KeyPath == "" {
			return fmt.Errorf("TLS_KEY_PATH is required when TLS_ENABLED=true")
		}
	}
	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// env reads typed values from viper and keeps the first parse error.
type env struct {
	v   *viper.Viper
	err error
}

func (e *env) string(key string) string {
	return strings.TrimSpace(e.v.GetString(key))
}

func (e *env) int(key string) int {
	n, err := strconv.Atoi(e.string(key))
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return n
}

func (e *env) duration(key string) time.Duration {
	d, err := time.ParseDuration(e.string(key))
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return d
}

// bool accepts true/false, 1/0 and yes/no; anything else keeps the default.
func (e *env) bool(key string, defaultValue bool) bool {
	switch strings.ToLower(e.string(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

func (e *env) list(key string) []string {
	var out []string
	for _, item := range strings.Split(e.string(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
