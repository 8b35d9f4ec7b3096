// internal/pkg/config/config.go
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingRequiredConfig is returned when a required value is empty or
// still carries a MISSING_ placeholder.
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// Config holds all application configuration
type Config struct {
	// Application
	App AppConfig

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Asynq
	Asynq AsynqConfig

	// AWS
	AWS AWSConfig

	// CSV import
	Import ImportConfig

	// Periodic jobs
	Schedule ScheduleConfig

	// Security
	Security SecurityConfig

	// Server
	Server ServerConfig

	// Metrics
	Metrics MetricsConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `required:"true"`
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	Debug       bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host               string `required:"true"`
	Port               string `required:"true"`
	User               string `required:"true"`
	Password           string
	Name               string `required:"true"`
	SSLMode            string
	MaxConnections     int32
	MinConnections     int32
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	HealthCheckPeriod  time.Duration
	ConnectTimeout     time.Duration
	StatementCacheMode string
	EnableQueryLogging bool
	MigrationPath      string
	AutoMigrate        bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host            string `required:"true"`
	Port            string `required:"true"`
	Password        string
	DB              int
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PoolSize        int
	MinIdleConns    int
	MaxConnAge      time.Duration
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	Namespace       string
	CacheEnabled    bool
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// AsynqConfig holds Asynq configuration
type AsynqConfig struct {
	RedisDB             int
	Concurrency         int
	Queues              map[string]int // queue name -> priority
	StrictPriority      bool
	MaxRetry            int
	RetentionPeriod     time.Duration
	ShutdownTimeout     time.Duration
	HealthCheckInterval time.Duration
	DelayedTaskCheck    time.Duration
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string // For MinIO in development
	S3Prefix        string
	UsePathStyle    bool // For MinIO compatibility
	SecretsName     string
}

// ArchiveEnabled reports whether uploaded files should be copied to S3
func (a AWSConfig) ArchiveEnabled() bool {
	return a.S3Bucket != ""
}

// ImportConfig holds CSV upload configuration
type ImportConfig struct {
	MaxUploadSizeMB int
	Queue           string
	// ArchiveDir keeps uploads on disk when no S3 bucket is configured.
	ArchiveDir      string
}

// MaxUploadBytes returns the upload limit in bytes
func (i ImportConfig) MaxUploadBytes() int64 {
	return int64(i.MaxUploadSizeMB) * 1024 * 1024
}

// ScheduleConfig holds the periodic replenishment settings
type ScheduleConfig struct {
	Enabled          bool
	ReplenishCron    string
	Timezone         string
	ReplenishMinimum int
	Queue            string
}

// SecurityConfig holds security configuration
type SecurityConfig struct {
	JWTSecret         string
	JWTIssuer         string
	JWTExpiration     time.Duration
	AuthEnabled       bool
	RateLimitRequests int
	RateLimitDuration time.Duration
	AllowedOrigins    []string
	SecureHeaders     bool
	RequestIDHeader   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string `required:"true"`
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxHeaderBytes  int
	GracefulTimeout time.Duration
	TLSEnabled      bool
	TLSCertFile     string
	TLSKeyFile      string
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool
	// Port is used by the worker, which has no API server to mount /metrics on.
	Port string
}

// Load loads configuration from environment variables
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file outside production
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v, env)

	cfg := fromViper(v, env)

	if cfg.AWS.SecretsName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		sm, err := NewAWSSecretsManager(ctx, cfg.AWS.Region, cfg.AWS.SecretsName, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize secrets manager: %w", err)
		}
		if err := ApplySecrets(ctx, cfg, sm); err != nil {
			return nil, fmt.Errorf("failed to apply secrets: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func fromViper(v *viper.Viper, env string) *Config {
	return &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Environment: env,
			Version:     v.GetString("APP_VERSION"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			LogFormat:   v.GetString("LOG_FORMAT"),
			Debug:       v.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:               v.GetString("DB_HOST"),
			Port:               v.GetString("DB_PORT"),
			User:               v.GetString("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			Name:               v.GetString("DB_NAME"),
			SSLMode:            v.GetString("DB_SSL_MODE"),
			MaxConnections:     v.GetInt32("DB_MAX_CONNECTIONS"),
			MinConnections:     v.GetInt32("DB_MIN_CONNECTIONS"),
			MaxConnLifetime:    v.GetDuration("DB_CONNECTION_LIFETIME"),
			MaxConnIdleTime:    v.GetDuration("DB_IDLE_TIME"),
			HealthCheckPeriod:  v.GetDuration("DB_HEALTH_CHECK_PERIOD"),
			ConnectTimeout:     v.GetDuration("DB_CONNECT_TIMEOUT"),
			StatementCacheMode: v.GetString("DB_STATEMENT_CACHE_MODE"),
			EnableQueryLogging: v.GetBool("DB_QUERY_LOGGING"),
			MigrationPath:      v.GetString("DB_MIGRATION_PATH"),
			AutoMigrate:        v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:            v.GetString("REDIS_HOST"),
			Port:            v.GetString("REDIS_PORT"),
			Password:        v.GetString("REDIS_PASSWORD"),
			DB:              v.GetInt("REDIS_DB"),
			MaxRetries:      v.GetInt("REDIS_MAX_RETRIES"),
			MinRetryBackoff: v.GetDuration("REDIS_MIN_RETRY_BACKOFF"),
			MaxRetryBackoff: v.GetDuration("REDIS_MAX_RETRY_BACKOFF"),
			DialTimeout:     v.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:     v.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("REDIS_WRITE_TIMEOUT"),
			PoolSize:        v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns:    v.GetInt("REDIS_MIN_IDLE_CONNS"),
			MaxConnAge:      v.GetDuration("REDIS_MAX_CONN_AGE"),
			PoolTimeout:     v.GetDuration("REDIS_POOL_TIMEOUT"),
			IdleTimeout:     v.GetDuration("REDIS_IDLE_TIMEOUT"),
			Namespace:       v.GetString("REDIS_NAMESPACE"),
			CacheEnabled:    v.GetBool("REDIS_CACHE_ENABLED"),
		},
		Asynq: AsynqConfig{
			RedisDB:             v.GetInt("ASYNQ_REDIS_DB"),
			Concurrency:         v.GetInt("ASYNQ_CONCURRENCY"),
			Queues:              parseQueues(v.GetString("ASYNQ_QUEUES")),
			StrictPriority:      v.GetBool("ASYNQ_STRICT_PRIORITY"),
			MaxRetry:            v.GetInt("ASYNQ_MAX_RETRY"),
			RetentionPeriod:     v.GetDuration("ASYNQ_RETENTION"),
			ShutdownTimeout:     v.GetDuration("ASYNQ_SHUTDOWN_TIMEOUT"),
			HealthCheckInterval: v.GetDuration("ASYNQ_HEALTH_CHECK_INTERVAL"),
			DelayedTaskCheck:    v.GetDuration("ASYNQ_DELAYED_TASK_CHECK"),
		},
		AWS: AWSConfig{
			Region:          v.GetString("AWS_REGION"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			S3Bucket:        v.GetString("AWS_S3_BUCKET"),
			S3Endpoint:      v.GetString("AWS_S3_ENDPOINT"),
			S3Prefix:        v.GetString("AWS_S3_PREFIX"),
			UsePathStyle:    v.GetBool("AWS_S3_PATH_STYLE"),
			SecretsName:     v.GetString("AWS_SECRETS_NAME"),
		},
		Import: ImportConfig{
			MaxUploadSizeMB: v.GetInt("IMPORT_MAX_UPLOAD_MB"),
			Queue:           v.GetString("IMPORT_QUEUE"),
			ArchiveDir:      v.GetString("IMPORT_ARCHIVE_DIR"),
		},
		Schedule: ScheduleConfig{
			Enabled:          v.GetBool("SCHEDULE_ENABLED"),
			ReplenishCron:    v.GetString("SCHEDULE_REPLENISH_CRON"),
			Timezone:         v.GetString("SCHEDULE_TIMEZONE"),
			ReplenishMinimum: v.GetInt("SCHEDULE_REPLENISH_MINIMUM"),
			Queue:            v.GetString("SCHEDULE_QUEUE"),
		},
		Security: SecurityConfig{
			JWTSecret:         v.GetString("JWT_SECRET"),
			JWTIssuer:         v.GetString("JWT_ISSUER"),
			JWTExpiration:     v.GetDuration("JWT_EXPIRATION"),
			AuthEnabled:       v.GetBool("AUTH_ENABLED"),
			RateLimitRequests: v.GetInt("RATE_LIMIT_REQUESTS"),
			RateLimitDuration: v.GetDuration("RATE_LIMIT_DURATION"),
			AllowedOrigins:    splitList(v.GetString("ALLOWED_ORIGINS")),
			SecureHeaders:     v.GetBool("SECURE_HEADERS"),
			RequestIDHeader:   v.GetString("REQUEST_ID_HEADER"),
		},
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetString("SERVER_PORT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("SERVER_IDLE_TIMEOUT"),
			MaxHeaderBytes:  v.GetInt("SERVER_MAX_HEADER_BYTES"),
			GracefulTimeout: v.GetDuration("SERVER_GRACEFUL_TIMEOUT"),
			TLSEnabled:      v.GetBool("TLS_ENABLED"),
			TLSCertFile:     v.GetString("TLS_CERT_FILE"),
			TLSKeyFile:      v.GetString("TLS_KEY_FILE"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Port:    v.GetString("METRICS_PORT"),
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validators := []interface{ Validate(*Config) error }{&BasicValidator{}}
	if c.IsProduction() {
		validators = append(validators, &ProductionValidator{})
	}
	for _, v := range validators {
		if err := v.Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// GetServerAddress returns the formatted server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

// Helper functions

func setDefaults(v *viper.Viper, env string) {
	dev := env == "development" || env == "local"

	v.SetDefault("APP_NAME", "parts-api")
	v.SetDefault("APP_VERSION", "dev")
	v.SetDefault("LOG_LEVEL", "debug")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("APP_DEBUG", dev)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "parts")
	v.SetDefault("DB_PASSWORD", "parts_dev")
	v.SetDefault("DB_NAME", "parts_inventory")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNECTIONS", 25)
	v.SetDefault("DB_MIN_CONNECTIONS", 5)
	v.SetDefault("DB_CONNECTION_LIFETIME", time.Hour)
	v.SetDefault("DB_IDLE_TIME", 30*time.Minute)
	v.SetDefault("DB_HEALTH_CHECK_PERIOD", time.Minute)
	v.SetDefault("DB_CONNECT_TIMEOUT", 10*time.Second)
	v.SetDefault("DB_STATEMENT_CACHE_MODE", "describe")
	v.SetDefault("DB_QUERY_LOGGING", dev)
	v.SetDefault("DB_MIGRATION_PATH", "")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond)
	v.SetDefault("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond)
	v.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
	v.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
	v.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 2)
	v.SetDefault("REDIS_MAX_CONN_AGE", 0)
	v.SetDefault("REDIS_POOL_TIMEOUT", 4*time.Second)
	v.SetDefault("REDIS_IDLE_TIMEOUT", 5*time.Minute)
	v.SetDefault("REDIS_NAMESPACE", "parts")
	v.SetDefault("REDIS_CACHE_ENABLED", true)

	v.SetDefault("ASYNQ_REDIS_DB", 0)
	v.SetDefault("ASYNQ_CONCURRENCY", 10)
	v.SetDefault("ASYNQ_QUEUES", "critical:6,default:3,low:1")
	v.SetDefault("ASYNQ_STRICT_PRIORITY", false)
	v.SetDefault("ASYNQ_MAX_RETRY", 3)
	v.SetDefault("ASYNQ_RETENTION", 24*time.Hour)
	v.SetDefault("ASYNQ_SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("ASYNQ_HEALTH_CHECK_INTERVAL", 30*time.Second)
	v.SetDefault("ASYNQ_DELAYED_TASK_CHECK", 5*time.Second)

	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("AWS_S3_BUCKET", "")
	v.SetDefault("AWS_S3_ENDPOINT", "")
	v.SetDefault("AWS_S3_PREFIX", "imports")
	v.SetDefault("AWS_S3_PATH_STYLE", dev)
	v.SetDefault("AWS_SECRETS_NAME", "")

	v.SetDefault("IMPORT_MAX_UPLOAD_MB", 10)
	v.SetDefault("IMPORT_QUEUE", "default")
	v.SetDefault("IMPORT_ARCHIVE_DIR", "")

	v.SetDefault("SCHEDULE_ENABLED", true)
	v.SetDefault("SCHEDULE_REPLENISH_CRON", "0 0 * * *")
	v.SetDefault("SCHEDULE_TIMEZONE", "America/Fortaleza")
	v.SetDefault("SCHEDULE_REPLENISH_MINIMUM", 10)
	v.SetDefault("SCHEDULE_QUEUE", "default")

	v.SetDefault("JWT_SECRET", generateDefaultSecret(env))
	v.SetDefault("JWT_ISSUER", "parts-api")
	v.SetDefault("JWT_EXPIRATION", 24*time.Hour)
	v.SetDefault("AUTH_ENABLED", true)
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", time.Minute)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("SECURE_HEADERS", env == "production")
	v.SetDefault("REQUEST_ID_HEADER", "X-Request-ID")

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("SERVER_MAX_HEADER_BYTES", 1<<20) // 1 MB
	v.SetDefault("SERVER_GRACEFUL_TIMEOUT", 30*time.Second)
	v.SetDefault("TLS_ENABLED", false)
	v.SetDefault("TLS_CERT_FILE", "")
	v.SetDefault("TLS_KEY_FILE", "")

	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_PORT", "9091")
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseQueues(queuesStr string) map[string]int {
	queues := make(map[string]int)
	for _, pair := range splitList(queuesStr) {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			name := strings.TrimSpace(parts[0])
			priority, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err == nil && name != "" && priority > 0 {
				queues[name] = priority
			}
		}
	}
	if len(queues) == 0 {
		queues["default"] = 1
	}
	return queues
}

func generateDefaultSecret(env string) string {
	if env == "production" {
		return "" // Force error in production if not set
	}
	return "development-secret-change-in-production"
}
