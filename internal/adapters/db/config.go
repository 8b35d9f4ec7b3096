// internal/adapters/db/config.go
package db

import (
	"net"
	"net/url"
	"time"

	"github.com/ammerola/parts-be/internal/pkg/config"
)

// Config holds the connection pool settings
type Config struct {
	Host               string
	Port               string
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int32
	MinConnections     int32
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	HealthCheckPeriod  time.Duration
	ConnectTimeout     time.Duration
	StatementCacheMode string
	EnableQueryLogging bool
}

// DSN returns a postgres URL for the configuration, as used by golang-migrate.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     c.Database,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// ConfigFromSettings maps the application database settings onto the pool config.
func ConfigFromSettings(c config.DatabaseConfig) *Config {
	return &Config{
		Host:               c.Host,
		Port:               c.Port,
		User:               c.User,
		Password:           c.Password,
		Database:           c.Name,
		SSLMode:            c.SSLMode,
		MaxConnections:     c.MaxConnections,
		MinConnections:     c.MinConnections,
		MaxConnLifetime:    c.MaxConnLifetime,
		MaxConnIdleTime:    c.MaxConnIdleTime,
		HealthCheckPeriod:  c.HealthCheckPeriod,
		ConnectTimeout:     c.ConnectTimeout,
		StatementCacheMode: c.StatementCacheMode,
		EnableQueryLogging: c.EnableQueryLogging,
	}
}

// MigrationConfigFromSettings builds the migration config for the same database.
func MigrationConfigFromSettings(c config.DatabaseConfig) *MigrationConfig {
	return &MigrationConfig{
		DatabaseURL: ConfigFromSettings(c).DSN(),
		SourcePath:  c.MigrationPath,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}
}
