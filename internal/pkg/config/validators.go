// internal/pkg/config/validators.go
package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata"
)

// BasicValidator performs basic configuration validation
type BasicValidator struct{}

// Validate performs basic validation
func (v *BasicValidator) Validate(cfg *Config) error {
	// Validate required fields using reflection
	if err := validateRequiredFields(cfg); err != nil {
		return err
	}

	// Validate numeric ranges
	if cfg.Database.MaxConnections < cfg.Database.MinConnections {
		return fmt.Errorf("database max_connections must be >= min_connections")
	}

	if cfg.Redis.PoolSize <= 0 {
		return fmt.Errorf("redis pool_size must be positive")
	}

	if cfg.Security.RateLimitRequests <= 0 {
		return fmt.Errorf("rate_limit_requests must be positive")
	}

	if cfg.Import.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("import max_upload_mb must be positive")
	}

	if _, ok := cfg.Asynq.Queues[cfg.Import.Queue]; !ok {
		return fmt.Errorf("import queue %q is not served by asynq queues", cfg.Import.Queue)
	}

	if _, ok := cfg.Asynq.Queues[cfg.Schedule.Queue]; !ok {
		return fmt.Errorf("replenish queue %q is not served by asynq queues", cfg.Schedule.Queue)
	}

	if cfg.Schedule.ReplenishMinimum < 0 {
		return fmt.Errorf("schedule replenish_minimum must not be negative")
	}

	if cfg.Schedule.Enabled {
		if strings.TrimSpace(cfg.Schedule.ReplenishCron) == "" {
			return fmt.Errorf("%w: schedule replenish_cron", ErrMissingRequiredConfig)
		}
		if _, err := time.LoadLocation(cfg.Schedule.Timezone); err != nil {
			return fmt.Errorf("schedule timezone %q is invalid: %w", cfg.Schedule.Timezone, err)
		}
	}

	if cfg.Security.AuthEnabled && cfg.Security.JWTSecret == "" {
		return fmt.Errorf("%w: JWT secret", ErrMissingRequiredConfig)
	}

	return nil
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	// Check for placeholder values
	if strings.Contains(cfg.Database.Password, "MISSING_") {
		return fmt.Errorf("%w: database password", ErrMissingRequiredConfig)
	}

	if strings.Contains(cfg.Security.JWTSecret, "MISSING_") {
		return fmt.Errorf("%w: JWT secret", ErrMissingRequiredConfig)
	}

	// Ensure secure defaults in production
	if cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("database SSL must be enabled in production")
	}

	if !cfg.Security.AuthEnabled {
		return fmt.Errorf("authentication must be enabled in production")
	}

	if len(cfg.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if cfg.Security.JWTSecret == "development-secret-change-in-production" {
		return fmt.Errorf("default JWT secret cannot be used in production")
	}

	for _, origin := range cfg.Security.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("wildcard origin (*) not allowed in production")
		}
	}

	// Ensure proper TLS configuration
	if cfg.Server.TLSEnabled {
		if cfg.Server.TLSCertFile == "" || cfg.Server.TLSKeyFile == "" {
			return fmt.Errorf("TLS cert and key files must be provided when TLS is enabled")
		}
	}

	return nil
}

// validateRequiredFields reports every field tagged required:"true" that is
// empty or still holds a MISSING_ placeholder, by its dotted path.
func validateRequiredFields(cfg *Config) error {
	var missing []string
	collectMissing(reflect.ValueOf(cfg).Elem(), "", &missing)
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, strings.Join(missing, ", "))
}

func collectMissing(v reflect.Value, prefix string, missing *[]string) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field, meta := v.Field(i), t.Field(i)
		path := meta.Name
		if prefix != "" {
			path = prefix + "." + meta.Name
		}

		if meta.Tag.Get("required") == "true" && unset(field) {
			*missing = append(*missing, path)
		}
		if field.Kind() == reflect.Struct && meta.Type.PkgPath() == t.PkgPath() {
			collectMissing(field, path, missing)
		}
	}
}

func unset(v reflect.Value) bool {
	if v.Kind() == reflect.String {
		return strings.TrimSpace(v.String()) == "" || strings.HasPrefix(v.String(), "MISSING_")
	}
	return v.IsZero()
}
