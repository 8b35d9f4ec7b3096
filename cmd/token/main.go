// cmd/token/main.go
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ammerola/parts-be/internal/pkg/auth"
	"github.com/ammerola/parts-be/internal/pkg/config"
	"github.com/ammerola/parts-be/internal/pkg/logger"
)

// token prints a signed API token using the configured JWT settings.
func main() {
	var (
		subject = flag.String("sub", "", "Token subject (user name)")
		role    = flag.String("role", auth.RoleReader, "Role: admin or reader")
		ttl     = flag.Duration("ttl", 0, "Token lifetime (defaults to JWT_EXPIRATION)")
	)
	flag.Parse()

	log := logger.SetupLogger("warn", "text", os.Getenv("APP_ENV"))

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "usage: token -sub <name> [-role admin|reader] [-ttl 24h]")
		os.Exit(2)
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	lifetime := cfg.Security.JWTExpiration
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, lifetime).Issue(*subject, *role)
	if err != nil {
		log.Error("failed to issue token", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", time.Now().Add(lifetime).UTC().Format(time.RFC3339))
}
