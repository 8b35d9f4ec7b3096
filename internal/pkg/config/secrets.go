// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsProvider resolves secret values by key
type SecretsProvider interface {
	GetSecrets(ctx context.Context, keys []string) (map[string]string, error)
}

// secretFields maps each overlay key onto the setting it replaces.
var secretFields = map[string]func(*Config) *string{
	"DB_PASSWORD":    func(c *Config) *string { return &c.Database.Password },
	"REDIS_PASSWORD": func(c *Config) *string { return &c.Redis.Password },
	"JWT_SECRET":     func(c *Config) *string { return &c.Security.JWTSecret },
}

func secretKeys() []string {
	keys := make([]string, 0, len(secretFields))
	for k := range secretFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplySecrets overwrites the sensitive fields of cfg with the non-empty
// values sp returns. Keys sp does not know keep their current value.
func ApplySecrets(ctx context.Context, cfg *Config, sp SecretsProvider) error {
	secrets, err := sp.GetSecrets(ctx, secretKeys())
	if err != nil {
		return err
	}
	for key, field := range secretFields {
		if v := secrets[key]; v != "" {
			*field(cfg) = v
		}
	}
	return nil
}

// secretsManagerAPI is the subset of the Secrets Manager client we call.
type secretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsManager reads a JSON object of key/value pairs stored as one
// Secrets Manager secret. The secret is fetched once per process.
type AWSSecretsManager struct {
	client     secretsManagerAPI
	secretName string
	logger     *slog.Logger

	mu     sync.Mutex
	values map[string]string
}

var _ SecretsProvider = (*AWSSecretsManager)(nil)

// NewAWSSecretsManager creates a Secrets Manager client for region
func NewAWSSecretsManager(ctx context.Context, region, secretName string, logger *slog.Logger) (*AWSSecretsManager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newAWSSecretsManager(secretsmanager.NewFromConfig(cfg), secretName, logger), nil
}

func newAWSSecretsManager(client secretsManagerAPI, secretName string, logger *slog.Logger) *AWSSecretsManager {
	return &AWSSecretsManager{
		client:     client,
		secretName: secretName,
		logger:     logger.With(slog.String("component", "secrets")),
	}
}

// GetSecrets returns the requested keys present in the secret
func (sm *AWSSecretsManager) GetSecrets(ctx context.Context, keys []string) (map[string]string, error) {
	values, err := sm.load(ctx)
	if err != nil {
		return nil, err
	}

	found := make(map[string]string, len(keys))
	for _, key := range keys {
		if v, ok := values[key]; ok {
			found[key] = v
			continue
		}
		sm.logger.DebugContext(ctx, "secret key not present", slog.String("key", key))
	}
	return found, nil
}

func (sm *AWSSecretsManager) load(ctx context.Context) (map[string]string, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.values != nil {
		return sm.values, nil
	}

	sm.logger.InfoContext(ctx, "fetching secrets from AWS Secrets Manager",
		slog.String("secret_name", sm.secretName))

	out, err := sm.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(sm.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret value: %w", err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", sm.secretName)
	}

	var values map[string]string
	if err := json.Unmarshal([]byte(*out.SecretString), &values); err != nil {
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}
	sm.values = values
	return values, nil
}
