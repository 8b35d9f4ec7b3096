// internal/adapters/storage/s3.go
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/ammerola/parts-be/internal/core/ports"
)

// S3Config holds S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // For MinIO/LocalStack
	UsePathStyle    bool   // For MinIO/LocalStack
}

// uploader is the part of *manager.Uploader the archive uses.
type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Archive keeps uploaded CSV files in an S3 bucket
type S3Archive struct {
	uploader uploader
	bucket   string
	prefix   string
	now      func() time.Time
	logger   *slog.Logger
}

var _ ports.FileArchive = (*S3Archive)(nil)

// NewS3Archive creates the S3 client, makes sure the bucket exists and
// returns an archive writing into it.
func NewS3Archive(ctx context.Context, cfg *S3Config, logger *slog.Logger) (*S3Archive, error) {
	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	if err := ensureBucket(ctx, client, cfg.Bucket, cfg.Region, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket: %w", err)
	}

	logger.Info("S3 archive initialized",
		slog.String("bucket", cfg.Bucket),
		slog.String("region", cfg.Region))

	return newS3Archive(manager.NewUploader(client), cfg.Bucket, cfg.Prefix, logger), nil
}

func newS3Archive(up uploader, bucket, prefix string, logger *slog.Logger) *S3Archive {
	return &S3Archive{
		uploader: up,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		now:      time.Now,
		logger:   logger.With(slog.String("storage", "s3")),
	}
}

// buildAWSConfig builds AWS configuration
func buildAWSConfig(ctx context.Context, cfg *S3Config) (aws.Config, error) {
	// Use custom credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		return config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretAccessKey,
					"",
				),
			),
		)
	}

	// Otherwise use default credential chain
	return config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
}

func ensureBucket(ctx context.Context, client *s3.Client, bucket, region string, logger *slog.Logger) error {
	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err == nil {
		return nil
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	// us-east-1 rejects an explicit location constraint
	if region != "" && region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}

	if _, createErr := client.CreateBucket(ctx, input); createErr != nil {
		return fmt.Errorf("bucket %s does not exist and could not be created: %w", bucket, createErr)
	}

	logger.Info("created S3 bucket", slog.String("bucket", bucket))
	return nil
}

// Archive uploads data and returns the object key
func (s *S3Archive) Archive(ctx context.Context, name string, data []byte) (string, error) {
	now := s.now().UTC()
	key := archiveKey(s.prefix, now, name)

	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
		Metadata: map[string]string{
			"original-name": name,
			"uploaded-at":   now.Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	s.logger.InfoContext(ctx, "file archived",
		slog.String("key", key),
		slog.String("location", result.Location),
		slog.Int("size", len(data)))

	return key, nil
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// archiveKey builds prefix/YYYY/MM/DD/<uuid>-<name>.
func archiveKey(prefix string, at time.Time, name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.Trim(unsafeNameChars.ReplaceAllString(base, "_"), "._")
	if base == "" {
		base = "upload.csv"
	}
	object := uuid.New().String() + "-" + base
	return path.Join(prefix, at.Format("2006/01/02"), object)
}
