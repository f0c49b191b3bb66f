// Package s3 publishes output KMZ files to an S3-compatible bucket.
package s3

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
)

// ContentTypeKMZ is the registered media type for KMZ archives.
const ContentTypeKMZ = "application/vnd.google-earth.kmz"

// Config selects the bucket and endpoint. Empty credentials fall back to the
// default AWS credential chain (env, shared config, instance role).
type Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// ConfigFromSettings builds a Config from publish settings and the standard
// AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY environment variables.
func ConfigFromSettings(s domain.PublishSettings) Config {
	return Config{
		Bucket:    s.Bucket,
		Prefix:    s.Prefix,
		Region:    s.Region,
		Endpoint:  s.Endpoint,
		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}
}

// uploader is the subset of manager.Uploader used here.
type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Publisher implements driven.Publisher with the AWS SDK upload manager.
type Publisher struct {
	uploader uploader
	bucket   string
	prefix   string
}

var _ driven.Publisher = (*Publisher)(nil)

// New creates a Publisher. A custom endpoint switches to path-style
// addressing for MinIO and similar servers.
func New(ctx context.Context, cfg Config) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, domain.NewValidationError("publish.bucket", "bucket is required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return newPublisher(manager.NewUploader(client), cfg.Bucket, cfg.Prefix), nil
}

func newPublisher(u uploader, bucket, prefix string) *Publisher {
	return &Publisher{
		uploader: u,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
	}
}

// ObjectKey joins the configured prefix and key.
func (p *Publisher) ObjectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if p.prefix == "" {
		return key
	}
	return path.Join(p.prefix, key)
}

// Publish uploads the file at localPath and returns the object location.
func (p *Publisher) Publish(ctx context.Context, localPath, key string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer f.Close()

	objectKey := p.ObjectKey(key)
	result, err := p.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(objectKey),
		Body:        f,
		ContentType: aws.String(ContentTypeKMZ),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload: %w", err)
	}

	if result.Location != "" {
		return result.Location, nil
	}
	return fmt.Sprintf("s3://%s/%s", p.bucket, objectKey), nil
}
