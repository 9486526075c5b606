package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"exam-quiz-skill/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3_config "github.com/aws/aws-sdk-go-v2/config"
	s3_credentials "github.com/aws/aws-sdk-go-v2/credentials"
	s3_provider "github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the slice of the S3 API the downloader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3_provider.GetObjectInput, optFns ...func(*s3_provider.Options)) (*s3_provider.GetObjectOutput, error)
}

// GetClient builds a path-style client for S3 or any S3-compatible store
// (MinIO in development) from config.Cfg.S3.
func GetClient(ctx context.Context) (*s3_provider.Client, error) {
	s3cfg := config.Cfg.S3
	region := s3cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*s3_config.LoadOptions) error{
		s3_config.WithRegion(region),
	}
	if s3cfg.AccessKey != "" && s3cfg.SecretKey != "" {
		opts = append(opts, s3_config.WithCredentialsProvider(
			s3_credentials.NewStaticCredentialsProvider(
				s3cfg.AccessKey,
				s3cfg.SecretKey,
				"",
			),
		))
	}

	cfg, err := s3_config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	endpoint := s3cfg.Endpoint
	client := s3_provider.NewFromConfig(cfg, func(o *s3_provider.Options) {
		o.UsePathStyle = true
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint) // e.g., http://localhost:9000
		}
	})
	return client, nil
}

// Download copies bucket/key into dst, replacing it atomically.
func Download(ctx context.Context, cli ObjectGetter, bucket, key, dst string) error {
	if strings.TrimSpace(bucket) == "" {
		return errors.New("s3: bucket is empty")
	}
	out, err := cli.GetObject(ctx, &s3_provider.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "download-*.tmp")
	if err != nil {
		return fmt.Errorf("tempfile: %w", err)
	}
	defer func() {
		tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, out.Body); err != nil {
		return fmt.Errorf("stream copy: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close tempfile: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("finalize file: %w", err)
	}
	return nil
}
