// Package storage holds object storage implementations for receipt screenshots.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appescrow "github.com/escrowdesk/backend/internal/application/escrow"
	infraconfig "github.com/escrowdesk/backend/internal/infrastructure/config"
)

// Ensure S3ReceiptStorage satisfies the verification flow's storage needs
var _ appescrow.ReceiptStorage = (*S3ReceiptStorage)(nil)

// S3ReceiptStorage stores uploaded receipt screenshots in an S3-compatible
// bucket. Screenshots only live between upload and verification; Delete is
// called as soon as the verifier has seen the receipt.
type S3ReceiptStorage struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewS3ReceiptStorage creates a new S3ReceiptStorage from configuration.
// Works with AWS S3 and S3-compatible backends (MinIO etc.) via a custom
// endpoint and path-style addressing.
func NewS3ReceiptStorage(cfg *infraconfig.StorageConfig, logger *zap.Logger) (*S3ReceiptStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretAccessKey == "" {
		return nil, errors.New("storage secret key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &S3ReceiptStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup.
func (s *S3ReceiptStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating receipt screenshot bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Another instance may have created it first.
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// Upload stores a receipt screenshot and returns its object key
func (s *S3ReceiptStorage) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("screenshot data is required")
	}

	key := ReceiptObjectKey()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload screenshot: %w", err)
	}

	return key, nil
}

// Delete removes a receipt screenshot from storage
func (s *S3ReceiptStorage) Delete(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return errors.New("object key is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete screenshot: %w", err)
	}

	return nil
}

// ObjectExists checks whether a screenshot is still present
func (s *S3ReceiptStorage) ObjectExists(ctx context.Context, objectKey string) (bool, error) {
	if objectKey == "" {
		return false, errors.New("object key is required")
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var notFound *types.NotFound
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
			return false, nil
		}
		// Some S3-compatible services report not-found differently.
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "NoSuchKey") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check screenshot existence: %w", err)
	}

	return true, nil
}

// GetBucket returns the bucket name
func (s *S3ReceiptStorage) GetBucket() string {
	return s.bucket
}

// ReceiptObjectKey generates a fresh object key for a receipt screenshot,
// partitioned by upload date so stale objects are easy to sweep.
func ReceiptObjectKey() string {
	return fmt.Sprintf("receipts/%s/%s", time.Now().UTC().Format("2006-01-02"), uuid.New().String())
}
