package service

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/config"
)

var keySanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// StorageService persists uploaded documents in S3-compatible object
// storage. Uploads are write-only: nothing in the system reads them back.
type StorageService struct {
	client *minio.Client
	bucket string
}

func NewStorageService(cfg *config.StorageConfig) (*StorageService, error) {
	var creds *credentials.Credentials
	if cfg.AccessKey != "" {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	} else {
		// Ambient AWS credentials (env vars, shared config, task role)
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
			&credentials.IAM{},
		})
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &StorageService{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *StorageService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Upload writes the object under the given key with document metadata
// attached.
func (s *StorageService) Upload(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	return nil
}

// ObjectKey builds the storage key for an uploaded document:
// uploaded-docs/<sanitized-bank>/<year>/<form-type>/<filename>.
func ObjectKey(bankName string, year int, formType, filename string) string {
	sanitized := keySanitizer.ReplaceAllString(bankName, "_")
	return "uploaded-docs/" + sanitized + "/" + strconv.Itoa(year) + "/" + formType + "/" + filename
}
