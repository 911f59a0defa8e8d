package storage

import (
	"bytes"
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	appintegration "github.com/shopbridge/backend/internal/application/integration"
)

// Ensure S3ObjectStorage implements the integration image store port
var _ appintegration.ImageStore = (*S3ObjectStorage)(nil)

// Put uploads an image payload directly, bypassing the presign flow: imported
// product images arrive server side, not from a browser. Returns the storage
// key on success.
func (s *S3ObjectStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	if len(data) == 0 {
		return "", errors.New("payload is empty")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("Failed to upload image",
			zap.String("key", key),
			zap.Error(err))
		return "", err
	}

	s.logger.Debug("Uploaded image",
		zap.String("key", key),
		zap.Int("size", len(data)))
	return key, nil
}
