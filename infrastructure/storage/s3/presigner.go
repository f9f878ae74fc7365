// Package s3 issues presigned URLs for video objects.
package s3

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// PresignAPI is the subset of *s3.PresignClient used here
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// BlobStore implements ports.BlobStore over one bucket
type BlobStore struct {
	presigner PresignAPI
	bucket    string
	logger    *zap.Logger
}

var _ ports.BlobStore = (*BlobStore)(nil)

// NewBlobStore creates a new BlobStore
func NewBlobStore(presigner PresignAPI, bucket string, logger *zap.Logger) *BlobStore {
	return &BlobStore{
		presigner: presigner,
		bucket:    bucket,
		logger:    logger,
	}
}

// PresignGet returns a download URL that serves the object with contentType
func (b *BlobStore) PresignGet(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	if err := b.check(key); err != nil {
		return "", err
	}
	input := &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ResponseContentType = aws.String(contentType)
	}

	req, err := b.presigner.PresignGetObject(ctx, input, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign get of %s: %w", key, err)
	}
	b.logger.Debug("Presigned playback URL",
		zap.String("key", key),
		zap.Duration("ttl", ttl),
	)
	return req.URL, nil
}

// PresignPut returns an upload URL bound to contentType
func (b *BlobStore) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	if err := b.check(key); err != nil {
		return "", err
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	req, err := b.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign put of %s: %w", key, err)
	}
	b.logger.Debug("Presigned upload URL",
		zap.String("key", key),
		zap.String("contentType", contentType),
		zap.Duration("ttl", ttl),
	)
	return req.URL, nil
}

func (b *BlobStore) check(key string) error {
	if b.bucket == "" {
		return errors.New("video bucket is not configured")
	}
	if key == "" {
		return errors.New("object key is required")
	}
	return nil
}
