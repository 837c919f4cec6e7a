package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FileStorage is the object-store surface used by the catalog: upload and
// delete by opaque key, and resolve a key to a publicly reachable URL.
type FileStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
	ObjectURL(key string) (string, error)
}

// S3Storage stores image assets in an S3 bucket.
type S3Storage struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

func NewS3Storage(client *s3.Client, bucket, region, endpoint string) *S3Storage {
	return &S3Storage{
		client:   client,
		bucket:   bucket,
		region:   region,
		endpoint: endpoint,
	}
}

func (s *S3Storage) Upload(ctx context.Context, key, contentType string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// ObjectURL derives the public URL for a stored key. Purely deterministic:
// custom endpoints (LocalStack, MinIO) use path-style addressing, otherwise
// the standard virtual-hosted S3 URL is built from bucket and region.
func (s *S3Storage) ObjectURL(key string) (string, error) {
	if s.bucket == "" || (s.endpoint == "" && s.region == "") {
		return "", fmt.Errorf("invalid s3 configuration: bucket and region are required")
	}
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.endpoint, "/"), s.bucket, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
