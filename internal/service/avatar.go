package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/whamhub/backend/config"
)

// AvatarStore writes avatar images to the object storage collaborator
// and issues time-limited signed URLs for reading them back.
type AvatarStore struct {
	storage *config.S3Config
}

// NewAvatarStore creates a new AvatarStore instance
func NewAvatarStore(storage *config.S3Config) *AvatarStore {
	return &AvatarStore{storage: storage}
}

// Store writes the image under <identity id>/<unix millis>.<ext> and
// returns the storage path. Every upload gets a fresh timestamp key, so
// re-uploads never collide even though overwrite is allowed.
func (s *AvatarStore) Store(ctx context.Context, identityID string, content io.Reader, contentType, filename string) (string, error) {
	path := fmt.Sprintf("%s/%d.%s", identityID, time.Now().UnixMilli(), fileExt(filename))

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.storage.BucketName),
		Key:    aws.String(path),
		Body:   content,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.storage.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	return path, nil
}

// SignURL resolves a stored path into a time-limited access URL. When
// the storage collaborator cannot produce one the caller gets "" and
// degrades to showing no avatar rather than failing the request.
func (s *AvatarStore) SignURL(ctx context.Context, path string, ttl time.Duration) string {
	if path == "" {
		return ""
	}
	url, err := s.storage.GeneratePresignedURL(ctx, path, ttl)
	if err != nil {
		log.Printf("[AvatarStore] failed to sign %s: %v", path, err)
		return ""
	}
	return url
}

// Remove deletes a stored object. Used to compensate when a profile
// update fails after its avatar was already written.
func (s *AvatarStore) Remove(ctx context.Context, path string) error {
	_, err := s.storage.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.storage.BucketName),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("delete avatar: %w", err)
	}
	return nil
}

// fileExt extracts the extension from the uploaded filename, falling
// back to a generic binary extension.
func fileExt(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 && idx < len(filename)-1 {
		return strings.ToLower(filename[idx+1:])
	}
	return "bin"
}
