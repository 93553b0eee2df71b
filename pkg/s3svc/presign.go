package s3svc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// GetPresignedURL returns a time-limited signed URL granting read access to
// one object.
func (s *Service) GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("GetPresignedURL: error of PresignGetObject: %w", err)
	}
	s.log.Debug("presigned URL generated",
		slog.String("key", key),
		slog.Duration("expiry", expiry))
	return req.URL, nil
}
