package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	internalConfig "github.com/sefazor/tournest-backend/internal/config"
	"go.uber.org/zap"
)

// S3Storage stores story images in an S3 compatible bucket. With an account ID set it talks to
// Cloudflare R2.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	log       *zap.Logger
}

func NewS3Storage(ctx context.Context, cfg internalConfig.StorageConfig, log *zap.Logger) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is not set")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" && cfg.AccountID != "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" && endpoint != "" {
		publicURL = strings.TrimRight(endpoint, "/") + "/" + cfg.Bucket
	}

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		log:       log,
	}, nil
}

// Upload puts the object and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, src io.Reader) (string, error) {
	size, body, err := sized(src)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		s.log.Error("object upload failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	s.log.Debug("object uploaded", zap.String("key", key), zap.Int64("size", size))
	return s.URL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) URL(key string) string {
	return s.publicURL + "/" + key
}

func (s *S3Storage) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, s.publicURL+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// sized measures seekable readers in place and buffers everything else.
func sized(src io.Reader) (int64, io.Reader, error) {
	if rs, ok := src.(io.ReadSeeker); ok {
		current, err := rs.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to get current position: %w", err)
		}
		end, err := rs.Seek(0, io.SeekEnd)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to seek to end: %w", err)
		}
		if _, err := rs.Seek(current, io.SeekStart); err != nil {
			return 0, nil, fmt.Errorf("failed to seek back: %w", err)
		}
		return end - current, rs, nil
	}

	buf, err := io.ReadAll(src)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read file content: %w", err)
	}
	return int64(len(buf)), bytes.NewReader(buf), nil
}
