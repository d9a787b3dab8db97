package storage

import (
	"context"
	"io"
)

type StorageService interface {
	Upload(ctx context.Context, key, contentType string, reader io.Reader) (string, error) // returns public URL
	Delete(ctx context.Context, key string) error
	// KeyFromURL reverses Upload's URL. ok is false for URLs this store did not issue.
	KeyFromURL(url string) (key string, ok bool)
}
