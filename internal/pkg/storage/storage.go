package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrInvalidPath  = errors.New("storage: path escapes storage root")
	ErrFileNotFound = errors.New("storage: file not found")
)

// FileStorage stores archived roster workbooks under slash-separated keys.
type FileStorage interface {
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	GetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}
