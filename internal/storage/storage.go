// Package storage saves uploaded recipe images to S3 or to local disk.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pageza/smartchef/backend/config"
)

// ImageStore saves an object and returns the URL it is served under.
type ImageStore interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// S3Store uploads to the configured bucket.
type S3Store struct {
	s3 *config.S3Config
}

func NewS3Store(s3 *config.S3Config) *S3Store {
	return &S3Store{s3: s3}
}

func (s *S3Store) Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	return s.s3.PutObject(ctx, key, body, contentType)
}

// LocalStore writes under Root and serves files from URLPrefix.
type LocalStore struct {
	Root      string
	URLPrefix string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root, URLPrefix: "/media"}
}

func (s *LocalStore) Save(ctx context.Context, key string, body io.Reader, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean := path.Clean("/" + key)
	if clean == "/" || hasParentSegment(key) {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	dest := filepath.Join(s.Root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return s.URLPrefix + clean, nil
}

func hasParentSegment(key string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(key), "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// New picks S3 when a bucket is configured and local disk otherwise.
func New(ctx context.Context, cfg *config.Config) (ImageStore, error) {
	if cfg.S3Bucket == "" {
		return NewLocalStore(cfg.MediaRoot), nil
	}
	s3cfg, err := config.NewS3Config(ctx, cfg.S3Bucket, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	return NewS3Store(s3cfg), nil
}
