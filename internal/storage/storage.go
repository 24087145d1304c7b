// Package storage hosts uploaded images on S3-compatible object storage or
// a local directory, addressing them by public URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"bakehouse/internal/config"
)

// ErrInvalidURL is returned when a URL does not end in folder/filename.
var ErrInvalidURL = errors.New("url has no folder/filename path")

// Provider defines the behavior for any storage backend.
type Provider interface {
	Put(ctx context.Context, key string, body io.ReadSeeker, contentType string, metadata map[string]string) error
	Delete(ctx context.Context, key string) error
}

// Transform bounds the served size of an image. The serving CDN reads it
// from the object metadata.
type Transform struct {
	MaxWidth  int
	MaxHeight int
}

func (t Transform) metadata() map[string]string {
	if t.MaxWidth == 0 && t.MaxHeight == 0 {
		return nil
	}
	return map[string]string{
		"transform":  "limit",
		"max-width":  strconv.Itoa(t.MaxWidth),
		"max-height": strconv.Itoa(t.MaxHeight),
	}
}

// Client maps folder/filename pairs to backend keys and public URLs.
type Client struct {
	backend   Provider
	publicURL string
	root      string
}

// New builds a Client for the configured provider.
func New(cfg config.StorageConfig) (*Client, error) {
	var backend Provider
	switch cfg.Provider {
	case "local", "":
		local, err := NewLocalProvider(cfg.LocalPath)
		if err != nil {
			return nil, err
		}
		backend = local
	case "s3":
		s3Config := &aws.Config{
			Credentials:      credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, ""),
			Region:           aws.String(cfg.S3Region),
			S3ForcePathStyle: aws.Bool(true),
		}
		if cfg.S3Endpoint != "" {
			s3Config.Endpoint = aws.String(cfg.S3Endpoint)
		}
		sess, err := session.NewSession(s3Config)
		if err != nil {
			return nil, fmt.Errorf("s3 session: %w", err)
		}
		backend = NewS3Provider(sess, cfg.S3Bucket)
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Provider)
	}
	return NewWithProvider(backend, cfg.PublicURL, cfg.Root), nil
}

// NewWithProvider builds a Client over an existing backend.
func NewWithProvider(backend Provider, publicURL, root string) *Client {
	return &Client{
		backend:   backend,
		publicURL: strings.TrimRight(publicURL, "/"),
		root:      strings.Trim(root, "/"),
	}
}

// Key returns the backend key of folder/filename.
func (c *Client) Key(folder, filename string) string {
	if c.root == "" {
		return folder + "/" + filename
	}
	return c.root + "/" + folder + "/" + filename
}

// URL returns the public URL of a backend key.
func (c *Client) URL(key string) string {
	return c.publicURL + "/" + key
}

// Upload stores body under folder/filename and returns its public URL.
func (c *Client) Upload(ctx context.Context, folder, filename string, body io.ReadSeeker, contentType string, t Transform) (string, error) {
	key := c.Key(folder, filename)
	if err := c.backend.Put(ctx, key, body, contentType, t.metadata()); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return c.URL(key), nil
}

// KeyFromURL derives the backend key from the last two path segments of rawURL.
func (c *Client) KeyFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrInvalidURL
	}
	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return "", ErrInvalidURL
	}
	folder, filename := segments[len(segments)-2], segments[len(segments)-1]
	for _, s := range []string{folder, filename} {
		if s == "." || s == ".." {
			return "", ErrInvalidURL
		}
	}
	return c.Key(folder, filename), nil
}

// Delete removes the object a public URL points at.
func (c *Client) Delete(ctx context.Context, rawURL string) error {
	key, err := c.KeyFromURL(rawURL)
	if err != nil {
		return err
	}
	if err := c.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
