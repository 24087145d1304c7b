package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder for dimension probing
	_ "image/png"  // register decoder for dimension probing
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "bakehouse/internal/errors"
	"bakehouse/internal/metrics"
	"bakehouse/internal/storage"
)

// UploadTarget names where an uploaded image will be used.
type UploadTarget string

const (
	TargetRecipe  UploadTarget = "recipe"
	TargetGallery UploadTarget = "gallery"
)

// UploadPolicy bounds and places the images of one target.
type UploadPolicy struct {
	Folder    string
	MaxBytes  int64
	Transform storage.Transform
}

// UploadPolicies holds the ceiling, folder and served size of each target.
var UploadPolicies = map[UploadTarget]UploadPolicy{
	TargetRecipe:  {Folder: "recipes", MaxBytes: 5 << 20, Transform: storage.Transform{MaxWidth: 1200, MaxHeight: 1200}},
	TargetGallery: {Folder: "gallery", MaxBytes: 10 << 20, Transform: storage.Transform{MaxWidth: 2000, MaxHeight: 2000}},
}

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// UploadedImage describes a stored image.
type UploadedImage struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// ImageHost stores and removes images by public URL.
type ImageHost interface {
	Upload(ctx context.Context, folder, filename string, body io.ReadSeeker, contentType string, t storage.Transform) (string, error)
	Delete(ctx context.Context, rawURL string) error
}

// UploadService validates images and forwards them to the image host.
type UploadService interface {
	UploadImage(ctx context.Context, target UploadTarget, file *multipart.FileHeader) (*UploadedImage, error)
	DeleteImage(ctx context.Context, url string) error
}

type uploadService struct {
	host    ImageHost
	metrics *metrics.Metrics
}

// NewUploadService creates a new upload service.
func NewUploadService(host ImageHost, m *metrics.Metrics) UploadService {
	return &uploadService{host: host, metrics: m}
}

// CheckImage enforces the target's size ceiling and the format allow-list.
func CheckImage(target UploadTarget, filename string, size int64) (UploadPolicy, string, error) {
	policy, ok := UploadPolicies[target]
	if !ok {
		return UploadPolicy{}, "", apperrors.Validation("unknown upload target")
	}
	if size > policy.MaxBytes {
		return UploadPolicy{}, "", &apperrors.Error{
			Kind:    apperrors.KindValidation,
			Message: fmt.Sprintf("file too large, maximum size is %dMB", policy.MaxBytes>>20),
			Err:     apperrors.ErrFileTooLarge,
		}
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedImageTypes[ext]; !ok {
		return UploadPolicy{}, "", apperrors.ErrUnsupportedFormat
	}
	return policy, ext, nil
}

func (s *uploadService) UploadImage(ctx context.Context, target UploadTarget, file *multipart.FileHeader) (*UploadedImage, error) {
	if file == nil {
		return nil, apperrors.ErrNoFile
	}
	policy, ext, err := CheckImage(target, file.Filename, file.Size)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, policy.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > policy.MaxBytes {
		return nil, apperrors.ErrFileTooLarge
	}
	// the extension must agree with the bytes
	contentType := allowedImageTypes[ext]
	if http.DetectContentType(data) != contentType {
		return nil, apperrors.ErrUnsupportedFormat
	}

	img := &UploadedImage{Filename: uuid.NewString() + ext}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width, img.Height = cfg.Width, cfg.Height
	}

	img.URL, err = s.host.Upload(ctx, policy.Folder, img.Filename, bytes.NewReader(data), contentType, policy.Transform)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	s.metrics.ImageUploaded(string(target))
	return img, nil
}

func (s *uploadService) DeleteImage(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return apperrors.Validation("image url is required")
	}
	if err := s.host.Delete(ctx, url); err != nil {
		if errors.Is(err, storage.ErrInvalidURL) {
			return apperrors.ErrInvalidImageURL
		}
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
