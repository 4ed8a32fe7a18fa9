package gcp

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

// ImageBucket stores course images. Store returns the object key; PublicURL
// turns a key into the URL clients load the image from.
type ImageBucket interface {
	Store(ctx context.Context, name string, file io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	Close() error
}

type imageBucket struct {
	log           *logger.Logger
	client        *storage.Client
	mode          ObjectStorageMode
	bucket        string
	cdnDomain     string
	emulatorHost  string
	publicBaseURL string
}

// NewImageBucket returns nil with no error when storage is disabled.
func NewImageBucket(ctx context.Context, log *logger.Logger, cfg ObjectStorageConfig) (ImageBucket, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, fmt.Errorf("object storage config: %w", err)
	}
	serviceLog := log.With("service", "ImageBucket")
	if !cfg.Enabled() {
		serviceLog.Info("Object storage disabled; course image uploads will be rejected")
		return nil, nil
	}

	client, err := newStorageClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	serviceLog.Info(
		"Object storage initialized",
		"mode", cfg.Mode,
		"mode_source", cfg.ModeSource(),
		"bucket", cfg.Bucket,
		"emulator_host", cfg.EmulatorHost,
		"public_base_url", cfg.PublicBaseURL,
	)
	return &imageBucket{
		log:           serviceLog,
		client:        client,
		mode:          cfg.Mode,
		bucket:        cfg.Bucket,
		cdnDomain:     cfg.CDNDomain,
		emulatorHost:  cfg.EmulatorHost,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

func newStorageClient(ctx context.Context, cfg ObjectStorageConfig) (*storage.Client, error) {
	switch cfg.Mode {
	case ObjectStorageModeGCS:
		opts := ClientOptions(cfg.Credentials)
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
		return storage.NewClient(ctx, opts...)
	case ObjectStorageModeGCSEmulator:
		return storage.NewClient(ctx,
			option.WithEndpoint(cfg.EmulatorHost+"/storage/v1/"),
			option.WithoutAuthentication(),
		)
	default:
		return nil, &ObjectStorageConfigError{Code: ObjectStorageConfigErrorInvalidMode, Value: string(cfg.Mode)}
	}
}

// Store writes the image under a fresh key derived from name and returns the
// key.
func (b *imageBucket) Store(ctx context.Context, name string, file io.Reader) (string, error) {
	key := ObjectKey(name)
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := b.client.Bucket(b.bucket).Object(key).NewWriter(ctx)
	if ct := ContentTypeForKey(key); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	b.log.Debug("Stored course image", "key", key)
	return key, nil
}

func (b *imageBucket) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := b.client.Bucket(b.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, b.bucket, err)
	}
	return nil
}

func (b *imageBucket) PublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if b.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", b.cdnDomain, key)
	}
	if b.mode == ObjectStorageModeGCSEmulator {
		base := b.publicBaseURL
		if base == "" {
			base = b.emulatorHost
		}
		return fmt.Sprintf("%s/storage/v1/b/%s/o/%s?alt=media", base, url.PathEscape(b.bucket), url.PathEscape(key))
	}
	if b.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", b.publicBaseURL, b.bucket, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.bucket, key)
}

func (b *imageBucket) Close() error {
	if b == nil || b.client == nil {
		return nil
	}
	return b.client.Close()
}

// ObjectKey places uploads under courses/ with a random stem so two uploads
// with the same file name never overwrite each other.
func ObjectKey(name string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(name)))
	if len(ext) > 8 || strings.ContainsAny(ext, `/\?#`) {
		ext = ""
	}
	return "courses/" + uuid.NewString() + ext
}

func ContentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	switch path.Ext(s) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	default:
		return ""
	}
}
