package app

import (
	"context"
	"errors"
	"testing"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/gcp"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return log
}

func TestClassifyStorageProviderBootstrapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want StorageProviderBootstrapErrorCode
	}{
		{"invalid mode", &gcp.ObjectStorageConfigError{Code: gcp.ObjectStorageConfigErrorInvalidMode}, StorageProviderBootstrapErrorInvalidMode},
		{"missing bucket", &gcp.ObjectStorageConfigError{Code: gcp.ObjectStorageConfigErrorMissingBucket}, StorageProviderBootstrapErrorMissingBucket},
		{"missing emulator host", &gcp.ObjectStorageConfigError{Code: gcp.ObjectStorageConfigErrorMissingEmulatorHost}, StorageProviderBootstrapErrorMissingEmulatorHost},
		{"invalid emulator host", &gcp.ObjectStorageConfigError{Code: gcp.ObjectStorageConfigErrorInvalidEmulatorHost}, StorageProviderBootstrapErrorInvalidEmulatorHost},
		{"wrapped", errors.Join(errors.New("object storage config"), &gcp.ObjectStorageConfigError{Code: gcp.ObjectStorageConfigErrorInvalidPublicBaseURL}), StorageProviderBootstrapErrorInvalidPublicBaseURL},
		{"connect", errors.New("dial tcp: refused"), StorageProviderBootstrapErrorConnectFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyStorageProviderBootstrapError(gcp.ObjectStorageConfig{Mode: gcp.ObjectStorageModeGCS}, tc.err)
			var got *StorageProviderBootstrapError
			if !errors.As(err, &got) {
				t.Fatalf("expected StorageProviderBootstrapError, got=%T", err)
			}
			if got.Code != tc.want {
				t.Fatalf("code: want=%q got=%q", tc.want, got.Code)
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("cause not preserved: %v", err)
			}
		})
	}
}

func TestResolveImageBucketDisabled(t *testing.T) {
	cfg := defaultConfig()
	cfg.Storage.Mode = "disabled"

	bucket, err := resolveImageBucket(context.Background(), testLogger(t), cfg)
	if err != nil {
		t.Fatalf("resolveImageBucket: %v", err)
	}
	if bucket != nil {
		t.Fatalf("expected nil bucket when storage is disabled")
	}
}

func TestResolveImageBucketMissingBucket(t *testing.T) {
	cfg := defaultConfig()
	cfg.Storage.Mode = "gcs"

	_, err := resolveImageBucket(context.Background(), testLogger(t), cfg)
	if got := storageProviderBootstrapErrorCode(err); got != StorageProviderBootstrapErrorMissingBucket {
		t.Fatalf("code: want=%q got=%q err=%v", StorageProviderBootstrapErrorMissingBucket, got, err)
	}
}

func TestResolveImageBucketConnectFailure(t *testing.T) {
	orig := newImageBucket
	t.Cleanup(func() { newImageBucket = orig })
	newImageBucket = func(ctx context.Context, log *logger.Logger, cfg gcp.ObjectStorageConfig) (gcp.ImageBucket, error) {
		return nil, errors.New("credentials: could not find default credentials")
	}

	cfg := defaultConfig()
	cfg.Storage.Mode = "gcs"
	cfg.Storage.Bucket = "course-images"
	_, err := resolveImageBucket(context.Background(), testLogger(t), cfg)
	if got := storageProviderBootstrapErrorCode(err); got != StorageProviderBootstrapErrorConnectFailed {
		t.Fatalf("code: want=%q got=%q", StorageProviderBootstrapErrorConnectFailed, got)
	}
}
