package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/gcp"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

var newImageBucket = gcp.NewImageBucket

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidMode          StorageProviderBootstrapErrorCode = "invalid_mode"
	StorageProviderBootstrapErrorMissingBucket        StorageProviderBootstrapErrorCode = "missing_bucket"
	StorageProviderBootstrapErrorMissingEmulatorHost  StorageProviderBootstrapErrorCode = "missing_emulator_host"
	StorageProviderBootstrapErrorInvalidEmulatorHost  StorageProviderBootstrapErrorCode = "invalid_emulator_host"
	StorageProviderBootstrapErrorInvalidPublicBaseURL StorageProviderBootstrapErrorCode = "invalid_public_base_url"
	StorageProviderBootstrapErrorConnectFailed        StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code         StorageProviderBootstrapErrorCode
	Mode         string
	EmulatorHost string
	Cause        error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "object storage bootstrap failed"
	}
	return fmt.Sprintf(
		"object storage bootstrap failed (code=%s mode=%q emulator_host=%q): %v",
		e.Code,
		e.Mode,
		e.EmulatorHost,
		e.Cause,
	)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (c Config) objectStorageConfig() gcp.ObjectStorageConfig {
	return gcp.ObjectStorageConfig{
		Mode:          gcp.ObjectStorageMode(c.Storage.Mode),
		Bucket:        c.Storage.Bucket,
		CDNDomain:     c.Storage.CDNDomain,
		EmulatorHost:  c.Storage.EmulatorHost,
		PublicBaseURL: c.Storage.PublicBaseURL,
		Credentials:   c.Storage.Credentials,
	}
}

// resolveImageBucket returns a nil bucket when object storage is disabled.
func resolveImageBucket(ctx context.Context, log *logger.Logger, cfg Config) (gcp.ImageBucket, error) {
	storageCfg := cfg.objectStorageConfig()
	log.Info(
		"Selecting object storage provider",
		"mode", storageCfg.Mode,
		"bucket", storageCfg.Bucket,
		"emulator_host", storageCfg.EmulatorHost,
	)

	bucket, err := newImageBucket(ctx, log, storageCfg)
	if err != nil {
		classified := classifyStorageProviderBootstrapError(storageCfg, err)
		log.Error(
			"Object storage provider bootstrap failed",
			"mode", storageCfg.Mode,
			"emulator_host", storageCfg.EmulatorHost,
			"error_code", storageProviderBootstrapErrorCode(classified),
			"error", classified,
		)
		return nil, classified
	}
	return bucket, nil
}

var configErrorCodes = map[gcp.ObjectStorageConfigErrorCode]StorageProviderBootstrapErrorCode{
	gcp.ObjectStorageConfigErrorInvalidMode:          StorageProviderBootstrapErrorInvalidMode,
	gcp.ObjectStorageConfigErrorMissingBucket:        StorageProviderBootstrapErrorMissingBucket,
	gcp.ObjectStorageConfigErrorMissingEmulatorHost:  StorageProviderBootstrapErrorMissingEmulatorHost,
	gcp.ObjectStorageConfigErrorInvalidEmulatorHost:  StorageProviderBootstrapErrorInvalidEmulatorHost,
	gcp.ObjectStorageConfigErrorInvalidPublicBaseURL: StorageProviderBootstrapErrorInvalidPublicBaseURL,
}

func classifyStorageProviderBootstrapError(storageCfg gcp.ObjectStorageConfig, err error) error {
	code := StorageProviderBootstrapErrorConnectFailed
	var cfgErr *gcp.ObjectStorageConfigError
	if errors.As(err, &cfgErr) {
		if mapped, ok := configErrorCodes[cfgErr.Code]; ok {
			code = mapped
		}
	}
	return &StorageProviderBootstrapError{
		Code:         code,
		Mode:         string(storageCfg.Mode),
		EmulatorHost: storageCfg.EmulatorHost,
		Cause:        err,
	}
}

func storageProviderBootstrapErrorCode(err error) StorageProviderBootstrapErrorCode {
	var bootstrapErr *StorageProviderBootstrapError
	if errors.As(err, &bootstrapErr) {
		if bootstrapErr.Code != "" {
			return bootstrapErr.Code
		}
	}
	return StorageProviderBootstrapErrorConnectFailed
}
