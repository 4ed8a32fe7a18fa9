package gcp

import (
	"fmt"
	"net/url"
	"strings"
)

type ObjectStorageMode string

const (
	ObjectStorageModeGCS         ObjectStorageMode = "gcs"
	ObjectStorageModeGCSEmulator ObjectStorageMode = "gcs_emulator"
	// ObjectStorageModeDisabled runs without an image bucket; course writes
	// that carry an image are rejected.
	ObjectStorageModeDisabled ObjectStorageMode = "disabled"
)

// ObjectStorageConfig describes where course images live.
type ObjectStorageConfig struct {
	Mode          ObjectStorageMode
	Bucket        string
	CDNDomain     string
	EmulatorHost  string
	PublicBaseURL string
	Credentials   string
	// CompatibilityFallback is set when the mode was inferred from a bare
	// STORAGE_EMULATOR_HOST.
	CompatibilityFallback bool
}

func IsSupportedObjectStorageMode(mode ObjectStorageMode) bool {
	switch mode {
	case ObjectStorageModeGCS, ObjectStorageModeGCSEmulator, ObjectStorageModeDisabled:
		return true
	default:
		return false
	}
}

func (cfg ObjectStorageConfig) IsEmulatorMode() bool {
	return cfg.Mode == ObjectStorageModeGCSEmulator
}

func (cfg ObjectStorageConfig) Enabled() bool {
	return cfg.Mode != ObjectStorageModeDisabled
}

func (cfg ObjectStorageConfig) ModeSource() string {
	if cfg.CompatibilityFallback {
		return "compatibility_fallback"
	}
	return "explicit_or_default"
}

type ObjectStorageConfigErrorCode string

const (
	ObjectStorageConfigErrorInvalidMode          ObjectStorageConfigErrorCode = "invalid_mode"
	ObjectStorageConfigErrorMissingBucket        ObjectStorageConfigErrorCode = "missing_bucket"
	ObjectStorageConfigErrorMissingEmulatorHost  ObjectStorageConfigErrorCode = "missing_emulator_host"
	ObjectStorageConfigErrorInvalidEmulatorHost  ObjectStorageConfigErrorCode = "invalid_emulator_host"
	ObjectStorageConfigErrorInvalidPublicBaseURL ObjectStorageConfigErrorCode = "invalid_public_base_url"
)

type ObjectStorageConfigError struct {
	Code  ObjectStorageConfigErrorCode
	Value string
	Cause error
}

func (e *ObjectStorageConfigError) Error() string {
	if e == nil {
		return "invalid object storage config"
	}
	switch e.Code {
	case ObjectStorageConfigErrorInvalidMode:
		return fmt.Sprintf(
			"invalid OBJECT_STORAGE_MODE=%q (allowed: %q, %q, %q)",
			e.Value,
			ObjectStorageModeGCS,
			ObjectStorageModeGCSEmulator,
			ObjectStorageModeDisabled,
		)
	case ObjectStorageConfigErrorMissingBucket:
		return "object storage is enabled but COURSE_IMAGE_GCS_BUCKET_NAME is empty"
	case ObjectStorageConfigErrorMissingEmulatorHost:
		return fmt.Sprintf("OBJECT_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST to be set", ObjectStorageModeGCSEmulator)
	case ObjectStorageConfigErrorInvalidEmulatorHost:
		return fmt.Sprintf("invalid STORAGE_EMULATOR_HOST=%q; expected absolute URL like http://fake-gcs:4443", e.Value)
	case ObjectStorageConfigErrorInvalidPublicBaseURL:
		return fmt.Sprintf("invalid OBJECT_STORAGE_PUBLIC_BASE_URL=%q; expected absolute URL like http://localhost:4443", e.Value)
	default:
		return "invalid object storage config"
	}
}

func (e *ObjectStorageConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Normalize fills the mode when it was left empty and validates the result.
// An empty mode picks the emulator when an emulator host is present, GCS when
// a bucket is named, and disabled otherwise.
func (cfg ObjectStorageConfig) Normalize() (ObjectStorageConfig, error) {
	raw := strings.TrimSpace(string(cfg.Mode))
	cfg.Mode = ObjectStorageMode(strings.ToLower(raw))
	cfg.Bucket = strings.TrimSpace(cfg.Bucket)
	cfg.CDNDomain = strings.TrimSpace(cfg.CDNDomain)
	cfg.EmulatorHost = strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/")
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")

	if cfg.Mode == "" {
		switch {
		case cfg.EmulatorHost != "":
			cfg.Mode = ObjectStorageModeGCSEmulator
			cfg.CompatibilityFallback = true
		case cfg.Bucket != "":
			cfg.Mode = ObjectStorageModeGCS
		default:
			cfg.Mode = ObjectStorageModeDisabled
		}
	}
	if !IsSupportedObjectStorageMode(cfg.Mode) {
		return cfg, &ObjectStorageConfigError{Code: ObjectStorageConfigErrorInvalidMode, Value: raw}
	}
	return cfg, cfg.Validate()
}

func (cfg ObjectStorageConfig) Validate() error {
	if !IsSupportedObjectStorageMode(cfg.Mode) {
		return &ObjectStorageConfigError{Code: ObjectStorageConfigErrorInvalidMode, Value: string(cfg.Mode)}
	}
	if !cfg.Enabled() {
		return nil
	}
	if cfg.Bucket == "" {
		return &ObjectStorageConfigError{Code: ObjectStorageConfigErrorMissingBucket}
	}
	if cfg.PublicBaseURL != "" && !isAbsoluteURL(cfg.PublicBaseURL) {
		return &ObjectStorageConfigError{Code: ObjectStorageConfigErrorInvalidPublicBaseURL, Value: cfg.PublicBaseURL}
	}
	if !cfg.IsEmulatorMode() {
		return nil
	}
	if cfg.EmulatorHost == "" {
		return &ObjectStorageConfigError{Code: ObjectStorageConfigErrorMissingEmulatorHost}
	}
	if !isAbsoluteURL(cfg.EmulatorHost) {
		return &ObjectStorageConfigError{Code: ObjectStorageConfigErrorInvalidEmulatorHost, Value: cfg.EmulatorHost}
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && strings.TrimSpace(u.Scheme) != "" && strings.TrimSpace(u.Host) != ""
}
