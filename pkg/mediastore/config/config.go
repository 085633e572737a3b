// Package config loads server configuration from the environment and builds
// the media catalog service from it. Storage settings are validated at
// startup so a misconfigured server fails fast instead of producing
// confusing storage errors on first use.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/epiframe/media-admin/pkg/mediastore"
	memorystorage "github.com/epiframe/media-admin/pkg/mediastore/storage/memory"
	s3storage "github.com/epiframe/media-admin/pkg/mediastore/storage/s3"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// ServerConfig is the process-wide configuration, constructed once at
// startup and passed explicitly to the pieces that need it.
type ServerConfig struct {
	Port                string `env:"PORT" env-default:"8080"`
	Environment         string `env:"ENVIRONMENT" env-default:"development"`
	StaticDir           string `env:"STATIC_DIR" env-default:""`
	StorageBackend      string `env:"STORAGE_BACKEND" env-default:"s3"`
	SignedURLTTLSeconds int    `env:"SIGNED_URL_TTL_SECONDS" env-default:"3600"`
	S3                  S3Config
}

// S3Config carries the blob storage connection settings.
type S3Config struct {
	Bucket                 string `env:"S3_BUCKET"`
	Region                 string `env:"S3_REGION" env-default:"us-east-1"`
	AccessKeyID            string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey        string `env:"S3_SECRET_ACCESS_KEY"`
	Endpoint               string `env:"S3_ENDPOINT" env-default:""`
	UsePathStyle           bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	CreateBucketIfNotExist bool   `env:"S3_CREATE_BUCKET_IF_NOT_EXIST" env-default:"false"`
}

// Load reads configuration from the environment and validates it.
func Load() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that required settings are present for the selected
// backend.
func (c *ServerConfig) Validate() error {
	if c.SignedURLTTLSeconds <= 0 {
		return fmt.Errorf("SIGNED_URL_TTL_SECONDS must be positive, got %d", c.SignedURLTTLSeconds)
	}

	switch c.StorageBackend {
	case BackendMemory:
		return nil
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required")
		}
		if c.S3.AccessKeyID == "" {
			return fmt.Errorf("S3_ACCESS_KEY_ID is required")
		}
		if c.S3.SecretAccessKey == "" {
			return fmt.Errorf("S3_SECRET_ACCESS_KEY is required")
		}
		return nil
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND: %q (use %q or %q)", c.StorageBackend, BackendS3, BackendMemory)
	}
}

// SignedURLTTL returns the configured read URL lifetime.
func (c *ServerConfig) SignedURLTTL() time.Duration {
	return time.Duration(c.SignedURLTTLSeconds) * time.Second
}

// BuildService constructs the blob store backend and the catalog service on
// top of it.
func (c *ServerConfig) BuildService() (mediastore.Service, error) {
	store, err := c.buildBlobStore()
	if err != nil {
		return nil, err
	}

	svc, err := mediastore.New(
		mediastore.WithBlobStore(store),
		mediastore.WithSignedURLTTL(c.SignedURLTTL()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build media service: %w", err)
	}
	return svc, nil
}

func (c *ServerConfig) buildBlobStore() (mediastore.BlobStore, error) {
	switch c.StorageBackend {
	case BackendMemory:
		return memorystorage.New(), nil
	case BackendS3:
		backend, err := s3storage.New(s3storage.Config{
			Region:                 c.S3.Region,
			Bucket:                 c.S3.Bucket,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			Endpoint:               c.S3.Endpoint,
			UsePathStyle:           c.S3.UsePathStyle,
			CreateBucketIfNotExist: c.S3.CreateBucketIfNotExist,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 backend: %w", err)
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND: %q", c.StorageBackend)
	}
}
