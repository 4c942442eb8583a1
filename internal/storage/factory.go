package storage

import (
	"context"
	"fmt"
)

// Config selects and configures a driver: "local", "s3", or "none" to turn
// uploads off.
type Config struct {
	Driver         string
	LocalDir       string
	LocalURLPrefix string
	S3             S3Config
}

type FactoryResult struct {
	Driver  string
	Storage Storage
}

func New(ctx context.Context, cfg Config) (FactoryResult, error) {
	switch cfg.Driver {
	case "", "local":
		dir, prefix := cfg.LocalDir, cfg.LocalURLPrefix
		if dir == "" {
			dir = "./storage/uploads"
		}
		if prefix == "" {
			prefix = "/uploads"
		}
		return FactoryResult{Driver: "local", Storage: NewLocal(dir, prefix)}, nil

	case "s3":
		if cfg.S3.Region == "" || cfg.S3.Bucket == "" || cfg.S3.PublicBaseURL == "" {
			return FactoryResult{}, fmt.Errorf("storage: S3_REGION, S3_BUCKET and S3_PUBLIC_BASE_URL are required")
		}
		s, err := NewS3(ctx, cfg.S3)
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "s3", Storage: s}, nil

	case "none":
		return FactoryResult{Driver: "none"}, nil

	default:
		return FactoryResult{}, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
