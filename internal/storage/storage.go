// Package storage selects the configured archive provider for imported spreadsheets.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"jewelscan/internal/config"
	"jewelscan/internal/port"
	"jewelscan/internal/storage/noop"
	"jewelscan/internal/storage/s3"
)

// New returns the ObjectStorage named by cfg.Provider.
func New(ctx context.Context, cfg *config.StorageConfig, log *zap.Logger) (port.ObjectStorage, error) {
	switch cfg.Provider {
	case "", "noop":
		return noop.NewNoopStorage(log), nil
	case "s3":
		return s3.NewS3Client(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown provider %q", cfg.Provider)
	}
}
