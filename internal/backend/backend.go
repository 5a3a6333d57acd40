// Package backend builds the storage.Store selected by a Config.
package backend

import (
	"context"
	"fmt"

	"github.com/thebluefowl/spacesync/internal/config"
	"github.com/thebluefowl/spacesync/internal/storage"
	"github.com/thebluefowl/spacesync/internal/storage/memory"
	"github.com/thebluefowl/spacesync/internal/storage/minio"
	"github.com/thebluefowl/spacesync/internal/storage/s3"
)

// Open returns the store for cfg.Driver.
func Open(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverS3, "":
		client, err := s3.New(ctx, &s3.Opts{
			Bucket:    cfg.Container,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.Key,
			SecretKey: cfg.Secret,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 store: %w", err)
		}
		return client, nil
	case config.DriverMinio:
		client, err := minio.New(&minio.Opts{
			Bucket:    cfg.Container,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.Key,
			SecretKey: cfg.Secret,
		})
		if err != nil {
			return nil, fmt.Errorf("init minio store: %w", err)
		}
		return client, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
