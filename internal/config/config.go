package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncomplete is returned by Validate when a required remote field is missing.
var ErrIncomplete = errors.New("configuration incomplete")

const (
	DriverS3     = "s3"
	DriverMinio  = "minio"
	DriverMemory = "memory"

	defaultRegion = "us-east-1"
)

// Config is the immutable value set the sync engine is built from.
type Config struct {
	Key       string `json:"key" mapstructure:"key"`
	Secret    string `json:"secret" mapstructure:"secret"`
	Endpoint  string `json:"endpoint" mapstructure:"endpoint"`
	Container string `json:"container" mapstructure:"container"`
	Region    string `json:"region" mapstructure:"region"`
	Driver    string `json:"driver" mapstructure:"driver"`

	// StoragePath is the remote key prefix.
	StoragePath string `json:"storage_path" mapstructure:"storage_path"`
	// UploadPath is the local root that corresponds to StoragePath.
	UploadPath    string `json:"upload_path" mapstructure:"upload_path"`
	UploadURLPath string `json:"upload_url_path" mapstructure:"upload_url_path"`

	Filter                    string `json:"filter" mapstructure:"filter"`
	KeepOnlyInStorage         bool   `json:"storage_file_only" mapstructure:"storage_file_only"`
	DeleteRemoteOnLocalDelete bool   `json:"storage_file_delete" mapstructure:"storage_file_delete"`
}

// Resolve merges deploy-time constants over persisted settings. A constant
// wins whenever it is non-empty; false counts as empty for booleans.
func Resolve(constants, settings Config) Config {
	pick := func(c, s string) string {
		if c != "" {
			return c
		}
		return s
	}

	cfg := Config{
		Key:                       pick(constants.Key, settings.Key),
		Secret:                    pick(constants.Secret, settings.Secret),
		Endpoint:                  pick(constants.Endpoint, settings.Endpoint),
		Container:                 pick(constants.Container, settings.Container),
		Region:                    pick(constants.Region, settings.Region),
		Driver:                    pick(constants.Driver, settings.Driver),
		StoragePath:               pick(constants.StoragePath, settings.StoragePath),
		UploadPath:                pick(constants.UploadPath, settings.UploadPath),
		UploadURLPath:             pick(constants.UploadURLPath, settings.UploadURLPath),
		Filter:                    pick(constants.Filter, settings.Filter),
		KeepOnlyInStorage:         constants.KeepOnlyInStorage || settings.KeepOnlyInStorage,
		DeleteRemoteOnLocalDelete: constants.DeleteRemoteOnLocalDelete || settings.DeleteRemoteOnLocalDelete,
	}
	cfg.normalize()
	return cfg
}

func (c *Config) normalize() {
	if c.Region == "" {
		c.Region = defaultRegion
	}
	c.Driver = strings.ToLower(c.Driver)
	if c.Driver == "" {
		c.Driver = DriverS3
	}
}

// Validate reports missing fields needed to reach the remote store. The sync
// engine never calls it; it is a convenience for the CLI.
func (c Config) Validate() error {
	if c.Driver == DriverMemory {
		return nil
	}
	var missing []string
	if c.Container == "" {
		missing = append(missing, "container")
	}
	if c.Endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	switch c.Driver {
	case DriverS3, DriverMinio:
		return nil
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrIncomplete, c.Driver)
	}
}
