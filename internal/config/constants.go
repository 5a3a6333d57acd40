package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that define
// them as deploy-time constants.
var envBindings = map[string]string{
	"key":                 "DOS_KEY",
	"secret":              "DOS_SECRET",
	"endpoint":            "DOS_ENDPOINT",
	"container":           "DOS_CONTAINER",
	"region":              "DOS_REGION",
	"driver":              "DOS_DRIVER",
	"storage_path":        "DOS_STORAGE_PATH",
	"storage_file_only":   "DOS_STORAGE_FILE_ONLY",
	"storage_file_delete": "DOS_STORAGE_FILE_DELETE",
	"filter":              "DOS_FILTER",
	"upload_url_path":     "UPLOAD_URL_PATH",
	"upload_path":         "UPLOAD_PATH",
}

// LoadConstants reads deploy-time constants from the environment and, when
// path is non-empty, from a YAML file. Environment values override the file.
func LoadConstants(path string) (Config, error) {
	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read constants file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode constants: %w", err)
	}
	return cfg, nil
}
