package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveConstantsWin(t *testing.T) {
	constants := Config{Key: "const-key", Container: "const-bucket"}
	settings := Config{Key: "saved-key", Secret: "saved-secret", Container: "saved-bucket", Endpoint: "https://ams3.example.com"}

	cfg := Resolve(constants, settings)
	assert.Equal(t, "const-key", cfg.Key)
	assert.Equal(t, "saved-secret", cfg.Secret)
	assert.Equal(t, "const-bucket", cfg.Container)
	assert.Equal(t, "https://ams3.example.com", cfg.Endpoint)
}

func TestResolveBooleans(t *testing.T) {
	tests := []struct {
		constant, setting, want bool
	}{
		{false, false, false},
		{true, false, true},
		{false, true, true},
		{true, true, true},
	}
	for _, tt := range tests {
		cfg := Resolve(Config{KeepOnlyInStorage: tt.constant}, Config{KeepOnlyInStorage: tt.setting})
		assert.Equal(t, tt.want, cfg.KeepOnlyInStorage)
	}
}

func TestResolveDefaults(t *testing.T) {
	cfg := Resolve(Config{}, Config{Driver: "MinIO"})
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, DriverMinio, cfg.Driver)

	cfg = Resolve(Config{}, Config{})
	assert.Equal(t, DriverS3, cfg.Driver)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"complete", Config{Driver: DriverS3, Container: "b", Endpoint: "e"}, false},
		{"memory needs nothing", Config{Driver: DriverMemory}, false},
		{"missing container", Config{Driver: DriverS3, Endpoint: "e"}, true},
		{"missing endpoint", Config{Driver: DriverMinio, Container: "b"}, true},
		{"unknown driver", Config{Driver: "ftp", Container: "b", Endpoint: "e"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIncomplete)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettingsAndConstantsShareKeys(t *testing.T) {
	typ := reflect.TypeOf(Config{})
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		jsonKey, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		assert.Equal(t, field.Tag.Get("mapstructure"), jsonKey, field.Name)
		_, bound := envBindings[jsonKey]
		assert.True(t, bound, "%s has no environment binding", field.Name)
	}
}
