package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsStore persists Config values encrypted with a password.
type SettingsStore struct {
	path string
}

// NewSettingsStore returns a store backed by the file at path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// DefaultSettingsPath is <user config dir>/spacesync/settings.enc.
func DefaultSettingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "spacesync", "settings.enc"), nil
}

// Path returns the settings file location.
func (s *SettingsStore) Path() string {
	return s.path
}

// deriveKey creates an encryption key from the user's password
func deriveKey(password string) []byte {
	salt := []byte("spacesync-settings-salt-v1")
	return pbkdf2.Key([]byte(password), salt, 100000, 32, sha256.New)
}

// Save encrypts and saves the settings using the provided password
func (s *SettingsStore) Save(settings Config, password string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	jsonData, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	encryptedData, err := encrypt(jsonData, deriveKey(password))
	if err != nil {
		return fmt.Errorf("failed to encrypt settings: %w", err)
	}

	if err := os.WriteFile(s.path, encryptedData, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// Load decrypts and loads the settings using the provided password
func (s *SettingsStore) Load(password string) (Config, error) {
	encryptedData, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, ErrSettingsNotFound
		}
		return Config{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	jsonData, err := decrypt(encryptedData, deriveKey(password))
	if err != nil {
		return Config{}, fmt.Errorf("failed to decrypt settings (wrong password?): %w", err)
	}

	var settings Config
	if err := json.Unmarshal(jsonData, &settings); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return settings, nil
}

func (s *SettingsStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// encrypt encrypts data using AES-GCM
func encrypt(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// decrypt decrypts data using AES-GCM
func decrypt(ciphertext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
