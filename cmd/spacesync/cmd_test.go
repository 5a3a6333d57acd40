package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebluefowl/spacesync/internal/config"
)

func TestAttachmentFromArgs(t *testing.T) {
	mimeType = ""
	a, err := attachmentFromArgs("photo.png")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(a.File))
	assert.Equal(t, "image/png", a.MimeType)
	assert.True(t, a.IsImage())

	mimeType = "application/x-custom"
	defer func() { mimeType = "" }()
	a, err = attachmentFromArgs("photo.png")
	require.NoError(t, err)
	assert.Equal(t, "application/x-custom", a.MimeType)
}

func TestReadMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "md.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"file":"2024/01/a.jpg","sizes":{"thumbnail":{"file":"a-150x150.jpg"}}}`), 0o600))

	md, err := readMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, "2024/01/a.jpg", md.File)
	require.Len(t, md.Sizes, 1)
	assert.Equal(t, "thumbnail", md.Sizes[0].Name)

	_, err = readMetadata(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestUploadDirPrefersFlag(t *testing.T) {
	defer func(b, s string) { baseDirFlag, subdirFlag = b, s }(baseDirFlag, subdirFlag)

	baseDirFlag, subdirFlag = "", "/2024/01"
	assert.Equal(t, "/srv/uploads/2024/01", uploadDir(config.Config{UploadPath: "/srv/uploads"}).Path())

	baseDirFlag = "/var/www/uploads"
	assert.Equal(t, "/var/www/uploads/2024/01", uploadDir(config.Config{UploadPath: "/srv/uploads"}).Path())
}
