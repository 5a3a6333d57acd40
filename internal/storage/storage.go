package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when an object does not exist in the store.
var ErrNotFound = errors.New("object not found")

// Visibility is the access level applied to a written object.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// WriteOptions controls how an object is written.
type WriteOptions struct {
	Visibility Visibility
	// ContentType is derived from the key extension when empty.
	ContentType string
}

// Store is a generic interface for object storage backends.
// It abstracts the operations the sync engine needs so that S3, MinIO or an
// in-memory store can be swapped without touching the engine.
type Store interface {
	// Exists reports whether an object is stored under key. Every call is a
	// live round-trip; implementations must not cache the answer.
	Exists(ctx context.Context, key string) (bool, error)

	// Write stores the content of body under key, replacing any existing object.
	Write(ctx context.Context, key string, body io.Reader, opts WriteOptions) error

	// Read retrieves an object and writes it to the provided writer.
	Read(ctx context.Context, key string, w io.Writer) error

	// Delete removes the object under key. It returns ErrNotFound (wrapped)
	// when no such object exists.
	Delete(ctx context.Context, key string) error
}

// Lister is implemented by stores that can enumerate their objects.
type Lister interface {
	// List returns information about all objects matching the optional prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified string
	ETag         string
}

// Error describes a failed backend operation. Code carries the provider's
// error code when one is available (e.g. "AccessDenied", "NoSuchBucket").
type Error struct {
	Op   string
	Key  string
	Code string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the provider error code from err, or "" if there is none.
func Code(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// NormalizeKey strips leading slashes so "/2024/01/a.png" and
// "2024/01/a.png" address the same object.
func NormalizeKey(key string) string {
	return strings.TrimLeft(key, "/")
}

// ContentType resolves the MIME type for key, honouring an explicit value.
func ContentType(key, contentType string) string {
	if contentType != "" {
		return contentType
	}
	if ext := filepath.Ext(key); ext != "" {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return contentType
}
