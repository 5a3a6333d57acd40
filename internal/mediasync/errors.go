package mediasync

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against a returned error to classify it.
var (
	ErrTransport  = errors.New("remote store failure")
	ErrFilesystem = errors.New("local filesystem failure")
)

// PathError records a failed per-path operation.
type PathError struct {
	Op   string // "upload", "remove", "delete"
	Path string // local path
	Key  string // remote key, if mapped
	Kind error  // ErrTransport or ErrFilesystem
	Err  error
}

func (e *PathError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Path, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() []error { return []error{e.Kind, e.Err} }
