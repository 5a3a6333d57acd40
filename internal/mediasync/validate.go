package mediasync

import (
	"context"
	"strings"

	"github.com/thebluefowl/spacesync/internal/storage"
)

const (
	// TestObjectKey is written and removed again by a connection test.
	TestObjectKey = "test.txt"

	msgConnected    = "Connection is successfully established. Save the settings."
	msgNotConnected = "Connection is not established."
)

// Result is the outcome of a connection test.
type Result struct {
	OK     bool   `json:"ok"`
	Detail string `json:"message"`
}

// ConnectionValidator round-trips a small object through the store.
type ConnectionValidator struct {
	store storage.Store
}

func NewConnectionValidator(store storage.Store) ConnectionValidator {
	return ConnectionValidator{store: store}
}

// Validate writes TestObjectKey and deletes it. Any failure yields OK=false
// with the error message and, when the backend supplied one, its code.
func (v ConnectionValidator) Validate(ctx context.Context) Result {
	if err := v.store.Write(ctx, TestObjectKey, strings.NewReader("test"), storage.WriteOptions{}); err != nil {
		return failed(err)
	}
	if err := v.store.Delete(ctx, TestObjectKey); err != nil {
		return failed(err)
	}
	return Result{OK: true, Detail: msgConnected}
}

func failed(err error) Result {
	detail := msgNotConnected + " : " + err.Error()
	if code := storage.Code(err); code != "" {
		detail += " - " + code
	}
	return Result{Detail: detail}
}
