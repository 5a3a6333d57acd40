package mediasync

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/thebluefowl/spacesync/internal/storage"
	"github.com/thebluefowl/spacesync/internal/storage/memory"
)

// fakeStore wraps the in-memory store and lets tests inject failures and
// observe calls.
type fakeStore struct {
	*memory.Store

	mu          sync.Mutex
	writeErr    error
	deleteErrs  map[string]error
	existsErr   error
	existsCalls []string
	deleteCalls []string
	alwaysExist bool
	onExists    func(calls int)
}

func newFakeStore() *fakeStore {
	return &fakeStore{Store: memory.New(), deleteErrs: map[string]error{}}
}

func (f *fakeStore) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	f.existsCalls = append(f.existsCalls, key)
	existsErr, always, hook, calls := f.existsErr, f.alwaysExist, f.onExists, len(f.existsCalls)
	f.mu.Unlock()
	if hook != nil {
		hook(calls)
	}
	if existsErr != nil {
		return false, existsErr
	}
	if always {
		return true, nil
	}
	return f.Store.Exists(ctx, key)
}

func (f *fakeStore) Write(ctx context.Context, key string, body io.Reader, opts storage.WriteOptions) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.Store.Write(ctx, key, body, opts)
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	f.deleteCalls = append(f.deleteCalls, key)
	err := f.deleteErrs[key]
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.Delete(ctx, key)
}

var errRejected = &storage.Error{Op: "upload", Key: "bucket/test.txt", Code: "AccessDenied", Err: errors.New("access denied")}
