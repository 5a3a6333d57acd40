package mediasync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUnchangedWhenFree(t *testing.T) {
	store := newFakeStore()
	r := NewUniqueNameResolver(store)

	name, err := r.Resolve(context.Background(), "a.png", "/2024/01")
	require.NoError(t, err)
	assert.Equal(t, "a.png", name)
	assert.Equal(t, []string{"/2024/01/a.png"}, store.existsCalls)
}

func TestResolveSkipsTakenNames(t *testing.T) {
	store := newFakeStore()
	store.Put("2024/01/a.png", []byte("x"))
	store.Put("2024/01/a-1.png", []byte("x"))
	r := NewUniqueNameResolver(store)

	name, err := r.Resolve(context.Background(), "a.png", "/2024/01")
	require.NoError(t, err)
	assert.Equal(t, "a-2.png", name)
	assert.Equal(t, []string{"/2024/01/a.png", "/2024/01/a-1.png", "/2024/01/a-2.png"}, store.existsCalls)
}

func TestResolveIdempotent(t *testing.T) {
	store := newFakeStore()
	store.Put("dir/a.png", []byte("x"))
	r := NewUniqueNameResolver(store)

	first, err := r.Resolve(context.Background(), "a.png", "dir")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), "a.png", "dir")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := r.Resolve(context.Background(), first, "dir")
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestResolveNameVariants(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"archive.tar.gz", "archive.tar-1.gz"},
		{"README", "README-1"},
		{".htaccess", "-1.htaccess"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.Put("d/"+tt.name, []byte("x"))
			got, err := NewUniqueNameResolver(store).Resolve(context.Background(), tt.name, "d")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePropagatesStoreError(t *testing.T) {
	store := newFakeStore()
	store.existsErr = errRejected
	_, err := NewUniqueNameResolver(store).Resolve(context.Background(), "a.png", "d")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errRejected))
}

func TestResolveStopsOnCancel(t *testing.T) {
	store := newFakeStore()
	store.alwaysExist = true
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.onExists = func(calls int) {
		if calls == 5 {
			cancel()
		}
	}

	_, err := NewUniqueNameResolver(store).Resolve(ctx, "a.png", "d")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, store.existsCalls, 5)
}
