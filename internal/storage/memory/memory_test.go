package memory

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebluefowl/spacesync/internal/storage"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	ok, err := s.Exists(ctx, "/media/a.png")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Write(ctx, "/media/a.png", strings.NewReader("png"), storage.WriteOptions{Visibility: storage.VisibilityPublic}))

	ok, err = s.Exists(ctx, "media/a.png")
	require.NoError(t, err)
	assert.True(t, ok, "leading slash addresses the same object")

	var buf bytes.Buffer
	require.NoError(t, s.Read(ctx, "media/a.png", &buf))
	assert.Equal(t, "png", buf.String())

	obj, _ := s.Get("media/a.png")
	assert.Equal(t, storage.VisibilityPublic, obj.Visibility)
	assert.Equal(t, "image/png", obj.ContentType)

	require.NoError(t, s.Delete(ctx, "/media/a.png"))
	assert.Zero(t, s.Len())
}

func TestStoreMissingObject(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.Delete(ctx, "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, "NoSuchKey", storage.Code(err))

	err = s.Read(ctx, "nope", &bytes.Buffer{})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreList(t *testing.T) {
	s := New()
	s.Put("b/2.txt", []byte("22"))
	s.Put("a/1.txt", []byte("1"))
	s.Put("b/1.txt", []byte("333"))

	infos, err := s.List(context.Background(), "/b/")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "b/1.txt", infos[0].Key)
	assert.Equal(t, int64(3), infos[0].Size)
	assert.Equal(t, "b/2.txt", infos[1].Key)
}
