package memory

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/thebluefowl/spacesync/internal/storage"
)

var (
	_ storage.Store  = (*Store)(nil)
	_ storage.Lister = (*Store)(nil)
)

// Object is a stored payload with the options it was written with.
type Object struct {
	Data        []byte
	Visibility  storage.Visibility
	ContentType string
}

// Store keeps objects in process memory. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	objects map[string]Object
}

// New returns an empty store.
func New() *Store {
	return &Store{objects: make(map[string]Object)}
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[storage.NormalizeKey(key)]
	return ok, nil
}

func (s *Store) Write(ctx context.Context, key string, body io.Reader, opts storage.WriteOptions) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	key = storage.NormalizeKey(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = Object{
		Data:        data,
		Visibility:  opts.Visibility,
		ContentType: storage.ContentType(key, opts.ContentType),
	}
	return nil
}

func (s *Store) Read(ctx context.Context, key string, w io.Writer) error {
	s.mu.Lock()
	obj, ok := s.objects[storage.NormalizeKey(key)]
	s.mu.Unlock()
	if !ok {
		return &storage.Error{Op: "get", Key: key, Code: "NoSuchKey", Err: storage.ErrNotFound}
	}
	_, err := w.Write(obj.Data)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	key = storage.NormalizeKey(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return &storage.Error{Op: "delete", Key: key, Code: "NoSuchKey", Err: storage.ErrNotFound}
	}
	delete(s.objects, key)
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	prefix = storage.NormalizeKey(prefix)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []storage.ObjectInfo
	for key, obj := range s.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, storage.ObjectInfo{Key: key, Size: int64(len(obj.Data))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Get returns the stored object for assertions.
func (s *Store) Get(key string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[storage.NormalizeKey(key)]
	if !ok {
		return Object{}, false
	}
	obj.Data = append([]byte(nil), obj.Data...)
	return obj, true
}

// Put seeds an object directly.
func (s *Store) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storage.NormalizeKey(key)] = Object{Data: append([]byte(nil), data...)}
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
