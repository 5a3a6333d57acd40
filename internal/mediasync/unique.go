package mediasync

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/thebluefowl/spacesync/internal/storage"
)

// UniqueNameResolver picks file names that do not collide with remote objects.
type UniqueNameResolver struct {
	store storage.Store
}

func NewUniqueNameResolver(store storage.Store) UniqueNameResolver {
	return UniqueNameResolver{store: store}
}

// Resolve returns name if dir/name is free, otherwise the first free
// "stem-N.ext" for N = 1, 2, ... There is no iteration cap; cancel ctx to
// bound the search.
func (r UniqueNameResolver) Resolve(ctx context.Context, name, dir string) (string, error) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		exists, err := r.store.Exists(ctx, dir+"/"+candidate)
		if err != nil {
			return "", fmt.Errorf("check %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d%s", stem, n, ext)
	}
}
