package mediasync

import (
	"path/filepath"
	"strings"

	"github.com/thebluefowl/spacesync/internal/host"
)

// ExpandVariants lists every local file belonging to one asset: the original
// first, then each size variant in metadata order. Variants are siblings of
// the original, so without an original file there is nothing to anchor them
// to and none are returned.
func ExpandVariants(baseDir string, md *host.Metadata) []string {
	if md == nil || md.File == "" {
		return nil
	}

	original := baseDir + "/" + md.File
	paths := []string{original}

	basepath := original
	if name := filepath.Base(original); filepath.Ext(name) != "" {
		basepath = strings.TrimSuffix(original, name)
	}

	for _, size := range md.Sizes {
		if size.File == "" {
			continue
		}
		paths = append(paths, basepath+size.File)
	}
	return paths
}
