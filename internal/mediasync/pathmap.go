package mediasync

import "strings"

// PathMapper translates local file paths into remote keys.
type PathMapper struct {
	localRoot    string
	remoteRoot   string
	fallbackRoot string
}

// NewPathMapper builds a mapper. fallbackRoot (the host's generic upload
// root) is stripped instead of localRoot when localRoot is empty.
func NewPathMapper(localRoot, remoteRoot, fallbackRoot string) PathMapper {
	return PathMapper{localRoot: localRoot, remoteRoot: remoteRoot, fallbackRoot: fallbackRoot}
}

// Map removes the first occurrence of the local root from localPath and
// prepends the remote root. A path outside the local root is appended to the
// remote root verbatim.
func (m PathMapper) Map(localPath string) string {
	root := m.localRoot
	if root == "" {
		root = m.fallbackRoot
	}
	rel := localPath
	if root != "" {
		rel = strings.Replace(localPath, root, "", 1)
	}
	return m.remoteRoot + rel
}
