package bundle

import (
	"path/filepath"

	"github.com/temirov/ctxpack/internal/utils"
)

// Resolver anchors configured paths at a base directory.
type Resolver struct {
	baseDirectory string
}

// NewResolver returns a Resolver rooted at baseDirectory.
func NewResolver(baseDirectory string) Resolver {
	absoluteBase, err := filepath.Abs(baseDirectory)
	if err != nil {
		absoluteBase = filepath.Clean(baseDirectory)
	}
	return Resolver{baseDirectory: absoluteBase}
}

// BaseDirectory returns the absolute base directory.
func (resolver Resolver) BaseDirectory() string {
	return resolver.baseDirectory
}

// Resolve returns path as an absolute path. Relative paths are joined to the base directory.
func (resolver Resolver) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(resolver.baseDirectory, path)
}

// Display returns the forward-slash form of absolutePath relative to the base directory.
func (resolver Resolver) Display(absolutePath string) string {
	return utils.RelativePathOrSelf(absolutePath, resolver.baseDirectory)
}
