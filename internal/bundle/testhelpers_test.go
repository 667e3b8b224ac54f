package bundle

import (
	"os"
	"path/filepath"
	"testing"
)

// writeProjectFiles creates files relative to root, creating parent directories as needed.
func writeProjectFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for relativePath, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("create directory for %s: %v", relativePath, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", relativePath, err)
		}
	}
}

func fragmentPaths(fragments []Fragment) []string {
	paths := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		paths = append(paths, fragment.Path)
	}
	return paths
}
