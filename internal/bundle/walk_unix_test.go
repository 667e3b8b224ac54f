//go:build unix

package bundle

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWalkDirectorySkipsSpecialFiles(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{"src/Index.ets": "i"})
	pipePath := filepath.Join(root, "src", "Pipe.ets")
	if err := syscall.Mkfifo(pipePath, 0o600); err != nil {
		t.Skipf("named pipes unavailable: %v", err)
	}
	if err := os.Symlink(pipePath, filepath.Join(root, "src", "PipeLink.ets")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	fragments := WalkDirectory(NewResolver(root), filepath.Join(root, "src"), WalkOptions{Extensions: []string{".ets"}})

	if diff := cmp.Diff([]string{"src/Index.ets"}, fragmentPaths(fragments)); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}
}
