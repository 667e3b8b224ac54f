package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/temirov/ctxpack/internal/config"
	"github.com/temirov/ctxpack/internal/types"
)

func TestWalkDirectorySortsAndFilters(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		"pages/b.ets":           "b",
		"pages/a.ets":           "a",
		"pages/c.json":          "{}",
		"pages/zeta/d.ets":      "d",
		"pages/alpha/e.ets":     "e",
		"pages/alpha/deep/f.ts": "f",
	})

	fragments := WalkDirectory(NewResolver(root), filepath.Join(root, "pages"), WalkOptions{Extensions: []string{".ets"}})

	expected := []string{"pages/a.ets", "pages/b.ets", "pages/alpha/e.ets", "pages/zeta/d.ets"}
	if diff := cmp.Diff(expected, fragmentPaths(fragments)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	for _, fragment := range fragments {
		if strings.Contains(fragment.Text, "c.json") {
			t.Fatalf("json file should have been filtered out")
		}
	}
}

func TestWalkDirectoryMatchesPlainSuffix(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		"notes.html.ets": "n",
		"foo.notets":     "x",
	})
	resolver := NewResolver(root)

	dotted := WalkDirectory(resolver, root, WalkOptions{Extensions: []string{".ets"}})
	if diff := cmp.Diff([]string{"notes.html.ets"}, fragmentPaths(dotted)); diff != "" {
		t.Fatalf("unexpected dotted matches (-want +got):\n%s", diff)
	}
	undotted := WalkDirectory(resolver, root, WalkOptions{Extensions: []string{"ets"}})
	if diff := cmp.Diff([]string{"foo.notets", "notes.html.ets"}, fragmentPaths(undotted)); diff != "" {
		t.Fatalf("unexpected undotted matches (-want +got):\n%s", diff)
	}
}

func TestWalkDirectoryReportsMissingDirectory(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{"file.ets": "x"})
	resolver := NewResolver(root)

	testCases := []struct {
		name         string
		path         string
		expectedText string
	}{
		{name: "missing", path: filepath.Join(root, "nowhere"), expectedText: "--- [WARNING] Directory not found: nowhere ---\n\n"},
		{name: "regular file", path: filepath.Join(root, "file.ets"), expectedText: "--- [WARNING] Directory not found: file.ets ---\n\n"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			fragments := WalkDirectory(resolver, testCase.path, WalkOptions{Extensions: []string{".ets"}})
			if len(fragments) != 1 {
				t.Fatalf("expected one fragment, got %d", len(fragments))
			}
			if fragments[0].Issue == nil || fragments[0].Issue.Kind != types.IssueMissingDirectory {
				t.Fatalf("expected missing directory issue, got %+v", fragments[0])
			}
			if fragments[0].Text != testCase.expectedText {
				t.Fatalf("unexpected text %q", fragments[0].Text)
			}
		})
	}
}

func TestWalkDirectoryHonorsIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		"src/Index.ets":         "i",
		"src/Index.test.ets":    "t",
		"src/build/Gen.ets":     "g",
		"src/feature/build.ets": "b",
		"src/feature/View.ets":  "v",
	})

	sourceDirectory := filepath.Join(root, "src")
	fragments := WalkDirectory(NewResolver(root), sourceDirectory, WalkOptions{
		Extensions: []string{".ets"},
		Ignore:     config.IgnoreRules{Root: sourceDirectory, Patterns: []string{"build/", "*.test.ets"}},
	})

	expected := []string{"src/Index.ets", "src/feature/View.ets", "src/feature/build.ets"}
	if diff := cmp.Diff(expected, fragmentPaths(fragments)); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}
}

func TestWalkDirectoryDoesNotFollowDirectoryLinks(t *testing.T) {
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		"src/Index.ets":     "i",
		"shared/Common.ets": "c",
	})
	if err := os.Symlink(filepath.Join(root, "shared"), filepath.Join(root, "src", "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "shared", "Common.ets"), filepath.Join(root, "src", "Alias.ets")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	fragments := WalkDirectory(NewResolver(root), filepath.Join(root, "src"), WalkOptions{Extensions: []string{".ets"}})

	expected := []string{"src/Alias.ets", "src/Index.ets"}
	if diff := cmp.Diff(expected, fragmentPaths(fragments)); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}
}

func TestWalkDirectoryReportsUnreadableSubdirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := t.TempDir()
	writeProjectFiles(t, root, map[string]string{
		"src/Index.ets":         "i",
		"src/locked/Hidden.ets": "h",
		"src/open/View.ets":     "v",
	})
	lockedDirectory := filepath.Join(root, "src", "locked")
	if err := os.Chmod(lockedDirectory, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(lockedDirectory, 0o755) })

	fragments := WalkDirectory(NewResolver(root), filepath.Join(root, "src"), WalkOptions{Extensions: []string{".ets"}})

	expected := []string{"src/Index.ets", "src/locked", "src/open/View.ets"}
	if diff := cmp.Diff(expected, fragmentPaths(fragments)); diff != "" {
		t.Fatalf("unexpected paths (-want +got):\n%s", diff)
	}
	failure := fragments[1]
	if failure.Issue == nil || failure.Issue.Kind != types.IssueDirectoryReadFailure {
		t.Fatalf("expected directory read failure, got %+v", failure)
	}
	if !strings.HasPrefix(failure.Text, "--- [ERROR] Failed to read directory: src/locked, reason: ") {
		t.Fatalf("unexpected text %q", failure.Text)
	}
	if !fragments[2].IsFile() {
		t.Fatalf("expected the sibling directory to be rendered, got %+v", fragments[2])
	}
}
