package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/ctxpack/internal/utils"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if mkdirError := os.MkdirAll(filepath.Dir(filePath), 0o755); mkdirError != nil {
		testingHandle.Fatalf("failed to create directory for %s: %v", filePath, mkdirError)
	}
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// TestLoadIgnoreRulesScopesNestedGitIgnore verifies that each .gitignore file only applies below its own directory.
func TestLoadIgnoreRulesScopesNestedGitIgnore(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.GitIgnoreFileName), "# comment\nbuild/\n/Local.ts\n*.ets\n!keep.ets\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "deep", utils.GitIgnoreFileName), "generated/mock.ts\n*.tmp\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.GitDirectoryName, utils.GitIgnoreFileName), "never-read\n")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "build", utils.GitIgnoreFileName), "never-read\n")

	ignoreRules, loadError := LoadIgnoreRules(rootDirectory, []string{" extra/ ", "", "*.log", "*.log"}, true)
	if loadError != nil {
		testingHandle.Fatalf("LoadIgnoreRules failed: %v", loadError)
	}

	expectedPatterns := []string{gitDirectoryPattern, "extra/", "*.log"}
	if !reflect.DeepEqual(ignoreRules.Patterns, expectedPatterns) {
		testingHandle.Fatalf("unexpected patterns: got %v want %v", ignoreRules.Patterns, expectedPatterns)
	}
	if len(ignoreRules.GitIgnore) != 2 {
		testingHandle.Fatalf("expected root and deep .gitignore matchers, got %d", len(ignoreRules.GitIgnore))
	}

	testCases := []struct {
		relativePath string
		isDirectory  bool
		expected     bool
	}{
		{relativePath: "build", isDirectory: true, expected: true},
		{relativePath: "deep/build", isDirectory: true, expected: true},
		{relativePath: "build", isDirectory: false, expected: false},
		{relativePath: "Local.ts", expected: true},
		{relativePath: "deep/Local.ts", expected: false},
		{relativePath: "deep/View.ets", expected: true},
		{relativePath: "keep.ets", expected: false},
		{relativePath: "deep/keep.ets", expected: false},
		{relativePath: "deep/cache.tmp", expected: true},
		{relativePath: "cache.tmp", expected: false},
		{relativePath: "deep/generated/mock.ts", expected: true},
		{relativePath: "generated/mock.ts", expected: false},
		{relativePath: "deep/extra", isDirectory: true, expected: true},
		{relativePath: "trace.log", expected: true},
		{relativePath: utils.GitDirectoryName, isDirectory: true, expected: true},
	}
	for _, testCase := range testCases {
		fullPath := filepath.Join(rootDirectory, filepath.FromSlash(testCase.relativePath))
		if actual := ignoreRules.Ignores(fullPath, testCase.isDirectory); actual != testCase.expected {
			testingHandle.Errorf("Ignores(%s, %v) = %v, want %v", testCase.relativePath, testCase.isDirectory, actual, testCase.expected)
		}
	}
}

// TestLoadIgnoreRulesWithoutGitignore verifies that only exclusion patterns apply when .gitignore use is disabled.
func TestLoadIgnoreRulesWithoutGitignore(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.GitIgnoreFileName), "build/\n")

	ignoreRules, loadError := LoadIgnoreRules(rootDirectory, []string{"*.test.ets"}, false)
	if loadError != nil {
		testingHandle.Fatalf("LoadIgnoreRules failed: %v", loadError)
	}
	if !reflect.DeepEqual(ignoreRules.Patterns, []string{"*.test.ets"}) {
		testingHandle.Fatalf("unexpected patterns: %v", ignoreRules.Patterns)
	}
	if len(ignoreRules.GitIgnore) != 0 {
		testingHandle.Fatalf("expected no .gitignore matchers, got %d", len(ignoreRules.GitIgnore))
	}
	if ignoreRules.Ignores(filepath.Join(rootDirectory, "build"), true) {
		testingHandle.Fatalf("build/ from .gitignore must not apply")
	}
}

// TestLoadIgnoreRulesUnreadableGitIgnore verifies that a .gitignore that cannot be opened is an error
// while the exclusion patterns are still returned.
func TestLoadIgnoreRulesUnreadableGitIgnore(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission checks do not apply to root")
	}
	rootDirectory := testingHandle.TempDir()
	gitIgnorePath := filepath.Join(rootDirectory, "nested", utils.GitIgnoreFileName)
	writeTestFile(testingHandle, gitIgnorePath, "*.ets\n")
	if chmodError := os.Chmod(gitIgnorePath, 0o000); chmodError != nil {
		testingHandle.Fatalf("chmod: %v", chmodError)
	}
	testingHandle.Cleanup(func() { _ = os.Chmod(gitIgnorePath, 0o644) })

	ignoreRules, loadError := LoadIgnoreRules(rootDirectory, []string{"mocks/"}, true)
	if loadError == nil {
		testingHandle.Fatalf("expected an error for the unreadable .gitignore")
	}
	if len(ignoreRules.GitIgnore) != 0 {
		testingHandle.Fatalf("expected no .gitignore matchers after a failure, got %d", len(ignoreRules.GitIgnore))
	}
	if !ignoreRules.Ignores(filepath.Join(rootDirectory, "mocks"), true) {
		testingHandle.Fatalf("exclusion patterns must survive a .gitignore failure")
	}
}

// TestLoadIgnoreRulesSkipsUnreadableDirectory verifies that a directory that cannot be listed does not fail the load.
func TestLoadIgnoreRulesSkipsUnreadableDirectory(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission checks do not apply to root")
	}
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, utils.GitIgnoreFileName), "*.tmp\n")
	lockedDirectory := filepath.Join(rootDirectory, "locked")
	writeTestFile(testingHandle, filepath.Join(lockedDirectory, "Inner.ets"), "inner")
	if chmodError := os.Chmod(lockedDirectory, 0o000); chmodError != nil {
		testingHandle.Fatalf("chmod: %v", chmodError)
	}
	testingHandle.Cleanup(func() { _ = os.Chmod(lockedDirectory, 0o755) })

	ignoreRules, loadError := LoadIgnoreRules(rootDirectory, nil, true)
	if loadError != nil {
		testingHandle.Fatalf("LoadIgnoreRules failed: %v", loadError)
	}
	if len(ignoreRules.GitIgnore) != 1 {
		testingHandle.Fatalf("expected the root .gitignore matcher, got %d", len(ignoreRules.GitIgnore))
	}
}
