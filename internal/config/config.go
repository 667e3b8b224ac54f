// Package config loads the ctxpack configuration and the ignore rules applied to walked directories.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/temirov/ctxpack/internal/utils"
)

// gitDirectoryPattern represents the pattern that matches the Git directory.
const gitDirectoryPattern = utils.GitDirectoryName + "/"

// GitIgnoreMatcher applies one .gitignore file to the paths below the directory that holds it.
type GitIgnoreMatcher struct {
	Directory string
	matcher   gitignore.IgnoreMatcher
}

// Matches reports whether path is ignored by the .gitignore file. Paths outside
// the matcher directory never match.
func (gitIgnoreMatcher GitIgnoreMatcher) Matches(path string, isDirectory bool) bool {
	relativePath, relativeError := filepath.Rel(gitIgnoreMatcher.Directory, path)
	if relativeError != nil || relativePath == "." || relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(filepath.Separator)) {
		return false
	}
	return gitIgnoreMatcher.matcher.Match(path, isDirectory)
}

// IgnoreRules decides which entries below Root are left out of a walk.
type IgnoreRules struct {
	Root string
	// Patterns are evaluated against paths relative to Root.
	Patterns  []string
	GitIgnore []GitIgnoreMatcher
}

// Ignores reports whether path, located below Root, matches an exclusion pattern
// or a .gitignore file in one of its ancestor directories.
func (rules IgnoreRules) Ignores(path string, isDirectory bool) bool {
	if len(rules.Patterns) > 0 && utils.ShouldIgnoreByPath(utils.RelativePathOrSelf(path, rules.Root), isDirectory, rules.Patterns) {
		return true
	}
	for _, gitIgnoreMatcher := range rules.GitIgnore {
		if gitIgnoreMatcher.Matches(path, isDirectory) {
			return true
		}
	}
	return false
}

// LoadIgnoreRules builds the ignore rules of a walk rooted at rootDirectoryPath.
// The trimmed exclusionPatterns always apply. When useGitignore is true, every
// utils.GitIgnoreFileName below the root that is not itself ignored contributes a
// matcher scoped to its own directory, and the utils.GitDirectoryName directory is
// excluded. When a .gitignore file cannot be read the returned rules keep only the
// exclusion patterns alongside the error.
func LoadIgnoreRules(rootDirectoryPath string, exclusionPatterns []string, useGitignore bool) (IgnoreRules, error) {
	var patterns []string
	if useGitignore {
		patterns = append(patterns, gitDirectoryPattern)
	}
	for _, pattern := range exclusionPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		patterns = append(patterns, trimmedPattern)
	}
	rules := IgnoreRules{Root: rootDirectoryPath, Patterns: utils.DeduplicatePatterns(patterns)}
	if !useGitignore {
		return rules, nil
	}

	walkFunction := func(currentDirectoryPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return walkError
		}
		if !directoryEntry.IsDir() {
			return nil
		}
		if currentDirectoryPath != rootDirectoryPath && rules.Ignores(currentDirectoryPath, true) {
			return filepath.SkipDir
		}

		gitIgnoreFilePath := filepath.Join(currentDirectoryPath, utils.GitIgnoreFileName)
		if _, statError := os.Lstat(gitIgnoreFilePath); statError != nil {
			return nil
		}
		matcher, loadError := gitignore.NewGitIgnore(gitIgnoreFilePath)
		if loadError != nil {
			return fmt.Errorf("loading %s from %s: %w", utils.GitIgnoreFileName, currentDirectoryPath, loadError)
		}
		rules.GitIgnore = append(rules.GitIgnore, GitIgnoreMatcher{Directory: currentDirectoryPath, matcher: matcher})
		return nil
	}

	if walkError := filepath.WalkDir(rootDirectoryPath, walkFunction); walkError != nil {
		rules.GitIgnore = nil
		return rules, walkError
	}
	return rules, nil
}
