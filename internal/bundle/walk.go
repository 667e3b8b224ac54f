package bundle

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/temirov/ctxpack/internal/config"
	"github.com/temirov/ctxpack/internal/types"
	"github.com/temirov/ctxpack/internal/utils"
)

// WalkOptions selects the files rendered by WalkDirectory.
type WalkOptions struct {
	// Extensions are plain filename suffixes such as ".ets".
	Extensions []string
	Ignore     config.IgnoreRules
}

// WalkDirectory renders every file below directoryPath whose name ends with one of
// the configured extensions. Within a directory, matching files are rendered in
// name order before subdirectories, which are visited in name order as well.
// Symbolic links to directories are not followed, and entries that are neither
// directories nor regular files, such as named pipes or sockets, are skipped.
func WalkDirectory(resolver Resolver, directoryPath string, options WalkOptions) []Fragment {
	info, statError := os.Stat(directoryPath)
	if statError != nil || !info.IsDir() {
		cause := "not a directory"
		if statError != nil {
			cause = describeError(statError)
		}
		return []Fragment{issueFragment(types.IssueMissingDirectory, resolver.Display(directoryPath), cause)}
	}

	walker := directoryWalker{resolver: resolver, options: options}
	walker.walk(directoryPath)
	return walker.fragments
}

type directoryWalker struct {
	resolver  Resolver
	options   WalkOptions
	fragments []Fragment
}

func (walker *directoryWalker) walk(directoryPath string) {
	entries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		walker.fragments = append(walker.fragments, issueFragment(types.IssueDirectoryReadFailure, walker.resolver.Display(directoryPath), describeError(readError)))
		return
	}

	var fileNames []string
	var directoryNames []string
	for _, entry := range entries {
		entryPath := filepath.Join(directoryPath, entry.Name())
		isDirectory := entry.IsDir()
		if !isDirectory && !entry.Type().IsRegular() {
			target, statError := os.Stat(entryPath)
			if statError == nil && !target.Mode().IsRegular() {
				continue
			}
		}
		if walker.options.Ignore.Ignores(entryPath, isDirectory) {
			continue
		}
		if isDirectory {
			directoryNames = append(directoryNames, entry.Name())
			continue
		}
		if utils.HasAnySuffix(entry.Name(), walker.options.Extensions) {
			fileNames = append(fileNames, entry.Name())
		}
	}

	sort.Strings(fileNames)
	sort.Strings(directoryNames)

	for _, fileName := range fileNames {
		walker.fragments = append(walker.fragments, RenderFile(walker.resolver, filepath.Join(directoryPath, fileName)))
	}
	for _, directoryName := range directoryNames {
		walker.walk(filepath.Join(directoryPath, directoryName))
	}
}
