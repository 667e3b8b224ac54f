package bundle

import (
	"fmt"
	"os"

	"github.com/temirov/ctxpack/internal/config"
	"github.com/temirov/ctxpack/internal/types"
)

// PathKind classifies a configured section path.
type PathKind string

const (
	PathKindFile      PathKind = "file"
	PathKindDirectory PathKind = "directory"
	PathKindMissing   PathKind = "missing"
)

// PathResult holds the fragments rendered for one configured path.
type PathResult struct {
	Configured string
	Absolute   string
	Kind       PathKind
	Fragments  []Fragment
}

// SectionResult holds the banner and rendered paths of one section.
type SectionResult struct {
	Title  string
	Banner string
	Paths  []PathResult
}

// Fragments returns every fragment of the section in output order.
func (result SectionResult) Fragments() []Fragment {
	var fragments []Fragment
	for _, path := range result.Paths {
		fragments = append(fragments, path.Fragments...)
	}
	return fragments
}

// BuildSection renders one section. Directories are filtered by the section's
// extensions; files listed directly are always rendered regardless of suffix.
func BuildSection(resolver Resolver, section types.Section) SectionResult {
	title := section.DisplayTitle()
	result := SectionResult{
		Title:  title,
		Banner: fmt.Sprintf(sectionBannerFormat, title),
	}

	for _, configuredPath := range section.Paths {
		absolutePath := resolver.Resolve(configuredPath)
		pathResult := PathResult{Configured: configuredPath, Absolute: absolutePath}

		info, statError := os.Stat(absolutePath)
		switch {
		case statError == nil && info.IsDir():
			pathResult.Kind = PathKindDirectory
			options, ignoreIssue := walkOptionsFor(resolver, absolutePath, section)
			if ignoreIssue != nil {
				pathResult.Fragments = append(pathResult.Fragments, *ignoreIssue)
			}
			pathResult.Fragments = append(pathResult.Fragments, WalkDirectory(resolver, absolutePath, options)...)
		case statError == nil && info.Mode().IsRegular():
			pathResult.Kind = PathKindFile
			pathResult.Fragments = []Fragment{RenderFile(resolver, absolutePath)}
		default:
			cause := "not a regular file or directory"
			if statError != nil {
				cause = describeError(statError)
			}
			pathResult.Kind = PathKindMissing
			pathResult.Fragments = []Fragment{issueFragment(types.IssueMissingPath, resolver.Display(absolutePath), cause)}
		}

		result.Paths = append(result.Paths, pathResult)
	}

	return result
}

// walkOptionsFor builds the walk options of a section directory. When the
// .gitignore rules cannot be loaded the walk continues with the section's own
// exclusions and the returned fragment reports the problem.
func walkOptionsFor(resolver Resolver, directoryPath string, section types.Section) (WalkOptions, *Fragment) {
	options := WalkOptions{Extensions: section.Extensions}
	if len(section.Exclude) == 0 && !section.UseGitignore {
		return options, nil
	}
	ignoreRules, loadError := config.LoadIgnoreRules(directoryPath, section.Exclude, section.UseGitignore)
	options.Ignore = ignoreRules
	if loadError == nil {
		return options, nil
	}
	fragment := issueFragment(types.IssueIgnoreRules, resolver.Display(directoryPath), loadError.Error())
	return options, &fragment
}
