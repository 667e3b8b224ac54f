package bundle

import (
	"fmt"

	"github.com/temirov/ctxpack/internal/types"
)

const (
	sectionBannerFormat        = "--- %s ---\n\n"
	fencedFileFormat           = "```%s\n// File: %s\n\n%s\n```\n\n"
	missingFileFormat          = "--- [WARNING] File not found: %s ---\n\n"
	missingDirectoryFormat     = "--- [WARNING] Directory not found: %s ---\n\n"
	missingPathFormat          = "--- [WARNING] Path not found: %s ---\n\n"
	readFailureFormat          = "--- [ERROR] Failed to read file: %s, reason: %s ---\n\n"
	directoryReadFailureFormat = "--- [ERROR] Failed to read directory: %s, reason: %s ---\n\n"
	ignoreRulesFormat          = "--- [WARNING] Ignore rules unavailable: %s, reason: %s ---\n\n"
)

// Fragment is one rendered unit of the bundle: a fenced file or an inline problem report.
type Fragment struct {
	// Path is the display path relative to the base directory.
	Path     string
	Text     string
	Language string
	// SizeBytes is the length of the rendered file content.
	SizeBytes int64
	Issue     *types.Issue
}

// IsFile reports whether the fragment carries file content.
func (fragment Fragment) IsFile() bool {
	return fragment.Issue == nil
}

func fileFragment(displayPath, language, content string) Fragment {
	return Fragment{
		Path:      displayPath,
		Text:      fmt.Sprintf(fencedFileFormat, language, displayPath, content),
		Language:  language,
		SizeBytes: int64(len(content)),
	}
}

func issueFragment(kind, displayPath, cause string) Fragment {
	issue := &types.Issue{Kind: kind, Path: displayPath, Cause: cause}
	var text string
	switch kind {
	case types.IssueMissingFile:
		text = fmt.Sprintf(missingFileFormat, displayPath)
	case types.IssueMissingDirectory:
		text = fmt.Sprintf(missingDirectoryFormat, displayPath)
	case types.IssueMissingPath:
		text = fmt.Sprintf(missingPathFormat, displayPath)
	case types.IssueDirectoryReadFailure:
		text = fmt.Sprintf(directoryReadFailureFormat, displayPath, cause)
	case types.IssueIgnoreRules:
		text = fmt.Sprintf(ignoreRulesFormat, displayPath, cause)
	default:
		text = fmt.Sprintf(readFailureFormat, displayPath, cause)
	}
	return Fragment{Path: displayPath, Text: text, Issue: issue}
}
