// Package types defines every cross‑package data structure used by the ctxpack CLI.
package types

const (
	IssueMissingFile          = "missing_file"
	IssueMissingDirectory     = "missing_directory"
	IssueMissingPath          = "missing_path"
	IssueReadFailure          = "read_failure"
	IssueDirectoryReadFailure = "directory_read_failure"
	IssueIgnoreRules          = "ignore_rules"

	// UntitledSectionTitle replaces an empty section title in the banner.
	UntitledSectionTitle = "Untitled section"
)

// Section is one titled group of paths rendered into the bundle.
type Section struct {
	Title        string   `mapstructure:"title" yaml:"title"`
	Paths        []string `mapstructure:"paths" yaml:"paths"`
	Extensions   []string `mapstructure:"extensions" yaml:"extensions"`
	Exclude      []string `mapstructure:"exclude" yaml:"exclude,omitempty"`
	UseGitignore bool     `mapstructure:"use_gitignore" yaml:"use_gitignore,omitempty"`
}

// DisplayTitle returns the title used in the section banner.
func (section Section) DisplayTitle() string {
	if section.Title == "" {
		return UntitledSectionTitle
	}
	return section.Title
}

// Issue records a warning or error that was rendered inline into the bundle.
type Issue struct {
	Kind  string
	Path  string
	Cause string
}

// OutputSummary captures aggregate information about a rendered bundle.
type OutputSummary struct {
	TotalFiles  int
	TotalSize   string
	TotalIssues int
	TotalTokens int
	Model       string
}
