// Package bundle renders configured project sections into a single Markdown document.
package bundle

import (
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ctxpack/internal/config"
	"github.com/temirov/ctxpack/internal/types"
	"github.com/temirov/ctxpack/internal/utils"
)

const (
	logSectionMessage   = "Processing section"
	logDirectoryMessage = "Processing directory"
	logFileMessage      = "Processing file"
	logWarningMessage   = "Warning"
	logErrorMessage     = "Error"
)

// Document is the assembled bundle together with its structured outcome.
type Document struct {
	Text     string
	Sections []SectionResult
}

// Fragments returns every fragment of the document in output order.
func (document Document) Fragments() []Fragment {
	var fragments []Fragment
	for _, section := range document.Sections {
		fragments = append(fragments, section.Fragments()...)
	}
	return fragments
}

// Issues returns every warning and error rendered into the document.
func (document Document) Issues() []types.Issue {
	var issues []types.Issue
	for _, fragment := range document.Fragments() {
		if fragment.Issue != nil {
			issues = append(issues, *fragment.Issue)
		}
	}
	return issues
}

// Summary aggregates the rendered files and issues of the document.
func (document Document) Summary() types.OutputSummary {
	var summary types.OutputSummary
	var totalBytes int64
	for _, fragment := range document.Fragments() {
		if fragment.IsFile() {
			summary.TotalFiles++
			totalBytes += fragment.SizeBytes
			continue
		}
		summary.TotalIssues++
	}
	summary.TotalSize = utils.FormatFileSize(totalBytes)
	return summary
}

// Assembler renders configurations into documents and reports progress to a logger.
type Assembler struct {
	logger *zap.Logger
}

// NewAssembler returns an Assembler. A nil logger discards progress messages.
func NewAssembler(logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{logger: logger}
}

// Assemble renders every configured section in order and appends the instruction block.
// The result depends only on the configuration and the file system contents.
func (assembler *Assembler) Assemble(configuration config.Configuration) Document {
	resolver := NewResolver(configuration.BaseDirectory)
	var builder strings.Builder
	document := Document{}

	for _, section := range configuration.Sections {
		assembler.logger.Info(logSectionMessage, zap.String("title", section.DisplayTitle()))
		sectionResult := BuildSection(resolver, section)
		builder.WriteString(sectionResult.Banner)
		for _, pathResult := range sectionResult.Paths {
			if pathResult.Kind == PathKindDirectory {
				assembler.logger.Info(logDirectoryMessage, zap.String("path", resolver.Display(pathResult.Absolute)))
			}
			for _, fragment := range pathResult.Fragments {
				assembler.logFragment(fragment)
				builder.WriteString(fragment.Text)
			}
		}
		document.Sections = append(document.Sections, sectionResult)
	}

	builder.WriteString(configuration.Instructions)
	document.Text = builder.String()
	return document
}

func (assembler *Assembler) logFragment(fragment Fragment) {
	if fragment.Issue == nil || fragment.Issue.Kind == types.IssueMissingFile || fragment.Issue.Kind == types.IssueReadFailure {
		assembler.logger.Info(logFileMessage, zap.String("path", fragment.Path))
	}
	if fragment.Issue == nil {
		return
	}
	fields := []zap.Field{
		zap.String("kind", fragment.Issue.Kind),
		zap.String("path", fragment.Issue.Path),
		zap.String("cause", fragment.Issue.Cause),
	}
	if fragment.Issue.Kind == types.IssueReadFailure || fragment.Issue.Kind == types.IssueDirectoryReadFailure {
		assembler.logger.Error(logErrorMessage, fields...)
		return
	}
	assembler.logger.Warn(logWarningMessage, fields...)
}
