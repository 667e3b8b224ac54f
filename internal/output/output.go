// Package output delivers an assembled bundle to its destinations and formats run summaries.
package output

import (
	"fmt"

	"github.com/temirov/ctxpack/internal/types"
)

// FormatSummaryLine formats an OutputSummary into the one-line run summary.
func FormatSummaryLine(summary *types.OutputSummary) string {
	if summary == nil {
		summary = &types.OutputSummary{}
	}
	label := "files"
	if summary.TotalFiles == 1 {
		label = "file"
	}
	issues := ""
	if summary.TotalIssues > 0 {
		issueLabel := "issues"
		if summary.TotalIssues == 1 {
			issueLabel = "issue"
		}
		issues = fmt.Sprintf(", %d %s", summary.TotalIssues, issueLabel)
	}
	extra := ""
	if summary.TotalTokens > 0 {
		extra = fmt.Sprintf(", %d tokens", summary.TotalTokens)
	}
	modelSuffix := ""
	if summary.TotalTokens > 0 && summary.Model != "" {
		modelSuffix = fmt.Sprintf(" (model: %s)", summary.Model)
	}
	return fmt.Sprintf("Summary: %d %s, %s%s%s%s", summary.TotalFiles, label, summary.TotalSize, issues, extra, modelSuffix)
}
