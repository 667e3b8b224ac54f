package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/ctxpack/internal/services/clipboard"
)

const (
	// ClipboardTarget names the clipboard destination in outcomes and logs.
	ClipboardTarget = "clipboard"

	outputFilePermissions = 0o644

	logWrittenMessage       = "Bundle written"
	logWriteFailedMessage   = "Failed to write bundle"
	logCopiedMessage        = "Bundle copied to clipboard"
	logCopyFailedMessage    = "Failed to copy bundle to clipboard"
	logCopySkippedMessage   = "Clipboard copy disabled"
	writeFileErrorFormat    = "write %s: %w"
	clipboardErrorFormat    = "copy to clipboard: %w"
	errorMissingCopierValue = "clipboard copier is not configured"
)

// Outcome describes the result of delivering the bundle to one destination.
type Outcome struct {
	Target  string
	Skipped bool
	Err     error
}

// Succeeded reports whether the destination received the bundle.
func (outcome Outcome) Succeeded() bool {
	return !outcome.Skipped && outcome.Err == nil
}

// Report holds the outcome of every destination of one delivery.
type Report struct {
	File      Outcome
	Clipboard Outcome
}

// Err joins the failures of the report, or returns nil when every destination succeeded or was skipped.
func (report Report) Err() error {
	return errors.Join(report.File.Err, report.Clipboard.Err)
}

// Sink writes bundles to the output file and the clipboard.
type Sink struct {
	outputPath  string
	copier      clipboard.Copier
	copyEnabled bool
	logger      *zap.Logger
}

// NewSink constructs a Sink. A nil logger discards delivery messages.
func NewSink(outputPath string, copier clipboard.Copier, copyEnabled bool, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{outputPath: outputPath, copier: copier, copyEnabled: copyEnabled, logger: logger}
}

// WriteFile creates or truncates the output file and writes text to it.
func (sink *Sink) WriteFile(text string) Outcome {
	outcome := Outcome{Target: sink.outputPath}
	if err := os.WriteFile(filepath.Clean(sink.outputPath), []byte(text), outputFilePermissions); err != nil {
		outcome.Err = fmt.Errorf(writeFileErrorFormat, sink.outputPath, err)
		sink.logger.Error(logWriteFailedMessage, zap.String("path", sink.outputPath), zap.Error(err))
		return outcome
	}
	sink.logger.Info(logWrittenMessage, zap.String("path", sink.outputPath))
	return outcome
}

// CopyToClipboard places text on the system clipboard unless copying is disabled.
func (sink *Sink) CopyToClipboard(text string) Outcome {
	outcome := Outcome{Target: ClipboardTarget}
	if !sink.copyEnabled {
		outcome.Skipped = true
		sink.logger.Info(logCopySkippedMessage)
		return outcome
	}
	if sink.copier == nil {
		outcome.Err = errors.New(errorMissingCopierValue)
		sink.logger.Error(logCopyFailedMessage, zap.Error(outcome.Err))
		return outcome
	}
	if err := sink.copier.Copy(text); err != nil {
		outcome.Err = fmt.Errorf(clipboardErrorFormat, err)
		sink.logger.Error(logCopyFailedMessage, zap.Error(err))
		return outcome
	}
	sink.logger.Info(logCopiedMessage)
	return outcome
}

// Deliver writes the file and then copies to the clipboard. The clipboard step
// runs even when the write fails.
func (sink *Sink) Deliver(text string) Report {
	return Report{
		File:      sink.WriteFile(text),
		Clipboard: sink.CopyToClipboard(text),
	}
}
