package bundle

import (
	"errors"
	"io/fs"
	"os"

	"github.com/temirov/ctxpack/internal/types"
	"github.com/temirov/ctxpack/internal/utils"
)

// RenderFile reads the file at absolutePath and renders it as a fenced code block.
// Missing or unreadable files become inline warning or error fragments; RenderFile never fails.
//
// #nosec G304
func RenderFile(resolver Resolver, absolutePath string) Fragment {
	displayPath := resolver.Display(absolutePath)

	fileBytes, readError := os.ReadFile(absolutePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return issueFragment(types.IssueMissingFile, displayPath, describeError(readError))
		}
		return issueFragment(types.IssueReadFailure, displayPath, describeError(readError))
	}

	content, decodeError := utils.DecodeText(fileBytes)
	if decodeError != nil {
		return issueFragment(types.IssueReadFailure, displayPath, decodeError.Error())
	}

	return fileFragment(displayPath, LanguageTag(absolutePath), content)
}

// describeError strips the operation and path from file system errors, leaving the cause.
func describeError(err error) string {
	var pathError *fs.PathError
	if errors.As(err, &pathError) && pathError.Err != nil {
		return pathError.Err.Error()
	}
	return err.Error()
}
