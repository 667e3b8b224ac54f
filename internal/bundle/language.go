package bundle

import (
	"path/filepath"
	"strings"
)

// languageOverrides maps file extensions to the fence tag used instead of the extension.
var languageOverrides = map[string]string{
	"ets": "typescript",
}

// LanguageTag infers the code fence language from the file extension.
// Leading dots of the file name do not start an extension, so ".bashrc" has none.
func LanguageTag(path string) string {
	name := strings.TrimLeft(filepath.Base(path), ".")
	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if override, found := languageOverrides[extension]; found {
		return override
	}
	return extension
}
