// Package utils provides helper functions, including version retrieval.
package utils

import (
	"runtime/debug"
)

const (
	unknownVersion = "unknown"
	develVersion   = "(devel)"
)

// Version is injected at build time with -ldflags "-X github.com/temirov/ctxpack/internal/utils.Version=v1.2.3".
var Version = EmptyString

// GetApplicationVersion returns the injected version, falling back to the
// module version recorded in the build info.
func GetApplicationVersion() string {
	if Version != EmptyString {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}
	return unknownVersion
}
