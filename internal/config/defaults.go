package config

import (
	"github.com/temirov/ctxpack/internal/types"
	"github.com/temirov/ctxpack/internal/utils"
)

// defaultInstructions is appended to the bundle when no configuration file provides sections.
const defaultInstructions = `
Whatever you change, make sure no existing functionality breaks.
For ArkTS (.ets) code, if you only change one function or component, give the complete function or @Component code and state clearly which file I should replace it in.
For JSON configuration files, give the complete modified file content.
Never omit code; make sure I can copy and paste it directly.
`

// DefaultConfiguration returns the built-in configuration for a HarmonyOS ArkTS project.
func DefaultConfiguration() Configuration {
	return Configuration{
		Sections: []types.Section{
			{
				Title: "HarmonyOS ArkTS core logic and UI pages",
				Paths: []string{
					"./entry/src/main/ets/entryability",
					"./entry/src/main/ets/pages",
					"./entry/src/main/ets/entrybackupability",
					"./entry/src/main/ets/common",
					"./entry/src/main/ets/components",
				},
				Extensions: []string{".ets"},
			},
			{
				Title: "HarmonyOS configuration files",
				Paths: []string{
					"./entry/src/main/resources/base/profile/main_pages.json",
					"./entry/src/main/module.json5",
					"./build-profile.json5",
				},
				Extensions: []string{".json", ".json5"},
			},
		},
		Instructions: defaultInstructions,
		OutputFile:   utils.DefaultOutputFileName,
		Tokens:       TokenConfiguration{Model: DefaultTokenModel},
	}
}
