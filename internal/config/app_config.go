package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/ctxpack/internal/types"
	"github.com/temirov/ctxpack/internal/utils"
)

const (
	// DefaultTokenModel is the tokenizer model used when none is configured.
	DefaultTokenModel = "gpt-4o"

	errorMissingOutputFile  = "output_file must not be empty"
	errorSectionWithoutPath = "section %d (%s) lists no paths"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	// BaseDirectory overrides every other base directory source when set.
	BaseDirectory string
}

// Configuration is the immutable input of a bundle run.
type Configuration struct {
	BaseDirectory string
	Sections      []types.Section
	Instructions  string
	OutputFile    string
	Copy          *bool
	Tokens        TokenConfiguration
	// SourcePath is the local configuration file that was loaded, if any.
	SourcePath string
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Model   string `mapstructure:"model" yaml:"model,omitempty"`
}

// fileConfiguration mirrors the YAML layout of a configuration file.
type fileConfiguration struct {
	BaseDirectory string             `mapstructure:"base_directory"`
	Sections      []types.Section    `mapstructure:"sections"`
	Instructions  string             `mapstructure:"instructions"`
	OutputFile    string             `mapstructure:"output_file"`
	Copy          *bool              `mapstructure:"copy"`
	Tokens        TokenConfiguration `mapstructure:"tokens"`
}

// CopyEnabled reports whether the bundle should be copied to the clipboard.
func (configuration Configuration) CopyEnabled() bool {
	return configuration.Copy == nil || *configuration.Copy
}

// TokensEnabled reports whether token counting was requested.
func (configuration Configuration) TokensEnabled() bool {
	return configuration.Tokens.Enabled != nil && *configuration.Tokens.Enabled
}

// OutputPath returns the absolute path of the bundle file.
func (configuration Configuration) OutputPath() string {
	if filepath.IsAbs(configuration.OutputFile) {
		return configuration.OutputFile
	}
	return filepath.Join(configuration.BaseDirectory, configuration.OutputFile)
}

// Validate reports configuration values that cannot produce a bundle.
func (configuration Configuration) Validate() error {
	var problems []error
	if strings.TrimSpace(configuration.OutputFile) == "" {
		problems = append(problems, errors.New(errorMissingOutputFile))
	}
	for index, section := range configuration.Sections {
		if len(section.Paths) == 0 {
			problems = append(problems, fmt.Errorf(errorSectionWithoutPath, index+1, section.DisplayTitle()))
		}
	}
	return errors.Join(problems...)
}

// LoadApplicationConfiguration loads configuration from global and local files.
// The local file overrides the global one; sections are replaced as a whole.
// When neither file defines sections the built-in defaults are used.
func LoadApplicationConfiguration(options LoadOptions) (Configuration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return Configuration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged fileConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, _, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return Configuration{}, loadErr
		}
		merged = merged.merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, localFound, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return Configuration{}, loadErr
	}
	merged = merged.merge(localConfig)

	defaults := DefaultConfiguration()
	result := Configuration{
		Sections:     merged.Sections,
		Instructions: merged.Instructions,
		OutputFile:   merged.OutputFile,
		Copy:         cloneBool(merged.Copy),
		Tokens:       merged.Tokens,
	}
	if len(result.Sections) == 0 {
		result.Sections = defaults.Sections
		if result.Instructions == "" {
			result.Instructions = defaults.Instructions
		}
	}
	if result.OutputFile == "" {
		result.OutputFile = defaults.OutputFile
	}
	if result.Tokens.Model == "" {
		result.Tokens.Model = DefaultTokenModel
	}

	switch {
	case options.BaseDirectory != "":
		result.BaseDirectory = resolvePath(workingDirectory, options.BaseDirectory)
	case merged.BaseDirectory != "":
		result.BaseDirectory = merged.BaseDirectory
	case localFound:
		result.BaseDirectory = filepath.Dir(localPath)
	default:
		result.BaseDirectory = workingDirectory
	}
	if localFound {
		result.SourcePath = localPath
	}

	if validationErr := result.Validate(); validationErr != nil {
		return Configuration{}, fmt.Errorf("invalid configuration: %w", validationErr)
	}
	return result, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath != "" {
		return resolvePath(workingDirectory, explicitPath)
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName)
}

func resolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// loadConfigurationFromPath reads one configuration file. A missing file is not
// an error unless required is set. A relative base_directory is resolved against
// the directory holding the file.
func loadConfigurationFromPath(path string, required bool) (fileConfiguration, bool, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return fileConfiguration{}, false, nil
		}
		return fileConfiguration{}, false, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return fileConfiguration{}, false, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return fileConfiguration{}, false, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config fileConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return fileConfiguration{}, false, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	if config.BaseDirectory != "" {
		config.BaseDirectory = resolvePath(filepath.Dir(path), config.BaseDirectory)
	}
	return config, true, nil
}

// merge overlays override onto the receiver returning the combined configuration.
func (config fileConfiguration) merge(override fileConfiguration) fileConfiguration {
	result := config
	if override.BaseDirectory != "" {
		result.BaseDirectory = override.BaseDirectory
	}
	if len(override.Sections) > 0 {
		result.Sections = cloneSections(override.Sections)
	}
	if override.Instructions != "" {
		result.Instructions = override.Instructions
	}
	if override.OutputFile != "" {
		result.OutputFile = override.OutputFile
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	if override.Tokens.Enabled != nil {
		result.Tokens.Enabled = cloneBool(override.Tokens.Enabled)
	}
	if override.Tokens.Model != "" {
		result.Tokens.Model = override.Tokens.Model
	}
	return result
}

func cloneSections(sections []types.Section) []types.Section {
	cloned := make([]types.Section, len(sections))
	for index, section := range sections {
		section.Paths = append([]string(nil), section.Paths...)
		section.Extensions = append([]string(nil), section.Extensions...)
		if len(section.Exclude) > 0 {
			section.Exclude = utils.DeduplicatePatterns(section.Exclude)
		}
		cloned[index] = section
	}
	return cloned
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
