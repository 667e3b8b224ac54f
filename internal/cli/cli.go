// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/ctxpack/internal/bundle"
	"github.com/temirov/ctxpack/internal/config"
	"github.com/temirov/ctxpack/internal/output"
	"github.com/temirov/ctxpack/internal/services/clipboard"
	"github.com/temirov/ctxpack/internal/tokenizer"
	"github.com/temirov/ctxpack/internal/utils"
)

const (
	configFlagName   = "config"
	baseFlagName     = "base"
	outputFlagName   = "output"
	copyFlagName     = "copy"
	tokensFlagName   = "tokens"
	modelFlagName    = "model"
	verboseFlagName  = "verbose"
	versionFlagName  = "version"
	globalFlagName   = "global"
	forceFlagName    = "force"
	versionTemplate  = "ctxpack version: %s\n"
	rootUse          = "ctxpack"
	initUse          = "init"
	initCreatedLabel = "Configuration written"

	rootShortDescription = "bundle project sources into one Markdown document"
	rootLongDescription  = `ctxpack walks the sections of a project configuration, renders every matching
file as a fenced code block with its relative path, appends the instruction block,
writes the document to the output file, and copies it to the clipboard.
Configuration is read from .ctxpack.yaml in the working directory (or --config) on
top of ~/.ctxpack/config.yaml; without sections the built-in HarmonyOS layout is used.`
	rootUsageExample = `  # Bundle the project described by ./.ctxpack.yaml
  ctxpack

  # Bundle another checkout without touching the clipboard
  ctxpack --base ../app --copy=false

  # Report an estimated token count for the bundle
  ctxpack --tokens --model gpt-4o`
	initShortDescription = "write a starter configuration file"
	initLongDescription  = `Write the built-in configuration to .ctxpack.yaml in the working directory,
or to ~/.ctxpack/config.yaml with --global. Existing files are kept unless --force is given.`

	configFlagDescription  = "configuration file to load instead of ./" + utils.ConfigFileName
	baseFlagDescription    = "base directory that section paths are resolved against"
	outputFlagDescription  = "output file, relative to the base directory"
	copyFlagDescription    = "copy the bundle to the clipboard"
	tokensFlagDescription  = "estimate the token count of the bundle"
	modelFlagDescription   = "tokenizer model to use for token counting"
	verboseFlagDescription = "enable debug logging"
	versionFlagDescription = "display application version"
	globalFlagDescription  = "write the global configuration instead of the local one"
	forceFlagDescription   = "overwrite an existing configuration file"

	logConfigurationMessage = "Configuration loaded"
	logClipboardMissing     = "No clipboard utility found"
	logTokenFailureMessage  = "Token counting failed"
	invalidConfigurationFmt = "invalid configuration: %w"
)

// Dependencies carries the collaborators of the command tree. Zero values select
// the production implementations.
type Dependencies struct {
	Logger *zap.Logger
	// LogLevel is raised to debug by --verbose when set.
	LogLevel         *zap.AtomicLevel
	Copier           clipboard.Copier
	NewCounter       func(tokenizer.Config) (tokenizer.Counter, string, error)
	WorkingDirectory string
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Copier == nil {
		service := clipboard.NewService()
		if !service.Available() {
			dependencies.Logger.Debug(logClipboardMissing)
		}
		dependencies.Copier = service
	}
	if dependencies.NewCounter == nil {
		dependencies.NewCounter = tokenizer.NewCounter
	}
	return dependencies
}

// Execute runs the ctxpack application with the process arguments.
func Execute(dependencies Dependencies) error {
	return executeArguments(createRootCommand(dependencies), os.Args[1:])
}

func executeArguments(command *cobra.Command, arguments []string) error {
	command.SetArgs(normalizeBooleanFlagArguments(command, arguments))
	return command.Execute()
}

// bundleOptions stores the values of the root command flags.
type bundleOptions struct {
	configPath    string
	baseDirectory string
	outputFile    string
	model         string
	copyEnabled   *bool
	tokensEnabled *bool
	verbose       bool
	showVersion   bool
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var options bundleOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if options.verbose && dependencies.LogLevel != nil {
				dependencies.LogLevel.SetLevel(zapcore.DebugLevel)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return err
			}
			return runBundle(command, dependencies, options)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flagSet.StringVar(&options.baseDirectory, baseFlagName, "", baseFlagDescription)
	flagSet.StringVar(&options.outputFile, outputFlagName, "", outputFlagDescription)
	flagSet.StringVar(&options.model, modelFlagName, config.DefaultTokenModel, modelFlagDescription)
	registerOverrideFlag(flagSet, &options.copyEnabled, copyFlagName, copyFlagDescription)
	registerOverrideFlag(flagSet, &options.tokensEnabled, tokensFlagName, tokensFlagDescription)
	registerBooleanFlag(flagSet, &options.showVersion, versionFlagName, false, versionFlagDescription)
	registerBooleanFlag(rootCommand.PersistentFlags(), &options.verbose, verboseFlagName, false, verboseFlagDescription)

	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			destinationPath, err := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: dependencies.WorkingDirectory,
			})
			if err != nil {
				return err
			}
			dependencies.Logger.Info(initCreatedLabel, zap.String("path", destinationPath))
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runBundle loads the configuration, assembles the document, and delivers it.
// Only configuration problems are returned; delivery failures are logged.
func runBundle(command *cobra.Command, dependencies Dependencies, options bundleOptions) error {
	logger := dependencies.Logger
	configuration, err := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: dependencies.WorkingDirectory,
		ExplicitFilePath: options.configPath,
		BaseDirectory:    options.baseDirectory,
	})
	if err != nil {
		return err
	}

	flagSet := command.Flags()
	if flagSet.Changed(outputFlagName) {
		configuration.OutputFile = options.outputFile
	}
	if flagSet.Changed(modelFlagName) {
		configuration.Tokens.Model = options.model
	}
	if options.copyEnabled != nil {
		configuration.Copy = options.copyEnabled
	}
	if options.tokensEnabled != nil {
		configuration.Tokens.Enabled = options.tokensEnabled
	}
	if validationErr := configuration.Validate(); validationErr != nil {
		return fmt.Errorf(invalidConfigurationFmt, validationErr)
	}
	logger.Debug(logConfigurationMessage,
		zap.String("source", configuration.SourcePath),
		zap.String("base", configuration.BaseDirectory),
		zap.Int("sections", len(configuration.Sections)),
	)

	document := bundle.NewAssembler(logger).Assemble(configuration)
	summary := document.Summary()
	if configuration.TokensEnabled() {
		summary.TotalTokens, summary.Model = countTokens(dependencies, configuration.Tokens.Model, document.Text)
	}

	sink := output.NewSink(configuration.OutputPath(), dependencies.Copier, configuration.CopyEnabled(), logger)
	sink.Deliver(document.Text)
	logger.Info(output.FormatSummaryLine(&summary))
	return nil
}

// countTokens estimates the tokens of text. Failures are logged and yield zero.
func countTokens(dependencies Dependencies, model string, text string) (int, string) {
	counter, resolvedModel, err := dependencies.NewCounter(tokenizer.Config{Model: model})
	if err != nil {
		dependencies.Logger.Warn(logTokenFailureMessage, zap.String("model", model), zap.Error(err))
		return 0, ""
	}
	result, countErr := tokenizer.CountText(counter, text)
	if countErr != nil {
		dependencies.Logger.Warn(logTokenFailureMessage, zap.String("model", resolvedModel), zap.Error(countErr))
		return 0, ""
	}
	return result.Tokens, resolvedModel
}
