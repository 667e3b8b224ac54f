package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

const (
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".ctxpack.yaml"
	// GlobalConfigDirectoryName is the configuration directory under the user's home.
	GlobalConfigDirectoryName = ".ctxpack"
	// GlobalConfigFileName is the name of the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// DefaultOutputFileName is the bundle file written when no output file is configured.
	DefaultOutputFileName = "project_summary.md"

	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "ctxpack failed"
)
