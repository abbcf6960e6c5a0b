// Package common holds names shared by the command line front-end and the
// daemon.
package common

// Environment variable names for configuration.
const (
	// ConfigEnv points at the configuration file to load.
	ConfigEnv = "CHRONOWALL_CONFIG"

	// ConfigDirEnv overrides the configuration directory. The pid file lives
	// there too.
	ConfigDirEnv = "CHRONOWALL_CONFIG_DIR"

	// StateDirEnv overrides the directory holding the log file.
	StateDirEnv = "CHRONOWALL_STATE_DIR"

	// DebugEnv is the environment variable to enable debug logging.
	DebugEnv = "CHRONOWALL_DEBUG"

	// BackendEnv overrides general.backend from the configuration file.
	BackendEnv = "CHRONOWALL_BACKEND"
)

// AppName is used for directory, log and pid file names.
const AppName = "chronowall"

// File names inside the configuration and state directories.
const (
	ConfigFileName = "config.toml"
	LogFileName    = AppName + ".log"
	PidFileName    = "daemon.pid"
)
