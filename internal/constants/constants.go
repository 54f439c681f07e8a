// Package constants defines shared constant values.
package constants

// AppName is the project identifier used in logs and metadata.
const AppName = "redstonepen-meta"

// CommandName is the primary CLI command name.
const CommandName = "rpmeta"

// TestModeEnv switches user-facing strings to their translation keys.
const TestModeEnv = "RPMETA_TEST"
