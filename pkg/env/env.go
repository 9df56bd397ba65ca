// Package env keeps names of environment variables with special significance
// to LiteCode.
package env

// Environment variables with special significance to LiteCode.
const (
	HOME = "HOME"
	// Path of the configuration file, overriding the default location.
	LITECODE_CONFIG = "LITECODE_CONFIG"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	// Base directory of the history database.
	XDG_STATE_HOME = "XDG_STATE_HOME"
)
