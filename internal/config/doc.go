// Package config provides configuration management for apng-to-png.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Environment variable overrides
//   - Validation of enumerated options
//
// # Default Settings
//
// Use DefaultSettings() to get the defaults:
//
//	settings := config.DefaultSettings()
//	// Reads ./data/input, writes ./data/output
//	// One file at a time, raw frames, no manifest
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment Overrides
//
// ApplyEnv overlays any APNG_* variables that are set:
//
//	APNG_INPUT_DIR, APNG_OUTPUT_DIR, APNG_WORKERS, APNG_COMPOSITE,
//	APNG_MANIFEST, APNG_COMPRESSION, APNG_LOG_LEVEL, APNG_LOG_FORMAT
//
// # Saving Settings
//
//	settings.OutputPath = "/custom/path"
//	err := settings.Save("/path/to/config.json")
package config
