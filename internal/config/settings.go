package config

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	ioutils "github.com/philiporlando/apng-to-png/internal/io"
	"github.com/philiporlando/apng-to-png/internal/manifest"
	"go.uber.org/zap/zapcore"
)

// Settings holds all configuration options.
type Settings struct {
	// Paths
	InputPath  string `json:"input_path"  env:"APNG_INPUT_DIR"`
	OutputPath string `json:"output_path" env:"APNG_OUTPUT_DIR"`

	// Processing
	MaxConcurrentFiles int    `json:"max_concurrent_files" env:"APNG_WORKERS"`
	CompositeFrames    bool   `json:"composite_frames"     env:"APNG_COMPOSITE"`
	ManifestFormat     string `json:"manifest_format"      env:"APNG_MANIFEST"` // none, json, ffconcat
	PNGCompression     string `json:"png_compression"      env:"APNG_COMPRESSION"` // default, none, speed, best

	// Logging
	LogLevel  string `json:"log_level"  env:"APNG_LOG_LEVEL"`  // debug, info, warn, error
	LogFormat string `json:"log_format" env:"APNG_LOG_FORMAT"` // console, json
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		InputPath:  filepath.Join(".", "data", "input"),
		OutputPath: filepath.Join(".", "data", "output"),

		MaxConcurrentFiles: 1,
		CompositeFrames:    false,
		ManifestFormat:     "none",
		PNGCompression:     "default",

		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// ApplyEnv overrides settings with the APNG_* environment variables that are set.
func (s *Settings) ApplyEnv() error {
	return env.Parse(s)
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := ioutils.EnsureDir(dir); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports the first invalid option.
func (s *Settings) Validate() error {
	if s.InputPath == "" {
		return fmt.Errorf("input path is empty")
	}
	if s.OutputPath == "" {
		return fmt.Errorf("output path is empty")
	}
	if s.MaxConcurrentFiles < 1 {
		return fmt.Errorf("max concurrent files must be at least 1, got %d", s.MaxConcurrentFiles)
	}
	if _, err := s.Manifest(); err != nil {
		return err
	}
	if _, err := s.Compression(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("unknown log level %q", s.LogLevel)
	}
	switch s.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", s.LogFormat)
	}
	return nil
}

// Manifest converts ManifestFormat to a manifest.Format.
func (s *Settings) Manifest() (manifest.Format, error) {
	return manifest.ParseFormat(s.ManifestFormat)
}

// Compression converts PNGCompression to a PNG compression level.
func (s *Settings) Compression() (png.CompressionLevel, error) {
	return ioutils.ParseCompression(s.PNGCompression)
}
