package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/philiporlando/apng-to-png/internal/manifest"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.InputPath != filepath.Join("data", "input") {
		t.Errorf("InputPath = %q", s.InputPath)
	}
	if s.OutputPath != filepath.Join("data", "output") {
		t.Errorf("OutputPath = %q", s.OutputPath)
	}
	if s.MaxConcurrentFiles != 1 {
		t.Errorf("MaxConcurrentFiles = %d, want 1", s.MaxConcurrentFiles)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *s != *DefaultSettings() {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"output_path": "/frames", "composite_frames": true}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.OutputPath != "/frames" || !s.CompositeFrames {
		t.Errorf("file values not applied: %+v", s)
	}
	if s.InputPath != DefaultSettings().InputPath {
		t.Errorf("InputPath = %q, want default", s.InputPath)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() of invalid JSON should fail")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	want := DefaultSettings()
	want.ManifestFormat = "ffconcat"
	want.MaxConcurrentFiles = 4

	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("APNG_INPUT_DIR", "/in")
	t.Setenv("APNG_WORKERS", "3")
	t.Setenv("APNG_COMPOSITE", "true")
	t.Setenv("APNG_MANIFEST", "json")

	s := DefaultSettings()
	s.OutputPath = "/from-file"
	if err := s.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if s.InputPath != "/in" {
		t.Errorf("InputPath = %q, want /in", s.InputPath)
	}
	if s.MaxConcurrentFiles != 3 {
		t.Errorf("MaxConcurrentFiles = %d, want 3", s.MaxConcurrentFiles)
	}
	if !s.CompositeFrames {
		t.Error("CompositeFrames should be true")
	}
	if s.OutputPath != "/from-file" {
		t.Errorf("unset variable overrode OutputPath: %q", s.OutputPath)
	}
	if f, _ := s.Manifest(); f != manifest.FormatJSON {
		t.Errorf("Manifest() = %v, want json", f)
	}
}

func TestApplyEnv_BadValue(t *testing.T) {
	t.Setenv("APNG_WORKERS", "many")

	if err := DefaultSettings().ApplyEnv(); err == nil {
		t.Error("ApplyEnv() with non-numeric workers should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"zero workers", func(s *Settings) { s.MaxConcurrentFiles = 0 }},
		{"empty input", func(s *Settings) { s.InputPath = "" }},
		{"empty output", func(s *Settings) { s.OutputPath = "" }},
		{"bad manifest", func(s *Settings) { s.ManifestFormat = "m3u" }},
		{"bad compression", func(s *Settings) { s.PNGCompression = "ultra" }},
		{"bad log format", func(s *Settings) { s.LogFormat = "xml" }},
		{"bad log level", func(s *Settings) { s.LogLevel = "bogus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			if err := s.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}
