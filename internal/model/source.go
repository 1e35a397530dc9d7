package model

import (
	"path/filepath"
	"strings"
)

// APNGExt is the extension, compared case-insensitively, that marks a file as
// an APNG input.
const APNGExt = ".apng"

// Source represents one APNG input file and its output folder.
//
// Paths are computed when creating a source via NewSource:
//
//	src := NewSource("/in/clip1.apng", "/out")
//	// src.Name      = "clip1.apng"
//	// src.Stem      = "clip1"
//	// src.OutputDir = "/out/clip1"
type Source struct {
	// Path is the file system path of the APNG file.
	Path string

	// Name is the base name of Path, used in log messages.
	Name string

	// Stem is Name without its extension.
	Stem string

	// OutputDir is the folder frames are written to: output root joined with Stem.
	OutputDir string
}

// NewSource creates a Source for path whose frames go below outputRoot.
func NewSource(path, outputRoot string) Source {
	name := filepath.Base(path)
	stem := Stem(name)
	return Source{
		Path:      path,
		Name:      name,
		Stem:      stem,
		OutputDir: filepath.Join(outputRoot, stem),
	}
}

// Ext returns the extension of name, including the dot.
//
// Unlike filepath.Ext, a leading dot does not start an extension, so a
// dot-file such as ".apng" has no extension at all.
func Ext(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return ""
	}
	return ext
}

// Stem returns name with its extension removed.
//
// Example:
//
//	Stem("clip1.apng")     // "clip1"
//	Stem("clip.v2.APNG")   // "clip.v2"
//	Stem("README")         // "README"
func Stem(name string) string {
	return strings.TrimSuffix(name, Ext(name))
}

// IsAPNGName reports whether name carries the .apng extension, ignoring case.
func IsAPNGName(name string) bool {
	return strings.EqualFold(Ext(name), APNGExt)
}
