package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philiporlando/apng-to-png/internal/model"
)

// Format represents supported manifest file formats.
type Format int

const (
	// FormatNone disables manifest output.
	FormatNone Format = iota

	// FormatJSON creates frames.json with all frame control metadata.
	FormatJSON

	// FormatFFConcat creates frames.ffconcat for ffmpeg's concat demuxer.
	FormatFFConcat
)

// ParseFormat maps a settings value to a Format.
//
// Accepted values: "" or "none", "json", "ffconcat".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FormatNone, nil
	case "json":
		return FormatJSON, nil
	case "ffconcat":
		return FormatFFConcat, nil
	default:
		return FormatNone, fmt.Errorf("unknown manifest format %q", s)
	}
}

// String returns the settings name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatFFConcat:
		return "ffconcat"
	default:
		return "none"
	}
}

// baseName is the manifest file name without extension.
const baseName = "frames"

// Writer generates frame manifests in one format.
//
// Frame paths in the manifest are relative (just the file name),
// assuming the manifest lives in the same folder as the frames.
type Writer struct {
	format Format
}

// NewWriter creates a new Writer.
func NewWriter(format Format) *Writer {
	return &Writer{format: format}
}

// Enabled reports whether the writer produces any output.
func (w *Writer) Enabled() bool {
	return w != nil && w.format != FormatNone
}

// FileName returns the manifest file name, including extension.
func (w *Writer) FileName() string {
	switch w.format {
	case FormatFFConcat:
		return baseName + ".ffconcat"
	default:
		return baseName + ".json"
	}
}

// Create renders the manifest for anim, whose frames were written to files.
//
// files must be in decode order and have one entry per frame.
func (w *Writer) Create(src model.Source, anim *model.Animation, files []string) ([]byte, error) {
	if len(files) != len(anim.Frames) {
		return nil, fmt.Errorf("manifest: %d files for %d frames", len(files), len(anim.Frames))
	}

	switch w.format {
	case FormatJSON:
		return w.createJSON(src, anim, files)
	case FormatFFConcat:
		return []byte(w.createFFConcat(anim, files)), nil
	default:
		return nil, fmt.Errorf("manifest: format %s produces no output", w.format)
	}
}

type jsonManifest struct {
	Source    string      `json:"source"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	LoopCount uint        `json:"loop_count"`
	Frames    []jsonFrame `json:"frames"`
}

type jsonFrame struct {
	File    string `json:"file"`
	DelayMS int64  `json:"delay_ms"`
	XOffset int    `json:"x_offset"`
	YOffset int    `json:"y_offset"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Dispose string `json:"dispose"`
	Blend   string `json:"blend"`
}

// createJSON generates a JSON manifest:
//
//	{
//	  "source": "clip1.apng",
//	  "width": 64, "height": 64, "loop_count": 0,
//	  "frames": [{"file": "frame_000.png", "delay_ms": 100, ...}]
//	}
func (w *Writer) createJSON(src model.Source, anim *model.Animation, files []string) ([]byte, error) {
	m := jsonManifest{
		Source:    src.Name,
		Width:     anim.Width,
		Height:    anim.Height,
		LoopCount: anim.LoopCount,
		Frames:    make([]jsonFrame, len(anim.Frames)),
	}

	for i, f := range anim.Frames {
		c := f.Control
		m.Frames[i] = jsonFrame{
			File:    filepath.Base(files[i]),
			DelayMS: c.Delay().Milliseconds(),
			XOffset: c.XOffset,
			YOffset: c.YOffset,
			Width:   c.Width,
			Height:  c.Height,
			Dispose: c.DisposeOp.String(),
			Blend:   c.BlendOp.String(),
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// createFFConcat generates an ffmpeg concat demuxer script:
//
//	ffconcat version 1.0
//	file 'frame_000.png'
//	duration 0.100
//	file 'frame_001.png'
//	duration 0.100
//	file 'frame_001.png'
//
// The last file is listed twice because the demuxer ignores the duration of
// the final entry.
func (w *Writer) createFFConcat(anim *model.Animation, files []string) string {
	var sb strings.Builder

	sb.WriteString("ffconcat version 1.0\n")

	for i, f := range anim.Frames {
		sb.WriteString(fmt.Sprintf("file %s\n", quoteFFConcat(filepath.Base(files[i]))))
		sb.WriteString(fmt.Sprintf("duration %.3f\n", f.Control.Delay().Seconds()))
	}
	if n := len(files); n > 0 {
		sb.WriteString(fmt.Sprintf("file %s\n", quoteFFConcat(filepath.Base(files[n-1]))))
	}

	return sb.String()
}

// quoteFFConcat quotes a path for the concat demuxer.
//
// Single quotes cannot be escaped inside a quoted string, so they are
// written as '\'' (close, escaped quote, reopen).
func quoteFFConcat(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
