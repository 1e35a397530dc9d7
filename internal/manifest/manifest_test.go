package manifest

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/philiporlando/apng-to-png/internal/model"
)

func createTestAnimation() (model.Source, *model.Animation, []string) {
	src := model.NewSource("/in/clip1.apng", "/out")
	anim := &model.Animation{
		Width:     4,
		Height:    3,
		LoopCount: 2,
		Frames: []model.Frame{
			{Control: model.FrameControl{Width: 4, Height: 3, DelayNumerator: 1, DelayDenominator: 10}},
			{Control: model.FrameControl{
				XOffset: 1, YOffset: 1, Width: 2, Height: 2,
				DelayNumerator: 250, DelayDenominator: 1000,
				DisposeOp: model.DisposeBackground, BlendOp: model.BlendOver,
			}},
		},
	}
	files := []string{"/out/clip1/frame_000.png", "/out/clip1/frame_001.png"}
	return src, anim, files
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatNone, false},
		{"none", FormatNone, false},
		{"JSON", FormatJSON, false},
		{"ffconcat", FormatFFConcat, false},
		{"m3u", FormatNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriter_FileName(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "frames.json"},
		{FormatFFConcat, "frames.ffconcat"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := NewWriter(tt.format).FileName(); got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriter_Enabled(t *testing.T) {
	if NewWriter(FormatNone).Enabled() {
		t.Error("FormatNone writer should be disabled")
	}
	if !NewWriter(FormatJSON).Enabled() {
		t.Error("FormatJSON writer should be enabled")
	}
	var w *Writer
	if w.Enabled() {
		t.Error("nil writer should be disabled")
	}
}

func TestWriter_JSON(t *testing.T) {
	src, anim, files := createTestAnimation()

	data, err := NewWriter(FormatJSON).Create(src, anim, files)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var got jsonManifest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if got.Source != "clip1.apng" {
		t.Errorf("Source = %q", got.Source)
	}
	if got.LoopCount != 2 || got.Width != 4 || got.Height != 3 {
		t.Errorf("header = %+v", got)
	}
	if len(got.Frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(got.Frames))
	}

	f := got.Frames[1]
	if f.File != "frame_001.png" {
		t.Errorf("File = %q, want frame_001.png", f.File)
	}
	if f.DelayMS != 250 {
		t.Errorf("DelayMS = %d, want 250", f.DelayMS)
	}
	if f.Dispose != "background" || f.Blend != "over" {
		t.Errorf("ops = %s/%s, want background/over", f.Dispose, f.Blend)
	}
}

func TestWriter_FFConcat(t *testing.T) {
	src, anim, files := createTestAnimation()

	data, err := NewWriter(FormatFFConcat).Create(src, anim, files)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	content := string(data)

	want := "ffconcat version 1.0\n" +
		"file 'frame_000.png'\n" +
		"duration 0.100\n" +
		"file 'frame_001.png'\n" +
		"duration 0.250\n" +
		"file 'frame_001.png'\n"
	if content != want {
		t.Errorf("content =\n%s\nwant\n%s", content, want)
	}
}

func TestWriter_FileCountMismatch(t *testing.T) {
	src, anim, files := createTestAnimation()

	if _, err := NewWriter(FormatJSON).Create(src, anim, files[:1]); err == nil {
		t.Error("Create() with missing files should fail")
	}
}

func TestQuoteFFConcat(t *testing.T) {
	got := quoteFFConcat("it's.png")
	if !strings.HasPrefix(got, "'it'") || !strings.HasSuffix(got, "s.png'") {
		t.Errorf("quoteFFConcat = %q", got)
	}
	if got != `'it'\''s.png'` {
		t.Errorf("quoteFFConcat = %q", got)
	}
}
