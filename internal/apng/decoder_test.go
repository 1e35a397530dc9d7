package apng

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	kapng "github.com/kettek/apng"
	apngenc "github.com/setanarut/apng"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// writeEncoded writes frames with the kettek encoder, which honours
// Frame.IsDefault.
func writeEncoded(t *testing.T, dir string, frames []kapng.Frame) string {
	t.Helper()

	path := filepath.Join(dir, "encoded.apng")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := kapng.Encode(f, kapng.APNG{Frames: frames}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return path
}

func writeFixture(t *testing.T, dir string, n int) string {
	t.Helper()

	frames := make([]image.Image, n)
	for i := range frames {
		img := image.NewRGBA(image.Rect(0, 0, 8, 6))
		img.Set(i%8, 0, color.RGBA{R: 255, A: 255})
		frames[i] = img
	}

	path := filepath.Join(dir, "fixture.apng")
	apngenc.Save(path, frames, 10)

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("fixture not written: %v", err)
	}
	return path
}

func TestFileDecoder_Decode(t *testing.T) {
	path := writeFixture(t, t.TempDir(), 3)

	anim, err := NewFileDecoder().Decode(context.Background(), path)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(anim.Frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(anim.Frames))
	}
	if anim.Width != 8 || anim.Height != 6 {
		t.Errorf("canvas = %dx%d, want 8x6", anim.Width, anim.Height)
	}
	for i, f := range anim.Frames {
		if f.Image == nil {
			t.Fatalf("frame %d has no image", i)
		}
		if f.Control.Width == 0 || f.Control.Height == 0 {
			t.Errorf("frame %d has empty size %dx%d", i, f.Control.Width, f.Control.Height)
		}
	}
}

func TestFileDecoder_SkipsHiddenDefaultImage(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	path := writeEncoded(t, t.TempDir(), []kapng.Frame{
		{Image: solidImage(4, 3, red), IsDefault: true},
		{Image: solidImage(4, 3, green), DelayNumerator: 1, DelayDenominator: 10},
		{Image: solidImage(2, 2, blue), XOffset: 1, YOffset: 1, DelayNumerator: 1, DelayDenominator: 10},
	})

	anim, err := NewFileDecoder().Decode(context.Background(), path)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(anim.Frames) != 2 {
		t.Fatalf("got %d frames, want 2 animation frames", len(anim.Frames))
	}
	if anim.Width != 4 || anim.Height != 3 {
		t.Errorf("canvas = %dx%d, want 4x3", anim.Width, anim.Height)
	}

	wantColors := []color.RGBA{green, blue}
	for i, f := range anim.Frames {
		got := color.RGBAModel.Convert(f.Image.At(f.Image.Bounds().Min.X, f.Image.Bounds().Min.Y)).(color.RGBA)
		if got != wantColors[i] {
			t.Errorf("frame %d color = %v, want %v", i, got, wantColors[i])
		}
	}
	if c := anim.Frames[1].Control; c.XOffset != 1 || c.YOffset != 1 || c.Width != 2 || c.Height != 2 {
		t.Errorf("frame 1 control = %+v, want 2x2 at (1,1)", c)
	}
}

func TestFileDecoder_OnlyDefaultImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "still.apng")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	err = kapng.Encode(f, kapng.APNG{Frames: []kapng.Frame{
		{Image: solidImage(2, 2, color.RGBA{R: 255, A: 255}), IsDefault: true},
	}})
	f.Close()
	if err != nil {
		t.Skipf("encoder rejects an APNG without animation frames: %v", err)
	}

	if _, err := NewFileDecoder().Decode(context.Background(), path); err == nil {
		t.Error("Decode() of an APNG without animation frames should fail")
	}
}

func TestFileDecoder_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.apng")
	if err := os.WriteFile(path, []byte("not an animated png"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileDecoder().Decode(context.Background(), path); err == nil {
		t.Error("Decode() of a malformed file should fail")
	}
}

func TestFileDecoder_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.apng")

	_, err := NewFileDecoder().Decode(context.Background(), path)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Decode() error = %v, want not-exist", err)
	}
}

func TestFileDecoder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileDecoder().Decode(ctx, "whatever.apng")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Decode() error = %v, want context.Canceled", err)
	}
}
