package extract

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/philiporlando/apng-to-png/internal/model"
)

// fakeDecoder returns canned animations keyed by file base name.
type fakeDecoder struct {
	mu     sync.Mutex
	anims  map[string]*model.Animation
	errs   map[string]error
	called []string
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{
		anims: make(map[string]*model.Animation),
		errs:  make(map[string]error),
	}
}

func (d *fakeDecoder) Decode(ctx context.Context, path string) (*model.Animation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	name := filepath.Base(path)
	d.called = append(d.called, name)
	if err, ok := d.errs[name]; ok {
		return nil, err
	}
	if anim, ok := d.anims[name]; ok {
		return anim, nil
	}
	return nil, errors.New("not an apng")
}

// testAnimation builds n full-canvas w x h frames with distinct colors.
func testAnimation(n, w, h int) *model.Animation {
	anim := &model.Animation{Width: w, Height: h}
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		img.Set(0, 0, color.RGBA{R: uint8(i), G: uint8(i >> 8), A: 255})
		anim.Frames = append(anim.Frames, model.Frame{
			Image: img,
			Control: model.FrameControl{
				Width: w, Height: h,
				DelayNumerator: 1, DelayDenominator: 10,
			},
		})
	}
	return anim
}

// touch creates empty files in dir.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// listDir returns the sorted entry names of dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s) error = %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// eventRecorder collects progress events from any goroutine.
type eventRecorder struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (r *eventRecorder) record(e ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
