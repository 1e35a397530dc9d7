package apng

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	apnglib "github.com/kettek/apng"
	"github.com/philiporlando/apng-to-png/internal/model"
)

// ErrNoFrames is returned for a file without animation frames, such as a
// plain PNG or an APNG holding only its hidden default image.
var ErrNoFrames = errors.New("apng has no frames")

// Decoder turns an APNG file into an ordered sequence of frames.
type Decoder interface {
	Decode(ctx context.Context, path string) (*model.Animation, error)
}

// FileDecoder decodes APNG files from the local file system.
type FileDecoder struct{}

// NewFileDecoder creates a new FileDecoder.
func NewFileDecoder() *FileDecoder {
	return &FileDecoder{}
}

// Decode reads and decodes the APNG at path.
//
// A default image that is not part of the animation (no fcTL before IDAT)
// is dropped. The canvas size comes from the first decoded image, which is
// always the IHDR image whether or not it is part of the animation.
func (d *FileDecoder) Decode(ctx context.Context, path string) (*model.Animation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := apnglib.DecodeAll(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode apng: %w", err)
	}
	if len(a.Frames) == 0 {
		return nil, ErrNoFrames
	}

	anim := &model.Animation{
		LoopCount: uint(a.LoopCount),
		Frames:    make([]model.Frame, 0, len(a.Frames)),
	}
	if img := a.Frames[0].Image; img != nil {
		b := img.Bounds()
		anim.Width, anim.Height = b.Dx(), b.Dy()
	}
	for _, fr := range a.Frames {
		if fr.IsDefault {
			continue
		}
		anim.Frames = append(anim.Frames, convertFrame(fr))
	}
	if len(anim.Frames) == 0 {
		return nil, ErrNoFrames
	}

	return anim, nil
}

func convertFrame(fr apnglib.Frame) model.Frame {
	var w, h int
	if fr.Image != nil {
		b := fr.Image.Bounds()
		w, h = b.Dx(), b.Dy()
	}

	return model.Frame{
		Image: fr.Image,
		Control: model.FrameControl{
			XOffset:          int(fr.XOffset),
			YOffset:          int(fr.YOffset),
			Width:            w,
			Height:           h,
			DelayNumerator:   uint16(fr.DelayNumerator),
			DelayDenominator: uint16(fr.DelayDenominator),
			DisposeOp:        model.DisposeOp(fr.DisposeOp),
			BlendOp:          model.BlendOp(fr.BlendOp),
		},
	}
}
