package ioutils

import (
	"image"

	"github.com/philiporlando/apng-to-png/internal/model"
	"golang.org/x/image/draw"
)

// Compositor reconstructs full-canvas frames from APNG frame regions.
//
// APNG frames after the first usually cover only part of the canvas and rely
// on the previous frame's pixels. Render applies each frame's blend
// operation, snapshots the canvas, and then applies the dispose operation,
// in the order a viewer would.
//
// A Compositor is stateful and must see the frames of one animation in
// decode order. It is not safe for concurrent use.
type Compositor struct {
	canvas *image.RGBA
	index  int
}

// NewCompositor creates a Compositor with a fully transparent width x height canvas.
func NewCompositor(width, height int) *Compositor {
	return &Compositor{
		canvas: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Render draws f onto the canvas and returns a copy of the resulting canvas.
func (c *Compositor) Render(f model.Frame) image.Image {
	region := frameRegion(f).Intersect(c.canvas.Bounds())

	dispose := f.Control.DisposeOp
	// The first frame has nothing to restore to.
	if c.index == 0 && dispose == model.DisposePrevious {
		dispose = model.DisposeBackground
	}
	c.index++

	var saved *image.RGBA
	if dispose == model.DisposePrevious {
		saved = image.NewRGBA(region)
		draw.Draw(saved, region, c.canvas, region.Min, draw.Src)
	}

	op := draw.Over
	if f.Control.BlendOp == model.BlendSource {
		op = draw.Src
	}
	if f.Image != nil {
		draw.Draw(c.canvas, region, f.Image, f.Image.Bounds().Min, op)
	}

	out := image.NewRGBA(c.canvas.Bounds())
	copy(out.Pix, c.canvas.Pix)

	switch dispose {
	case model.DisposeBackground:
		draw.Draw(c.canvas, region, image.Transparent, image.Point{}, draw.Src)
	case model.DisposePrevious:
		draw.Draw(c.canvas, region, saved, region.Min, draw.Src)
	}

	return out
}

func frameRegion(f model.Frame) image.Rectangle {
	w, h := f.Control.Width, f.Control.Height
	if (w == 0 || h == 0) && f.Image != nil {
		b := f.Image.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	return image.Rect(f.Control.XOffset, f.Control.YOffset, f.Control.XOffset+w, f.Control.YOffset+h)
}
