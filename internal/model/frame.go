package model

import (
	"fmt"
	"image"
	"strconv"
	"time"
)

// DisposeOp tells how the frame area is treated after the frame is shown.
type DisposeOp uint8

const (
	// DisposeNone leaves the canvas as it is.
	DisposeNone DisposeOp = iota

	// DisposeBackground clears the frame area to fully transparent black.
	DisposeBackground

	// DisposePrevious restores the frame area to what it was before the frame was drawn.
	DisposePrevious
)

// String returns the APNG name of the operation.
func (d DisposeOp) String() string {
	switch d {
	case DisposeNone:
		return "none"
	case DisposeBackground:
		return "background"
	case DisposePrevious:
		return "previous"
	default:
		return fmt.Sprintf("dispose(%d)", uint8(d))
	}
}

// BlendOp tells how the frame is drawn onto the canvas.
type BlendOp uint8

const (
	// BlendSource replaces the frame area, alpha included.
	BlendSource BlendOp = iota

	// BlendOver alpha-composites the frame over the canvas.
	BlendOver
)

// String returns the APNG name of the operation.
func (b BlendOp) String() string {
	switch b {
	case BlendSource:
		return "source"
	case BlendOver:
		return "over"
	default:
		return fmt.Sprintf("blend(%d)", uint8(b))
	}
}

// FrameControl is the per-frame metadata of an APNG frame (the fcTL chunk).
type FrameControl struct {
	XOffset int
	YOffset int
	Width   int
	Height  int

	// DelayNumerator / DelayDenominator is the frame delay in seconds.
	DelayNumerator   uint16
	DelayDenominator uint16

	DisposeOp DisposeOp
	BlendOp   BlendOp
}

// Delay returns how long the frame is shown.
//
// A zero denominator is treated as 100, as the APNG format specifies.
func (c FrameControl) Delay() time.Duration {
	den := c.DelayDenominator
	if den == 0 {
		den = 100
	}
	return time.Duration(c.DelayNumerator) * time.Second / time.Duration(den)
}

// Frame is one decoded still image together with its control metadata.
type Frame struct {
	Image   image.Image
	Control FrameControl
}

// Animation is the decoded content of one APNG file.
type Animation struct {
	// Width and Height are the canvas dimensions.
	Width  int
	Height int

	// LoopCount is the number of times to play the animation, 0 meaning forever.
	LoopCount uint

	// Frames holds the frames in decode order.
	Frames []Frame
}

const (
	// FrameFilePrefix and FrameFileExt frame every output file name.
	FrameFilePrefix = "frame_"
	FrameFileExt    = ".png"

	minPadWidth = 3
)

// PadWidth returns the number of digits frame indices are padded to for an
// animation of n frames: the greater of 3 and the decimal digit count of n.
func PadWidth(n int) int {
	digits := len(strconv.Itoa(n))
	if digits < minPadWidth {
		return minPadWidth
	}
	return digits
}

// FrameFileName returns the file name of frame index padded to width digits.
//
// Example:
//
//	FrameFileName(1, 3)    // "frame_001.png"
//	FrameFileName(42, 4)   // "frame_0042.png"
func FrameFileName(index, width int) string {
	return fmt.Sprintf("%s%0*d%s", FrameFilePrefix, width, index, FrameFileExt)
}
