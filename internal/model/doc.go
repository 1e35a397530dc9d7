// Package model defines the core data structures used throughout
// apng-to-png.
//
// # Source
//
// Source is one APNG input file together with the folder its frames are
// written to:
//
//	src := model.NewSource("data/input/clip1.APNG", "data/output")
//	fmt.Println(src.Stem)      // "clip1"
//	fmt.Println(src.OutputDir) // "data/output/clip1"
//
// # Animation and Frame
//
// Animation is what a decoder produces for one source: the canvas size, the
// loop count and the ordered frames. Each Frame carries its still image and
// the frame control metadata (offsets, delay, dispose and blend operations).
//
// # Frame file naming
//
// Frame files are named frame_<index>.png, where the index is zero-padded to
// PadWidth(frameCount) digits so that file names sort in decode order:
//
//	w := model.PadWidth(1234)         // 4
//	model.FrameFileName(7, w)         // "frame_0007.png"
//
// # Result
//
// Result is the typed outcome of extracting a single source. Callers decide
// what to do with a failed Result; nothing is swallowed.
package model
