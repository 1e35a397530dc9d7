package model

// Result is the outcome of extracting the frames of one Source.
//
// A Result with a nil Err means every frame reported by the decoder was
// written. When Err is set, FramesWritten tells how far extraction got;
// files already written are left in place.
type Result struct {
	Source Source

	// FramesFound is the number of frames the decoder reported.
	FramesFound int

	// FramesWritten is the number of frame files written.
	FramesWritten int

	// Files lists the written frame files in decode order.
	Files []string

	// Manifest is the path of the frame manifest, if one was written.
	Manifest string

	Err error
}

// OK reports whether extraction fully succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
