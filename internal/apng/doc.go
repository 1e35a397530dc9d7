// Package apng adapts the third-party APNG decoder to the model types.
//
// All APNG binary parsing is delegated to github.com/kettek/apng. This
// package only opens the file, runs the decoder and maps each decoded frame
// and its frame control chunk onto model.Frame:
//
//	dec := apng.NewFileDecoder()
//	anim, err := dec.Decode(ctx, "data/input/clip1.apng")
//	if err != nil {
//	    // malformed, unreadable or not an APNG
//	}
//	for i, f := range anim.Frames {
//	    fmt.Println(i, f.Image.Bounds(), f.Control.Delay())
//	}
//
// The Decoder interface lets callers substitute a fake in tests.
package apng
