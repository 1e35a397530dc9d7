// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Directory creation
//   - File writing
//   - PNG encoding of decoded frames
//   - Compositing APNG frames onto a full-size canvas
//
// # File Operations
//
//	// Ensure directory exists (idempotent)
//	err := ioutils.EnsureDir("/out/clip1")
//
//	// Write data to file, replacing any existing file
//	err := ioutils.WriteFile(ctx, "/out/clip1/frame_000.png", data)
//
// # Image Processing
//
// The ImageService encodes frames as PNG:
//
//	svc := ioutils.NewImageService(ioutils.DefaultCompression)
//	data, err := svc.EncodePNG(ctx, frame.Image)
//
// The Compositor rebuilds what a viewer shows for each frame, honouring the
// APNG dispose and blend operations:
//
//	c := ioutils.NewCompositor(anim.Width, anim.Height)
//	for _, f := range anim.Frames {
//	    canvas := c.Render(f)
//	    // ...
//	}
package ioutils
