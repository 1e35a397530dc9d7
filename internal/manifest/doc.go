// Package manifest renders per-animation frame manifests.
//
// Extracted frame files lose the timing and compositing information stored
// in the APNG. A manifest written next to the frames keeps it:
//
//	w := manifest.NewWriter(manifest.FormatFFConcat)
//	content, err := w.Create(src, anim, files)
//	os.WriteFile(filepath.Join(dir, w.FileName()), content, 0644)
//
// Supported formats:
//   - JSON (frames.json): canvas size, loop count, per-frame metadata
//   - ffconcat (frames.ffconcat): ffmpeg concat demuxer script, so the frames
//     can be reassembled into a video with the original delays
package manifest
