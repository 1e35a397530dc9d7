// Package extract provides the orchestration logic that turns a folder of
// APNG files into folders of numbered PNG frames.
//
// # Processor
//
// The Processor coordinates a run:
//
//  1. Ensure the output root exists
//  2. Enumerate the input folder lazily, without recursing
//  3. Pick entries whose extension is .apng (any case)
//  4. Hand each one to the Extractor with output root / stem as destination
//
// # Extractor
//
// The Extractor handles one file: it ensures the destination folder exists,
// decodes the APNG, and writes frame_000.png, frame_001.png, ... in decode
// order. The index is padded to max(3, digits(frame count)) so that names
// always sort in decode order.
//
// # Basic Usage
//
//	p, err := extract.NewProcessor(settings, log, func(event extract.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := p.ProcessDir(ctx, settings.InputPath, settings.OutputPath)
//	if err != nil {
//	    // input folder missing, output folder not creatable, or cancelled
//	}
//	for _, r := range results {
//	    if !r.OK() {
//	        // per-file failure, already logged
//	    }
//	}
//
// # Failures
//
// A file that cannot be decoded or written produces a model.Result with Err
// set and never stops the run. Only ErrOutputDir and context cancellation
// abort ProcessDir.
//
// # Concurrency
//
// settings.MaxConcurrentFiles bounds how many files are extracted at once
// (default 1, fully sequential). Frames of a single file are always written
// one at a time.
package extract
