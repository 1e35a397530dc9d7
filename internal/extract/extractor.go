package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/philiporlando/apng-to-png/internal/apng"
	ioutils "github.com/philiporlando/apng-to-png/internal/io"
	"github.com/philiporlando/apng-to-png/internal/manifest"
	"github.com/philiporlando/apng-to-png/internal/model"
	"go.uber.org/zap"
)

// ErrOutputDir marks a failure to create a destination folder.
// Processor treats it as fatal for the whole run.
var ErrOutputDir = errors.New("create output folder")

// Extractor writes the frames of one APNG file as numbered PNG files.
type Extractor struct {
	decoder   apng.Decoder
	images    *ioutils.ImageService
	manifest  *manifest.Writer
	composite bool

	logger     *zap.Logger
	onProgress func(ProgressEvent)
}

// ExtractorOptions configures an Extractor.
type ExtractorOptions struct {
	// CompositeFrames writes the full canvas as a viewer would show it
	// instead of the raw frame region.
	CompositeFrames bool

	// Manifest, if enabled, writes a frame manifest next to the frames.
	Manifest *manifest.Writer
}

// NewExtractor creates a new Extractor.
//
// logger may be nil; onProgress may be nil. onProgress must be safe for
// concurrent use when the Extractor is shared between goroutines.
func NewExtractor(decoder apng.Decoder, images *ioutils.ImageService, opts ExtractorOptions, logger *zap.Logger, onProgress func(ProgressEvent)) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		decoder:    decoder,
		images:     images,
		manifest:   opts.Manifest,
		composite:  opts.CompositeFrames,
		logger:     logger,
		onProgress: onProgress,
	}
}

// ExtractFrames decodes src and writes its frames to src.OutputDir.
//
// Failures never panic or propagate: they are logged and returned in the
// Result. Frames written before a failure are left in place.
func (e *Extractor) ExtractFrames(ctx context.Context, src model.Source) model.Result {
	res := model.Result{Source: src}

	if err := ioutils.EnsureDir(src.OutputDir); err != nil {
		return e.fail(res, fmt.Errorf("%w %s: %w", ErrOutputDir, src.OutputDir, err))
	}

	anim, err := e.decoder.Decode(ctx, src.Path)
	if err != nil {
		return e.fail(res, err)
	}

	total := len(anim.Frames)
	res.FramesFound = total
	e.logger.Info("Found frames", zap.String("file", src.Name), zap.Int("frames", total))
	e.progress(ProgressEvent{
		Kind:    EventFileStart,
		Level:   LevelVerbose,
		Message: fmt.Sprintf("Found %d frames in %s", total, src.Name),
		File:    src.Name,
		Total:   total,
	})

	var comp *ioutils.Compositor
	if e.composite {
		comp = ioutils.NewCompositor(anim.Width, anim.Height)
	}

	width := model.PadWidth(total)
	res.Files = make([]string, 0, total)

	for i, frame := range anim.Frames {
		img := frame.Image
		if comp != nil {
			img = comp.Render(frame)
		}

		data, err := e.images.EncodePNG(ctx, img)
		if err != nil {
			return e.fail(res, fmt.Errorf("encode frame %d: %w", i, err))
		}

		path := filepath.Join(src.OutputDir, model.FrameFileName(i, width))
		if err := ioutils.WriteFile(ctx, path, data); err != nil {
			return e.fail(res, fmt.Errorf("write frame %d: %w", i, err))
		}

		res.FramesWritten++
		res.Files = append(res.Files, path)
		e.progress(ProgressEvent{Kind: EventFrame, Level: LevelVerbose, File: src.Name, Done: i + 1, Total: total})
	}

	if e.manifest.Enabled() {
		path, err := e.writeManifest(ctx, src, anim, res.Files)
		if err != nil {
			return e.fail(res, fmt.Errorf("write manifest: %w", err))
		}
		res.Manifest = path
	}

	e.logger.Info("Extracted frames",
		zap.String("file", src.Name),
		zap.String("output", src.OutputDir),
		zap.Int("frames", res.FramesWritten),
	)
	e.progress(ProgressEvent{
		Kind:    EventFileDone,
		Level:   LevelSuccess,
		Message: fmt.Sprintf("Extracted %d frames from '%s' into '%s'", res.FramesWritten, src.Name, src.OutputDir),
		File:    src.Name,
		Done:    res.FramesWritten,
		Total:   total,
	})

	return res
}

func (e *Extractor) writeManifest(ctx context.Context, src model.Source, anim *model.Animation, files []string) (string, error) {
	content, err := e.manifest.Create(src, anim, files)
	if err != nil {
		return "", err
	}
	path := filepath.Join(src.OutputDir, e.manifest.FileName())
	if err := ioutils.WriteFile(ctx, path, content); err != nil {
		return "", err
	}
	return path, nil
}

func (e *Extractor) fail(res model.Result, err error) model.Result {
	res.Err = err

	if interrupted(err) {
		e.logger.Warn("Interrupted",
			zap.String("file", res.Source.Name),
			zap.Int("frames_written", res.FramesWritten),
		)
		e.progress(ProgressEvent{
			Kind:    EventFileDone,
			Level:   LevelWarning,
			Message: fmt.Sprintf("Interrupted '%s' after %d frames", res.Source.Name, res.FramesWritten),
			File:    res.Source.Name,
			Done:    res.FramesWritten,
			Total:   res.FramesFound,
		})
		return res
	}

	e.logger.Error("Failed to process",
		zap.String("file", res.Source.Name),
		zap.Int("frames_written", res.FramesWritten),
		zap.Error(err),
	)
	e.progress(ProgressEvent{
		Kind:    EventFileDone,
		Level:   LevelError,
		Message: fmt.Sprintf("Failed to process '%s': %v", res.Source.Name, err),
		File:    res.Source.Name,
		Done:    res.FramesWritten,
		Total:   res.FramesFound,
	})
	return res
}

// interrupted reports whether err comes from a cancelled run rather than
// from the file itself.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (e *Extractor) progress(event ProgressEvent) {
	if e.onProgress != nil {
		e.onProgress(event)
	}
}
