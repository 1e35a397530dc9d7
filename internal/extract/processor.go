package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/philiporlando/apng-to-png/internal/apng"
	"github.com/philiporlando/apng-to-png/internal/config"
	ioutils "github.com/philiporlando/apng-to-png/internal/io"
	"github.com/philiporlando/apng-to-png/internal/manifest"
	"github.com/philiporlando/apng-to-png/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// readBatch is how many directory entries are read per ReadDir call.
const readBatch = 64

// FrameExtractor extracts the frames of a single source.
type FrameExtractor interface {
	ExtractFrames(ctx context.Context, src model.Source) model.Result
}

// Stats is a snapshot of run progress.
type Stats struct {
	FilesDone   int64
	FilesTotal  int64
	FramesDone  int64
	FramesTotal int64
	FilesFailed int64
}

// Processor runs the extractor over every APNG file of a folder.
type Processor struct {
	extractor     FrameExtractor
	maxConcurrent int

	filesTotal  atomic.Int64
	filesDone   atomic.Int64
	filesFailed atomic.Int64
	framesTotal atomic.Int64
	framesDone  atomic.Int64

	logger     *zap.Logger
	onProgress func(ProgressEvent)
}

// NewProcessor creates a Processor backed by the APNG file decoder.
//
// onProgress may be called from several goroutines when
// settings.MaxConcurrentFiles is greater than one.
func NewProcessor(settings *config.Settings, logger *zap.Logger, onProgress func(ProgressEvent)) (*Processor, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	level, err := settings.Compression()
	if err != nil {
		return nil, err
	}
	format, err := settings.Manifest()
	if err != nil {
		return nil, err
	}

	p := newProcessor(settings.MaxConcurrentFiles, logger, onProgress)
	p.extractor = NewExtractor(
		apng.NewFileDecoder(),
		ioutils.NewImageService(level),
		ExtractorOptions{
			CompositeFrames: settings.CompositeFrames,
			Manifest:        manifest.NewWriter(format),
		},
		p.logger,
		p.handleEvent,
	)
	return p, nil
}

// NewProcessorWithExtractor creates a Processor around any FrameExtractor.
func NewProcessorWithExtractor(extractor FrameExtractor, maxConcurrent int, logger *zap.Logger, onProgress func(ProgressEvent)) *Processor {
	p := newProcessor(maxConcurrent, logger, onProgress)
	p.extractor = extractor
	return p
}

func newProcessor(maxConcurrent int, logger *zap.Logger, onProgress func(ProgressEvent)) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Processor{
		maxConcurrent: maxConcurrent,
		logger:        logger,
		onProgress:    onProgress,
	}
}

// ProcessDir extracts every .apng file directly inside inputDir into its
// own subfolder of outputDir.
//
// Results are returned in enumeration order. The returned error is non-nil
// only when the run itself could not proceed: inputDir cannot be listed,
// a destination folder cannot be created (ErrOutputDir), or ctx is done.
// Per-file failures are reported in the Results only.
func (p *Processor) ProcessDir(ctx context.Context, inputDir, outputDir string) ([]model.Result, error) {
	if err := ioutils.EnsureDir(outputDir); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOutputDir, outputDir, err)
	}

	p.logger.Info("Processing APNG files", zap.String("input", inputDir), zap.String("output", outputDir))
	p.progress(ProgressEvent{Level: LevelInfo, Message: fmt.Sprintf("Processing APNG files in '%s'", inputDir)})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrent)

	var slots []*model.Result
	walkErr := walkAPNG(gctx, inputDir, func(path string) error {
		src := model.NewSource(path, outputDir)
		slot := &model.Result{Source: src}
		slots = append(slots, slot)
		p.filesTotal.Add(1)

		g.Go(func() error {
			*slot = p.extractor.ExtractFrames(gctx, src)
			p.filesDone.Add(1)
			if !slot.OK() && !interrupted(slot.Err) {
				p.filesFailed.Add(1)
			}
			if errors.Is(slot.Err, ErrOutputDir) {
				return slot.Err
			}
			return nil
		})
		return nil
	})

	groupErr := g.Wait()

	results := make([]model.Result, len(slots))
	for i, slot := range slots {
		results[i] = *slot
	}

	switch {
	case groupErr != nil:
		return results, groupErr
	case ctx.Err() != nil:
		return results, ctx.Err()
	case walkErr != nil:
		return results, walkErr
	}

	st := p.Progress()
	p.logger.Info("Finished processing",
		zap.Int64("files", st.FilesDone),
		zap.Int64("failed", st.FilesFailed),
		zap.Int64("frames", st.FramesDone),
	)
	return results, nil
}

// Scan lists the sources ProcessDir would extract, without touching outputDir.
func (p *Processor) Scan(ctx context.Context, inputDir, outputDir string) ([]model.Source, error) {
	var sources []model.Source
	err := walkAPNG(ctx, inputDir, func(path string) error {
		sources = append(sources, model.NewSource(path, outputDir))
		return nil
	})
	return sources, err
}

// Progress returns current run progress.
//
// Frame counts only advance when the Processor owns its Extractor
// (NewProcessor), since they are derived from extractor events.
func (p *Processor) Progress() Stats {
	return Stats{
		FilesDone:   p.filesDone.Load(),
		FilesTotal:  p.filesTotal.Load(),
		FramesDone:  p.framesDone.Load(),
		FramesTotal: p.framesTotal.Load(),
		FilesFailed: p.filesFailed.Load(),
	}
}

func (p *Processor) handleEvent(event ProgressEvent) {
	switch event.Kind {
	case EventFileStart:
		p.framesTotal.Add(int64(event.Total))
	case EventFrame:
		p.framesDone.Add(1)
	}
	p.progress(event)
}

func (p *Processor) progress(event ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(event)
	}
}

// walkAPNG calls fn for every non-directory entry of dir with an .apng
// extension. Entries are read in batches, in the order the file system
// returns them; nothing is sorted and subfolders are not entered.
func walkAPNG(ctx context.Context, dir string, fn func(path string) error) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		entries, err := f.ReadDir(readBatch)
		for _, entry := range entries {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if !isAPNGEntry(entry) {
				continue
			}
			if err := fn(filepath.Join(dir, entry.Name())); err != nil {
				return err
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func isAPNGEntry(entry fs.DirEntry) bool {
	return !entry.IsDir() && model.IsAPNGName(entry.Name())
}
