package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

const clearLine = "\r\x1b[K"

// progressLine keeps a progress bar on the last terminal line while log
// output scrolls above it. It is used as the logger's writer.
type progressLine struct {
	mu   sync.Mutex
	w    io.Writer
	bar  progress.Model
	line string
}

func newProgressLine(w io.Writer) *progressLine {
	return &progressLine{
		w:   w,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Write prints a log entry above the bar.
func (p *progressLine) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.line != "" {
		fmt.Fprint(p.w, clearLine)
	}
	n, err := p.w.Write(b)
	if p.line != "" {
		fmt.Fprint(p.w, p.line)
	}
	return n, err
}

// Update redraws the bar at done/total frames.
func (p *progressLine) Update(file string, done, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var percent float64
	if total > 0 {
		percent = float64(done) / float64(total)
	}
	p.line = fmt.Sprintf("%s %d/%d frames  %s", p.bar.ViewAs(percent), done, total, file)
	fmt.Fprint(p.w, clearLine+p.line)
}

// Clear removes the bar.
func (p *progressLine) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.line != "" {
		fmt.Fprint(p.w, clearLine)
		p.line = ""
	}
}
