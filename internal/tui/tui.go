// Package tui provides a Bubble Tea terminal user interface for apng-to-png.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/philiporlando/apng-to-png/internal/config"
	"github.com/philiporlando/apng-to-png/internal/extract"
	"github.com/philiporlando/apng-to-png/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is how many recent log lines are shown.
const maxLogs = 10

// manifestChoices is the cycle order of the manifest option.
var manifestChoices = []string{"none", "json", "ffconcat"}

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateExtracting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   extract.ProgressLevel
}

// logBuffer collects progress messages from extraction goroutines until the
// next tick copies them into the model.
type logBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (b *logBuffer) add(e LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, e)
	if len(b.entries) > maxLogs {
		b.entries = b.entries[len(b.entries)-maxLogs:]
	}
}

func (b *logBuffer) drain() []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.entries
	b.entries = nil
	return out
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	sources   []model.Source
	results   []model.Result
	err       error

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	processor *extract.Processor
	buffer    *logBuffer
	stats     extract.Stats

	// Options
	composite   bool
	manifestIdx int

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = settings.InputPath
	ti.SetValue(settings.InputPath)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	manifestIdx := 0
	for i, m := range manifestChoices {
		if m == settings.ManifestFormat {
			manifestIdx = i
		}
	}

	return Model{
		state:       StateInput,
		textInput:   ti,
		spinner:     sp,
		progress:    prog,
		settings:    settings,
		logs:        make([]LogEntry, 0),
		ctx:         ctx,
		cancel:      cancel,
		buffer:      &logBuffer{},
		composite:   settings.CompositeFrames,
		manifestIdx: manifestIdx,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ScanDoneMsg is sent when the input folder has been listed.
	ScanDoneMsg struct {
		Sources   []model.Source
		Processor *extract.Processor
		Err       error
	}

	// ExtractDoneMsg is sent when all files are processed.
	ExtractDoneMsg struct {
		Results []model.Result
		Stats   extract.Stats
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateExtracting || m.state == StateScanning {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateScanning
				return m, tea.Batch(m.scanInput(), m.spinner.Tick)
			}

		case "ctrl+o":
			if m.state == StateInput {
				m.composite = !m.composite
			}

		case "ctrl+n":
			if m.state == StateInput {
				m.manifestIdx = (m.manifestIdx + 1) % len(manifestChoices)
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new run
				m.state = StateInput
				m.logs = nil
				m.sources = nil
				m.results = nil
				m.err = nil
				m.stats = extract.Stats{}
				m.processor = nil
				m.buffer = &logBuffer{}
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ScanDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.state == StateScanning {
			m.sources = msg.Sources
			m.processor = msg.Processor
			m.state = StateExtracting
			cmds = append(cmds, m.startExtraction(), m.tickProgress())
		}

	case ExtractDoneMsg:
		m.results = msg.Results
		m.stats = msg.Stats
		m.logs = appendLogs(m.logs, m.buffer.drain())
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from processor
		if m.processor != nil && m.state == StateExtracting {
			m.stats = m.processor.Progress()
			m.logs = appendLogs(m.logs, m.buffer.drain())
			cmds = append(cmds, m.progress.SetPercent(framePercent(m.stats)), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func appendLogs(logs, more []LogEntry) []LogEntry {
	logs = append(logs, more...)
	if len(logs) > maxLogs {
		logs = logs[len(logs)-maxLogs:]
	}
	return logs
}

func framePercent(st extract.Stats) float64 {
	if st.FramesTotal == 0 {
		return 0
	}
	return float64(st.FramesDone) / float64(st.FramesTotal)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("APNG to PNG"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Extract the frames of animated PNG files"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateExtracting:
		b.WriteString(m.viewExtracting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Input folder:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	// Options
	compositeCheck := "[ ]"
	if m.composite {
		compositeCheck = "[x]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Composite full canvas (ctrl+o)\n", compositeCheck))
	b.WriteString(fmt.Sprintf("  Manifest: %s (ctrl+n)\n", manifestChoices[m.manifestIdx]))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output path: %s", m.settings.OutputPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning input folder..."))
	b.WriteString("\n\n")

	return b.String()
}

func (m Model) viewExtracting() string {
	var b strings.Builder

	// Files found
	b.WriteString(successStyle.Render(fmt.Sprintf("Found %d APNG file(s):", len(m.sources))))
	b.WriteString("\n")
	for _, src := range m.sources {
		b.WriteString(fileStyle.Render(fmt.Sprintf("  • %s", src.Name)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Progress bar
	b.WriteString(m.progress.ViewAs(framePercent(m.stats)))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %d/%d | Frames: %d/%d",
		m.stats.FilesDone,
		len(m.sources),
		m.stats.FramesDone,
		m.stats.FramesTotal,
	)))
	b.WriteString("\n\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"Extraction Complete!\n\n"+
			"Files: %d\n"+
			"Failed: %d\n"+
			"Frames: %d",
		len(m.results),
		m.stats.FilesFailed,
		m.stats.FramesDone,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case extract.LevelError:
			style = errorStyle
			prefix = "✗"
		case extract.LevelWarning:
			style = warningStyle
			prefix = "!"
		case extract.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case extract.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+o: composite • ctrl+n: manifest • esc: quit"
	case StateScanning, StateExtracting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// runSettings returns a copy of the settings with the UI options applied.
func (m Model) runSettings() *config.Settings {
	s := *m.settings
	s.InputPath = strings.TrimSpace(m.textInput.Value())
	s.CompositeFrames = m.composite
	s.ManifestFormat = manifestChoices[m.manifestIdx]
	return &s
}

// scanInput lists the input folder and creates the processor.
func (m Model) scanInput() tea.Cmd {
	settings := m.runSettings()
	ctx := m.ctx
	buffer := m.buffer

	return func() tea.Msg {
		processor, err := extract.NewProcessor(settings, nil, func(event extract.ProgressEvent) {
			if event.Message == "" || event.Kind == extract.EventFrame {
				return
			}
			buffer.add(LogEntry{Message: event.Message, Level: event.Level})
		})
		if err != nil {
			return ScanDoneMsg{Err: err}
		}

		sources, err := processor.Scan(ctx, settings.InputPath, settings.OutputPath)
		if err != nil {
			return ScanDoneMsg{Err: err}
		}
		if len(sources) == 0 {
			return ScanDoneMsg{Err: fmt.Errorf("no .apng files in %s", settings.InputPath)}
		}

		return ScanDoneMsg{Sources: sources, Processor: processor}
	}
}

// startExtraction runs the processor in the background.
func (m Model) startExtraction() tea.Cmd {
	settings := m.runSettings()
	ctx := m.ctx
	processor := m.processor

	return func() tea.Msg {
		if processor == nil {
			return ExtractDoneMsg{Err: fmt.Errorf("no processor")}
		}

		results, err := processor.ProcessDir(ctx, settings.InputPath, settings.OutputPath)
		return ExtractDoneMsg{
			Results: results,
			Stats:   processor.Progress(),
			Err:     err,
		}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
