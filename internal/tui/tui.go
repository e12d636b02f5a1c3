// Package tui provides a Bubble Tea terminal user interface for yt2mp3.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AzSumToshko/youtube-to-mp3/internal/batch"
	"github.com/AzSumToshko/youtube-to-mp3/internal/config"
	"github.com/AzSumToshko/youtube-to-mp3/internal/model"
	"github.com/AzSumToshko/youtube-to-mp3/internal/report"
	"github.com/AzSumToshko/youtube-to-mp3/internal/ytdlp"
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
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StatePreparing
	StateProcessing
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   batch.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	items     []model.WorkItem
	err       error

	// Batch context
	ctx    context.Context
	cancel context.CancelFunc

	// Batch manager reference
	manager *batch.Manager

	// Progress events from the running batch
	events chan batch.ProgressEvent

	// Batch progress
	itemsDone  int
	itemsTotal int

	// Result summary
	succeeded     int
	failed        int
	reportWritten bool

	// Options
	tagging  bool
	playlist bool
	verbose  bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "https://youtu.be/... or path/to/batch.json"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  config.DefaultSettings(),
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		tagging:   true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for each batch progress event.
	ProgressMsg struct {
		Event batch.ProgressEvent
	}

	// PrepareDoneMsg is sent when dependency checks and work item
	// loading complete.
	PrepareDoneMsg struct {
		Items    []model.WorkItem
		Warnings []string
		Err      error
	}

	// BatchDoneMsg is sent when the batch run completes.
	BatchDoneMsg struct {
		Succeeded     int
		Failed        int
		ReportWritten bool
		Err           error
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
			if m.state == StateProcessing || m.state == StatePreparing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StatePreparing
				return m, tea.Batch(m.prepare(), m.spinner.Tick)
			}

		case "t":
			if m.state == StateInput {
				m.tagging = !m.tagging
			}

		case "p":
			if m.state == StateInput {
				m.playlist = !m.playlist
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new batch
				m.state = StateInput
				m.logs = nil
				m.items = nil
				m.err = nil
				m.itemsDone = 0
				m.itemsTotal = 0
				m.succeeded = 0
				m.failed = 0
				m.reportWritten = false
				m.manager = nil
				m.events = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level != batch.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{
				Message: msg.Event.Message,
				Level:   msg.Event.Level,
			})
			// Keep only last 10 logs
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		}
		cmds = append(cmds, m.listenForProgress())

	case PrepareDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			for _, warning := range msg.Warnings {
				m.logs = append(m.logs, LogEntry{Message: warning, Level: batch.LevelWarning})
			}
			m.items = msg.Items
			m.itemsTotal = len(msg.Items)
			m.events = make(chan batch.ProgressEvent, 64)
			events := m.events
			m.manager = batch.NewManager(m.batchSettings(), func(event batch.ProgressEvent) {
				select {
				case events <- event:
				default:
				}
			})
			m.state = StateProcessing
			cmds = append(cmds, m.startBatch(), m.listenForProgress(), m.tickProgress())
		}

	case BatchDoneMsg:
		m.succeeded = msg.Succeeded
		m.failed = msg.Failed
		m.reportWritten = msg.ReportWritten
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateProcessing {
			done, total := m.manager.Progress()
			m.itemsDone = done
			m.itemsTotal = total

			var percent float64
			if total > 0 {
				percent = float64(done) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
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

// batchSettings applies the interactive toggles to a copy of the
// settings.
func (m Model) batchSettings() *config.Settings {
	settings := *m.settings
	settings.ModifyTags = m.tagging
	settings.CreatePlaylist = m.playlist
	settings.Verbose = m.verbose
	return &settings
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// listenForProgress waits for the next progress event from the batch.
func (m Model) listenForProgress() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 YouTube to MP3"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download, tag and file YouTube audio"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StatePreparing:
		b.WriteString(m.viewPreparing())
	case StateProcessing:
		b.WriteString(m.viewProcessing())
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

	b.WriteString(subtitleStyle.Render("Enter a YouTube URL or a batch file path:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	// Options
	taggingCheck := "[ ]"
	if m.tagging {
		taggingCheck = "[×]"
	}
	playlistCheck := "[ ]"
	if m.playlist {
		playlistCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Write ID3 tags and cover art (t)\n", taggingCheck))
	b.WriteString(fmt.Sprintf("  %s Create playlist per destination (p)\n", playlistCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Music folder: %s", m.settings.MusicFolder)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewPreparing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Checking dependencies and loading tracks..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewProcessing() string {
	var b strings.Builder

	// Progress bar
	var percent float64
	if m.itemsTotal > 0 {
		percent = float64(m.itemsDone) / float64(m.itemsTotal)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Tracks: %d/%d", m.itemsDone, m.itemsTotal)))
	b.WriteString("\n\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	summary := fmt.Sprintf(
		"✨ Batch Complete!\n\n"+
			"Succeeded: %d\n"+
			"Failed: %d",
		m.succeeded,
		m.failed,
	)
	if m.reportWritten {
		summary += fmt.Sprintf("\nReport: %s", m.settings.FailureReportPath)
	}
	b.WriteString(boxStyle.Render(summary))

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
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
		case batch.LevelError:
			style = errorStyle
			prefix = "✗"
		case batch.LevelWarning:
			style = warningStyle
			prefix = "!"
		case batch.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case batch.LevelInfo:
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
		return "enter: start • t: tagging • p: playlist • v: verbose • esc: quit"
	case StatePreparing, StateProcessing:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new batch • q: quit"
	}
	return ""
}

// prepare checks external dependencies and resolves the input into work
// items.
func (m *Model) prepare() tea.Cmd {
	return func() tea.Msg {
		if err := ytdlp.CheckDependencies(); err != nil {
			return PrepareDoneMsg{Err: err}
		}

		input := m.textInput.Value()

		// A URL is a batch of one; anything else is a batch file path.
		if strings.Contains(input, "://") {
			items := []model.WorkItem{{URL: input, Destination: config.DefaultDestination}}
			return PrepareDoneMsg{Items: items}
		}

		items, warnings, err := config.LoadBatch(input)
		if err != nil {
			return PrepareDoneMsg{Err: err}
		}
		return PrepareDoneMsg{Items: items, Warnings: warnings}
	}
}

// startBatch runs the batch in the background and writes the failure
// report when needed.
func (m *Model) startBatch() tea.Cmd {
	manager := m.manager
	events := m.events
	ctx := m.ctx
	items := m.items
	reportPath := m.settings.FailureReportPath

	return func() tea.Msg {
		defer close(events)

		result, err := manager.Run(ctx, items)
		if err != nil {
			return BatchDoneMsg{Err: err}
		}

		wrote, reportErr := report.WriteIfFailed(result, reportPath)
		if reportErr != nil {
			return BatchDoneMsg{
				Succeeded: result.Succeeded(),
				Failed:    result.Failed(),
				Err:       reportErr,
			}
		}

		return BatchDoneMsg{
			Succeeded:     result.Succeeded(),
			Failed:        result.Failed(),
			ReportWritten: wrote,
		}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
