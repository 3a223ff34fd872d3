package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nerja/internal/processor"
)

type Model struct {
	updates  <-chan processor.ProgressUpdate
	bar      progress.Model
	started  time.Time
	total    int
	files    int
	images   int
	hd       int
	copied   int
	skipped  int
	failed   int
	bytes    int64
	warnings int
	lastWarn string
	quitting bool

	interrupt   func()
	interrupted bool
}

type doneMsg struct{}

type updateMsg processor.ProgressUpdate

// NewModel builds the progress view. total is the number of entries the
// scan will visit; 0 leaves the bar empty.
func NewModel(updates <-chan processor.ProgressUpdate, total int) Model {
	bar := progress.New(
		progress.WithGradient(string(ColorAccentAlt), string(ColorAccent)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	return Model{updates: updates, bar: bar, total: total, started: time.Now()}
}

// WithInterrupt registers fn to run on ctrl+c. The model keeps draining
// updates until the scan closes the channel.
func (m Model) WithInterrupt(fn func()) Model {
	m.interrupt = fn
	return m
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.files += msg.FilesDelta
		m.images += msg.ImagesDelta
		m.hd += msg.HDDelta
		m.copied += msg.CopiedDelta
		m.skipped += msg.SkippedDelta
		m.failed += msg.FailedDelta
		m.bytes += msg.BytesDelta
		if msg.Warning != "" {
			m.warnings++
			m.lastWarn = msg.Warning
		}
		return m, listenForUpdates(m.updates)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.interrupted {
			m.interrupted = true
			if m.interrupt != nil {
				m.interrupt()
			}
		}
		return m, nil
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		width := msg.Width - 10
		if width > 60 {
			width = 60
		}
		if width < 20 {
			width = 20
		}
		m.bar.Width = width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	lines := []string{
		titleStyle.Render("nerja"),
		labelStyle.Render(fmt.Sprintf("Files: %d/%d", m.files, m.total)) +
			dimStyle.Render(fmt.Sprintf("  images:%d  hd:%d", m.images, m.hd)),
		labelStyle.Render(fmt.Sprintf("Copied: %d (%s)", m.copied, FormatBytes(m.bytes))) +
			dimStyle.Render(fmt.Sprintf("  skipped:%d  failed:%d", m.skipped, m.failed)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		m.bar.ViewAs(m.ratio()),
	}
	if m.interrupted {
		lines = append(lines, warnStyle.Render("Stopping after the current file..."))
	}
	if m.lastWarn != "" {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("! %s (%d warnings)", m.lastWarn, m.warnings)))
	}

	return strings.Join(lines, "\n")
}

func (m Model) ratio() float64 {
	if m.total <= 0 {
		return 0
	}
	r := float64(m.files) / float64(m.total)
	if r > 1 {
		return 1
	}
	return r
}

func listenForUpdates(updates <-chan processor.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
	warnStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
)
