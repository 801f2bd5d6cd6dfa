// Package ui provides the bubbletea progress display for the render run.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/jivescan/internal/cli"
	"github.com/linuxmatters/jivescan/internal/config"
)

// RenderProgress reports a rendered frame.
type RenderProgress struct {
	Frame       int
	TotalFrames int
	Level       int
	Elapsed     time.Duration
}

// MuxStarted signals that all frames are written and the muxer is running.
type MuxStarted struct{}

// RenderComplete signals the end of the run.
type RenderComplete struct {
	OutputFile  string
	VideoFile   string
	TotalFrames int
	TotalTime   time.Duration
	FileSize    int64
}

// quitTimerMsg is sent when it's time to quit after showing completion.
type quitTimerMsg struct{}

var (
	uiTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.ScanRed)

	uiStatStyle = lipgloss.NewStyle().
			Foreground(cli.ScanGray)

	uiValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	uiMeterStyle = lipgloss.NewStyle().
			Foreground(cli.ScanBrightRed)

	uiMeterDimStyle = lipgloss.NewStyle().
			Foreground(cli.ScanDimRed)
)

// renderModel implements the bubbletea model for the render run.
type renderModel struct {
	progress        progress.Model
	lastUpdate      RenderProgress
	muxing          bool
	complete        *RenderComplete
	width           int
	completionDelay time.Duration
}

// NewRenderModel creates the render progress model.
func NewRenderModel() tea.Model {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &renderModel{
		progress:        p,
		completionDelay: 2 * time.Second,
	}
}

// Init initializes the model.
func (m *renderModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *renderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-30, 50)
		return m, nil

	case RenderProgress:
		m.lastUpdate = msg
		return m, nil

	case MuxStarted:
		m.muxing = true
		return m, nil

	case RenderComplete:
		m.complete = &msg
		return m, tea.Tick(m.completionDelay, func(time.Time) tea.Msg {
			return quitTimerMsg{}
		})

	case quitTimerMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI.
func (m *renderModel) View() string {
	var sb strings.Builder

	sb.WriteString(uiTitleStyle.Render("Jivescan 🚨 Rendering"))
	sb.WriteString("\n\n")

	if m.complete != nil {
		sb.WriteString(cli.SuccessStyle.Render("✓ Done!"))
		sb.WriteString("\n\n")
		sb.WriteString(uiStatStyle.Render("Output:    "))
		sb.WriteString(uiValueStyle.Render(m.complete.OutputFile))
		sb.WriteString("\n")
		sb.WriteString(uiStatStyle.Render("Frames:    "))
		sb.WriteString(uiValueStyle.Render(fmt.Sprintf("%d", m.complete.TotalFrames)))
		sb.WriteString("\n")
		sb.WriteString(uiStatStyle.Render("Duration:  "))
		sb.WriteString(uiValueStyle.Render(cli.FormatDuration(m.complete.TotalTime)))
		sb.WriteString("\n")
		if m.complete.FileSize > 0 {
			sb.WriteString(uiStatStyle.Render("File size: "))
			sb.WriteString(uiValueStyle.Render(cli.FormatBytes(m.complete.FileSize)))
			sb.WriteString("\n")
		}
		return sb.String()
	}

	if m.muxing {
		sb.WriteString(uiStatStyle.Render("Muxing audio track…"))
		sb.WriteString("\n")
		return sb.String()
	}

	u := m.lastUpdate
	if u.TotalFrames > 0 {
		ratio := float64(u.Frame) / float64(u.TotalFrames)
		sb.WriteString(m.progress.ViewAs(ratio))
		sb.WriteString(fmt.Sprintf(" %d/%d", u.Frame, u.TotalFrames))
		sb.WriteString("\n\n")
	}

	sb.WriteString(levelMeter(u.Level))
	sb.WriteString("\n\n")

	sb.WriteString(uiStatStyle.Render("Elapsed: "))
	sb.WriteString(uiValueStyle.Render(cli.FormatDuration(u.Elapsed)))
	sb.WriteString("\n")

	return sb.String()
}

// levelMeter renders the current activity level as a block meter.
func levelMeter(level int) string {
	lit := uiMeterStyle.Render(strings.Repeat("█", level))
	dim := uiMeterDimStyle.Render(strings.Repeat("░", config.MaxLevel-level))
	return fmt.Sprintf("%s%s %2d", lit, dim, level)
}
