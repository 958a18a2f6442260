package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUI message types
type RecordingStartMsg struct{}
type RecordingStopMsg struct{}
type TranscriptMsg struct {
	Text    string
	Copied  bool
	Cleaned bool
}
type StatusMsg struct{ Text string }
type ErrorMsg struct{ Text string }
type RateLimitMsg struct{ Text string }
type CopiedMsg struct{}
type tickMsg time.Time

type tuiState int

const (
	tuiStateIdle tuiState = iota
	tuiStateRecording
)

// tuiActions are the callbacks the key handlers fire. They run on the
// Bubble Tea goroutine and must not block.
type tuiActions struct {
	Toggle  func()
	Copy    func(text string)
	Cleanup func(text string)
}

type tuiModel struct {
	actions tuiActions

	state          tuiState
	recordingStart time.Time
	statusLine     string
	errorLine      string
	rateLimit      string
	lastText       string
	lastCleaned    bool
	copied         bool
	msgCount       int
	width, height  int
}

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
)

var (
	styleRec      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleStandby  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleBusy     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleStatus   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	styleText     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleCleaned  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleCopied   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	styleDim      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleHelp     = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	styleHelpBold = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Bold(true)
)

func NewTUIProgram(actions tuiActions) *tea.Program {
	m := tuiModel{actions: actions}
	return tea.NewProgram(m, tea.WithAltScreen())
}

func tuiTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			if m.actions.Toggle != nil {
				m.actions.Toggle()
			}
		case "c":
			if m.actions.Copy != nil && m.lastText != "" {
				m.actions.Copy(m.lastText)
			}
		case "u":
			if m.actions.Cleanup != nil && m.lastText != "" {
				m.actions.Cleanup(m.lastText)
			}
		case "x":
			m.lastText = ""
			m.lastCleaned = false
			m.copied = false
			m.errorLine = ""
		}

	case tickMsg:
		return m, tuiTick()

	case RecordingStartMsg:
		m.state = tuiStateRecording
		m.recordingStart = time.Now()
		m.statusLine = ""
		m.errorLine = ""

	case RecordingStopMsg:
		m.state = tuiStateIdle

	case TranscriptMsg:
		m.state = tuiStateIdle
		m.msgCount++
		m.lastText = msg.Text
		m.lastCleaned = msg.Cleaned
		m.copied = msg.Copied
		m.statusLine = ""

	case StatusMsg:
		m.statusLine = msg.Text

	case ErrorMsg:
		m.state = tuiStateIdle
		m.statusLine = ""
		m.errorLine = msg.Text

	case CopiedMsg:
		m.copied = true

	case RateLimitMsg:
		m.rateLimit = msg.Text
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	// A trailing ellipsis marks an in-flight operation ("Transcribing...",
	// "Cleaning up...").
	busy := strings.HasSuffix(m.statusLine, "...")

	switch {
	case m.state == tuiStateRecording:
		elapsed := time.Since(m.recordingStart)
		b.WriteString(styleRec.Render(fmt.Sprintf("● REC %02d:%02d",
			int(elapsed.Minutes()), int(elapsed.Seconds())%60)))
	case busy:
		b.WriteString(styleBusy.Render("◌ WORKING"))
	default:
		b.WriteString(styleStandby.Render("○ STANDBY"))
	}
	b.WriteString("\n")

	if m.statusLine != "" {
		b.WriteString(styleStatus.Render(m.statusLine) + "\n")
	}
	if m.errorLine != "" {
		b.WriteString(styleError.Render("✗ "+m.errorLine) + "\n")
	}
	if m.rateLimit != "" {
		b.WriteString(styleDim.Render(m.rateLimit) + "\n")
	}
	b.WriteString("\n")

	wrapWidth := m.width - 2
	if wrapWidth < 10 {
		wrapWidth = 10
	}

	if m.lastText != "" {
		title := fmt.Sprintf("Last transcription (#%d)", m.msgCount)
		if m.lastCleaned {
			title += " · cleaned"
		}
		b.WriteString(styleTitle.Render(title) + "\n\n")

		textStyle := styleText
		if m.lastCleaned {
			textStyle = styleCleaned
		}
		lines := wrapText(m.lastText, wrapWidth)
		for i, line := range lines {
			b.WriteString(textStyle.Render(line))
			if i == len(lines)-1 && m.copied {
				b.WriteString(" " + styleCopied.Render("[✓ copied]"))
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString(styleDim.Render("No transcriptions yet") + "\n")
	}

	b.WriteString("\n")
	help := styleHelpBold.Render("Super+H") + styleHelp.Render(" or ") +
		styleHelpBold.Render("r") + styleHelp.Render(" record · ") +
		styleHelpBold.Render("c") + styleHelp.Render(" copy · ") +
		styleHelpBold.Render("u") + styleHelp.Render(" clean up · ") +
		styleHelpBold.Render("x") + styleHelp.Render(" clear · ") +
		styleHelpBold.Render("q") + styleHelp.Render(" quit")
	b.WriteString(help + "\n")
	b.WriteString(styleHelp.Render("murmur " + version))

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(1, 2).
		Render(b.String())
}

// tuiSend forwards a message to the running program, if any.
func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func wrapText(text string, width int) []string {
	if len(text) == 0 {
		return []string{""}
	}
	if width <= 0 {
		width = 1
	}

	var lines []string
	for len(text) > width {
		splitAt := width
		for i := width; i > 0; i-- {
			if text[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, text[:splitAt])
		text = strings.TrimLeft(text[splitAt:], " ")
	}
	if len(text) > 0 {
		lines = append(lines, text)
	}
	return lines
}
