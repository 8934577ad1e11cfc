package main

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"accentring/compose"
	"accentring/engine"
	"accentring/surface"
)

// TUI message types
type StateMsg struct{ State engine.State }
type ComposedMsg struct {
	Slice int
	Text  string
}
type ChordMsg struct{ Text, Mode string }
type ErrorMsg struct{ Text string }

type tuiModel struct {
	state     engine.State
	chord     string
	mode      string
	lastSlice int
	lastText  string
	count     int
	errLine   string
	width     int
	height    int

	// picker is set when no window surface exists; digit keys pick a
	// slice on it while it is shown.
	picker *surface.Headless
}

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
)

const (
	ringCharsW = 31
	ringCharsH = 15
)

var (
	ringIdleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	ringActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	ringPickStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	boldHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Bold(true)
	errStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	textStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

func newTUIModel(chord, mode string, picker *surface.Headless) tuiModel {
	return tuiModel{chord: chord, mode: mode, lastSlice: -1, picker: picker}
}

func NewTUIProgram(chord, mode string, picker *surface.Headless) *tea.Program {
	return tea.NewProgram(newTUIModel(chord, mode, picker), tea.WithAltScreen())
}

func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch k := msg.String(); {
		case k == "ctrl+c" || k == "q":
			return m, tea.Quit
		case k == "esc":
			if m.picker != nil {
				m.picker.Dismiss()
			}
		case len(k) == 1 && k[0] >= '1' && k[0] <= '9':
			if m.picker != nil {
				m.picker.Select(int(k[0] - '1'))
			}
		}

	case StateMsg:
		m.state = msg.State

	case ComposedMsg:
		m.count++
		m.lastSlice = msg.Slice
		m.lastText = msg.Text

	case ChordMsg:
		m.chord = msg.Text
		if msg.Mode != "" {
			m.mode = msg.Mode
		}

	case ErrorMsg:
		m.errLine = msg.Text
	}
	return m, nil
}

func (m tuiModel) View() string {
	active := m.state == engine.SurfaceVisible
	var b strings.Builder
	b.WriteString(renderRing(active, m.lastSlice))

	var status string
	switch m.state {
	case engine.SurfaceVisible:
		status = ringActiveStyle.Bold(true).Render("◉ PICK A MARK")
	case engine.AwaitingCaptureKey:
		status = ringPickStyle.Bold(true).Render("● TYPE A LETTER")
	default:
		status = dimStyle.Render("○ STANDBY")
	}
	b.WriteString(status + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("chord: %s  output: %s", m.chord, m.mode)) + "\n")
	if m.errLine != "" {
		b.WriteString(errStyle.Render(m.errLine) + "\n")
	}
	b.WriteString("\n")

	if m.lastText != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Last composition (#%d, %s)", m.count, compose.MarkName(m.lastSlice))))
		b.WriteString("  " + textStyle.Render(m.lastText) + "\n")
	} else {
		b.WriteString(dimStyle.Render("No compositions yet") + "\n")
	}
	b.WriteString("\n")

	if m.picker != nil {
		var legend []string
		for i, l := range surface.Labels() {
			legend = append(legend, fmt.Sprintf("%d %s", i+1, l))
		}
		b.WriteString(helpStyle.Render(strings.Join(legend, "  ")) + "\n")
		b.WriteString(boldHelpStyle.Render("1-9") + helpStyle.Render(" pick, ") +
			boldHelpStyle.Render("esc") + helpStyle.Render(" dismiss") + "\n")
	}
	b.WriteString(boldHelpStyle.Render(m.chord) + helpStyle.Render(" to open the ring, ") +
		boldHelpStyle.Render("q") + helpStyle.Render(" to quit") + "\n")
	b.WriteString(helpStyle.Render("accentring " + version))
	return b.String()
}

// renderRing draws the slice ring with half-block characters, two pixel
// rows per text row. The last picked slice is highlighted.
func renderRing(active bool, picked int) string {
	const pixW = ringCharsW
	const pixH = ringCharsH * 2
	ring := surface.DefaultRing()
	scale := (ring.Outer * 2) / float64(pixH-2)

	slice := func(x, y int) int {
		dx := (float64(x) + 0.5 - float64(pixW)/2) * scale
		dy := (float64(y) + 0.5 - float64(pixH)/2) * scale
		return ring.SliceAt(dx, dy)
	}
	style := func(idx int) lipgloss.Style {
		switch {
		case idx == picked:
			return ringPickStyle
		case active:
			return ringActiveStyle
		}
		return ringIdleStyle
	}

	var out strings.Builder
	for cy := 0; cy < ringCharsH; cy++ {
		for cx := 0; cx < ringCharsW; cx++ {
			top := slice(cx, cy*2)
			bot := slice(cx, cy*2+1)
			switch {
			case top < 0 && bot < 0:
				out.WriteString(" ")
			case top >= 0 && bot >= 0:
				out.WriteString(style(top).Render("█"))
			case top >= 0:
				out.WriteString(style(top).Render("▀"))
			default:
				out.WriteString(style(bot).Render("▄"))
			}
		}
		out.WriteString("\n")
	}
	return out.String()
}
