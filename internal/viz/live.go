// Package viz renders live run progress and playback plots in the terminal.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 40

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// ProgressMsg reports one completed simulation iteration.
type ProgressMsg struct {
	Iteration int
	Total     int
	StepTime  time.Duration
}

// DoneMsg reports the end of the run.
type DoneMsg struct {
	Err error
}

// Model is the live progress view. The simulation runs elsewhere and feeds
// the model through Program.Send.
type Model struct {
	title     string
	particles int

	iteration int
	total     int
	lastStep  time.Duration
	start     time.Time

	finished bool
	err      error
}

func NewModel(title string, particles, total int) Model {
	return Model{
		title:     title,
		particles: particles,
		total:     total,
		start:     time.Now(),
	}
}

// Err returns the run error delivered by DoneMsg, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case ProgressMsg:
		m.iteration = msg.Iteration
		m.total = msg.Total
		m.lastStep = msg.StepTime
	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.title))
	b.WriteString("\n")

	frac := 0.0
	if m.total > 0 {
		frac = float64(m.iteration) / float64(m.total)
	}
	filled := int(frac * barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	b.WriteString(barStyle.Render(bar))
	b.WriteString(fmt.Sprintf(" %3.0f%%\n", frac*100))

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("particles", fmt.Sprintf("%d", m.particles))
	row("iteration", fmt.Sprintf("%d / %d", m.iteration, m.total))
	row("step time", m.lastStep.Round(time.Microsecond).String())
	row("elapsed", time.Since(m.start).Round(time.Millisecond).String())

	if m.finished {
		if m.err != nil {
			b.WriteString(errStyle.Render("failed: " + m.err.Error()))
		} else {
			b.WriteString(doneStyle.Render("done"))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("q: quit"))
	b.WriteString("\n")

	return b.String()
}
