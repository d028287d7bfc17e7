// Package scanbar displays scan progress as a single-line progress bar
// while the library is being classified.
package scanbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sorenlind/preservationist/internal/library"
)

// barWidth is the width of the progress bar itself, without the counters.
const barWidth = 40

var phaseStyle = lipgloss.NewStyle().Bold(true)

// Msg carries a scan progress update into the model.
type Msg library.ScanProgress

// DoneMsg tells the model the scan has finished.
type DoneMsg struct{}

// Model renders the progress of one library scan.
type Model struct {
	bar     progress.Model
	phase   string
	current int
	total   int
}

// New creates a progress model.
func New() Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = barWidth
	return Model{bar: bar, phase: "discovering"}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case Msg:
		m.phase = msg.Phase
		m.current = msg.Current
		m.total = msg.Total
		return m, nil
	case DoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Interrupt
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(phaseStyle.Render(phaseLabel(m.phase)))
	sb.WriteString(" ")
	if m.total > 0 {
		sb.WriteString(m.bar.ViewAs(float64(m.current) / float64(m.total)))
		sb.WriteString(fmt.Sprintf(" %d/%d", m.current, m.total))
	}
	sb.WriteString("\n")
	return sb.String()
}

func phaseLabel(phase string) string {
	switch phase {
	case "discovering":
		return "Discovering albums..."
	case "classifying":
		return "Classifying albums"
	default:
		return "Done"
	}
}
