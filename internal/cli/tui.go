package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// searchModel - Live Search Progress
// =============================================================================

// searchProgressMsg carries one search progress update.
type searchProgressMsg struct {
	Iteration int
	Best      float64
}

// searchDoneMsg signals that the search finished.
type searchDoneMsg struct {
	Err error
}

// searchModel is the bubbletea model for live search progress. It renders
// an iteration bar and the best score found so far; the search itself runs
// outside the program and feeds it messages.
type searchModel struct {
	total     int
	iteration int
	best      float64
	hasBest   bool
	done      bool
	aborted   bool
	err       error
}

func newSearchModel(total int) searchModel {
	return searchModel{total: total}
}

func (m searchModel) Init() tea.Cmd {
	return nil
}

func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case searchProgressMsg:
		m.iteration = msg.Iteration
		m.best = msg.Best
		m.hasBest = true
	case searchDoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m searchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Anchor Search"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q: abort"))
	b.WriteString("\n\n")

	b.WriteString("  " + searchBar(m.iteration, m.total, 30))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d", m.iteration, m.total)))
	b.WriteString("\n")

	if m.hasBest {
		b.WriteString("  " + StyleDim.Render("best score") + " " + StyleHighlight.Render(fmt.Sprintf("%.4f", m.best)))
		b.WriteString("\n")
	}

	if m.done && m.err == nil {
		b.WriteString("\n" + StyleSuccess.Render("done") + "\n")
	}
	return b.String()
}

// searchBar renders a fixed-width progress bar.
func searchBar(current, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := current * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(colorCyan).Render(bar)
}
