// Package historyui is an interactive terminal browser for the tailoring
// history ledger.
package historyui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hrakoto/tailor/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 2)

	entryTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 0, 0, 4)

	entrySubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Padding(0, 0, 0, 4)

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24")).
				Padding(0, 0, 0, 2)

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24")).
				Padding(0, 0, 0, 2)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(10)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(1, 0, 1, 4)
)

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

type browserModel struct {
	entries  []model.HistoryEntry
	cursor   int
	state    viewState
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.state == viewDetail {
				m.state = viewList
			}
			return m, nil
		case "up", "k":
			if m.state == viewList && m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.state == viewList && m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			if m.state == viewList && len(m.entries) > 0 {
				m.state = viewDetail
				m.viewport.SetContent(m.detailContent())
				m.viewport.GotoTop()
			}
			return m, nil
		}
	}

	if m.state == viewDetail && m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m browserModel) detailContent() string {
	e := m.entries[m.cursor]
	var b strings.Builder
	rows := []struct{ label, value string }{
		{"Company", e.Company},
		{"Position", e.Position},
		{"Date", e.Date},
		{"Status", e.Status},
		{"Run ID", e.ID},
	}
	for _, row := range rows {
		b.WriteString(detailLabelStyle.Render(row.label))
		b.WriteString(" " + row.value + "\n")
	}
	return b.String()
}

func (m browserModel) View() string {
	switch m.state {
	case viewDetail:
		s := titleStyle.Render("Tailoring Run")
		s += "\n" + m.viewport.View()
		s += hintStyle.Render("esc back  q quit")
		return s
	default:
		return m.listView()
	}
}

func (m browserModel) listView() string {
	s := titleStyle.Render(fmt.Sprintf("Application History (%d runs)", len(m.entries)))
	s += "\n"

	if len(m.entries) == 0 {
		s += emptyStyle.Render("No applications yet")
		s += hintStyle.Render("q quit")
		return s
	}

	for i, e := range m.entries {
		title := e.Company
		subtitle := fmt.Sprintf("%s • %s • %s", e.Position, e.Date, statusStyle.Render(e.Status))
		if i == m.cursor {
			s += selectedTitleStyle.Render("> "+title) + "\n"
			s += selectedSubtitleStyle.Render("  "+subtitle) + "\n"
		} else {
			s += entryTitleStyle.Render(title) + "\n"
			s += entrySubtitleStyle.Render(subtitle) + "\n"
		}
		s += "\n"
	}

	s += hintStyle.Render("↑/↓/j/k navigate  enter detail  q quit")
	return s
}

// Browse opens the interactive ledger browser. Blocks until the user quits.
func Browse(entries []model.HistoryEntry) error {
	m := browserModel{entries: entries}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
