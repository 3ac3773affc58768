// Package ui renders heap snapshots interactively.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Row is one heap object in the browser table.
type Row struct {
	Handle uint32
	Type   string
	Elems  int
	Cap    int
	Repr   string
}

type browserModel struct {
	title    string
	rows     []Row
	viewport viewport.Model
	width    int
	ready    bool
}

// NewBrowserModel returns a Bubble Tea model that browses snapshot rows.
func NewBrowserModel(title string, rows []Row) tea.Model {
	return &browserModel{title: title, rows: rows, width: 80}
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		headerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
		m.width = msg.Width
		m.viewport.SetContent(m.renderRows())
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *browserModel) View() string {
	if !m.ready {
		return "loading..."
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s — %d objects (q to quit)", m.title, len(m.rows))
	return titleStyle.Render(header) + "\n\n" + m.viewport.View()
}

func (m *browserModel) renderRows() string {
	reprWidth := m.width - 34
	if reprWidth < 16 {
		reprWidth = 16
	}
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%8s %-12s %5s %5s  %s",
		"handle", "type", "len", "cap", "value")))
	b.WriteString("\n")
	for _, row := range m.rows {
		b.WriteString(fmt.Sprintf("%8d %-12s %5d %5d  %s\n",
			row.Handle, row.Type, row.Elems, row.Cap,
			runewidth.Truncate(row.Repr, reprWidth, "…")))
	}
	return b.String()
}

// RunBrowser starts the interactive browser and blocks until quit.
func RunBrowser(title string, rows []Row) error {
	_, err := tea.NewProgram(NewBrowserModel(title, rows), tea.WithAltScreen()).Run()
	return err
}
