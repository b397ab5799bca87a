package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MASHUOA/MetaboAnalystR/pkg/session"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// SubnetworkListModel - Interactive subnetwork selection
// =============================================================================

// SubnetworkListModel is the bubbletea model for picking one entry of the
// ranked subnetwork registry.
type SubnetworkListModel struct {
	Entries  []session.Entry
	Cursor   int
	Selected *session.Entry
	Height   int
	Offset   int
}

// NewSubnetworkListModel creates a picker over entries.
func NewSubnetworkListModel(entries []session.Entry) SubnetworkListModel {
	return SubnetworkListModel{Entries: entries, Height: 15}
}

func (m SubnetworkListModel) Init() tea.Cmd {
	return nil
}

func (m SubnetworkListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Entries) == 0 {
				return m, tea.Quit
			}
			e := m.Entries[m.Cursor]
			m.Selected = &e
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m SubnetworkListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Subnetwork"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, entryRow(m.Entries[i])...))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Subnetwork", "Nodes", "Edges", "Seeds").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// entryRow returns the name and size columns of a registry entry.
func entryRow(e session.Entry) []string {
	return []string{
		e.Name,
		strconv.Itoa(e.Stats.Nodes),
		strconv.Itoa(e.Stats.Edges),
		strconv.Itoa(e.Stats.Seeds),
	}
}
