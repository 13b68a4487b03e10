package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// typeBrowser - Interactive type hierarchy browser
// =============================================================================

// typeBrowser lists types on the left and shows the selected type's
// resolution on the right. Pressing enter jumps to the first parent.
type typeBrowser struct {
	rows   []typeRow
	index  map[string]int // canonical name and synonyms to row
	cursor int
	offset int
	height int
}

func newTypeBrowser(rows []typeRow) typeBrowser {
	index := make(map[string]int)
	for i, r := range rows {
		index[r.Name] = i
		for _, s := range r.Synonyms {
			index[s] = i
		}
	}
	return typeBrowser{rows: rows, index: index, height: 15}
}

func (m typeBrowser) Init() tea.Cmd {
	return nil
}

func (m typeBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.cursor - 1)
		case "down", "j":
			m.moveTo(m.cursor + 1)
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.rows) - 1)
		case "enter", "p":
			if len(m.rows) == 0 || len(m.rows[m.cursor].Parents) == 0 {
				return m, nil
			}
			if i, ok := m.index[m.rows[m.cursor].Parents[0]]; ok {
				m.moveTo(i)
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
		m.moveTo(m.cursor)
	}
	return m, nil
}

// moveTo selects row i, clamped to the list, and scrolls it into view.
func (m *typeBrowser) moveTo(i int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(i, 0), len(m.rows)-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m typeBrowser) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Types"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ parent  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(listDimStyle.Render("no types loaded"))
		return b.String()
	}

	var list strings.Builder
	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		if i == m.cursor {
			list.WriteString(listSelectedStyle.Render("▸ " + r.Name))
		} else {
			list.WriteString(listNormalStyle.Render("  " + r.Name))
		}
		list.WriteString(" " + listDimStyle.Render(string(r.Kind)))
		list.WriteString("\n")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(36).Render(list.String()),
		detailBoxStyle.Render(m.details(m.rows[m.cursor])),
	))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	return b.String()
}

func (m typeBrowser) details(r typeRow) string {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	line := func(key, value string) string {
		return keyStyle.Render(key) + " " + StyleValue.Render(value) + "\n"
	}
	orNone := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}

	var b strings.Builder
	b.WriteString(StyleHighlight.Render(r.Name) + "\n\n")
	b.WriteString(line("kind", string(r.Kind)))
	b.WriteString(line("synonyms", orNone(strings.Join(r.Synonyms, ", "))))
	b.WriteString(line("parents", orNone(strings.Join(r.Parents, ", "))))
	b.WriteString(line("linearisation", strings.Join(r.Linearisation, " > ")))
	b.WriteString(line("label", r.labelText()))
	b.WriteString(line("declared", orNone(r.Pos.String())))
	b.WriteString("\n" + keyStyle.Render("attributes") + "\n")
	if r.Attrs.Len() == 0 {
		b.WriteString(listDimStyle.Render("  none"))
	}
	for _, p := range r.Attrs.Pairs() {
		b.WriteString("  " + StyleValue.Render(p.Key) + listDimStyle.Render(" = ") + p.Value + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
