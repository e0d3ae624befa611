package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/frosting/pkg/presets"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// PresetListModel - Interactive preset selection
// =============================================================================

// PresetListModel is the bubbletea model for choosing a preset.
type PresetListModel struct {
	Presets  []presets.Preset
	Cursor   int
	Selected *presets.Preset
	Height   int
	Offset   int
}

// NewPresetListModel starts with the cursor on current when it is listed.
func NewPresetListModel(all []presets.Preset, current string) PresetListModel {
	m := PresetListModel{Presets: all, Height: 10}
	for i, p := range all {
		if p.Name == current {
			m.Cursor = i
		}
	}
	m.scroll()
	return m
}

func (m PresetListModel) Init() tea.Cmd {
	return nil
}

func (m PresetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Presets)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Presets) == 0 {
				return m, tea.Quit
			}
			p := m.Presets[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 3)
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *PresetListModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m PresetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Presets))
	b.WriteString(presetTable(m.Presets[m.Offset:end], m.Cursor-m.Offset))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Presets))))

	return b.String()
}
