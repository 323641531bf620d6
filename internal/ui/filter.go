package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/showfinder/internal/listing"
)

const (
	inputArtist = iota
	inputStart
	inputEnd
)

var inputLabels = []string{"Artist", "From", "Until"}

func newFilterInputs() []textinput.Model {
	placeholders := []string{"search by artist name", "YYYY-MM-DD", "YYYY-MM-DD"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Placeholder = p
		ti.CharLimit = 64
		ti.Width = 32
		inputs[i] = ti
	}
	inputs[inputStart].CharLimit = 10
	inputs[inputEnd].CharLimit = 10
	return inputs
}

// openFilterForm fills the inputs from the URL state and focuses the artist search.
func (m *Model) openFilterForm() tea.Cmd {
	f := m.nav.Filters()
	m.inputs[inputArtist].SetValue(f.ArtistSearch)
	m.inputs[inputStart].SetValue(f.StartDate)
	m.inputs[inputEnd].SetValue(f.EndDate)
	m.view = FilterView
	return m.focusInput(inputArtist)
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	return tea.Batch(m.inputs[m.focus].Focus(), textinput.Blink)
}

func (m *Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.player.Stop()
		return m, tea.Quit
	case "esc":
		m.view = ListView
		return m, nil
	case "tab", "down":
		return m, m.focusInput(m.focus + 1)
	case "shift+tab", "up":
		return m, m.focusInput(m.focus - 1)
	case "enter":
		return m, m.submitFilters()
	}
	return m, m.updateInputs(msg)
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

// submitFilters writes changed values into the URL state. Unchanged fields leave the history
// alone, so submitting an untouched form does not refetch.
func (m *Model) submitFilters() tea.Cmd {
	m.view = ListView
	f := m.nav.Filters()
	artist := strings.TrimSpace(m.inputs[inputArtist].Value())
	start := strings.TrimSpace(m.inputs[inputStart].Value())
	end := strings.TrimSpace(m.inputs[inputEnd].Value())

	changed := false
	if artist != f.ArtistSearch {
		m.nav.SetFilter(listing.KeyArtistSearch, artist)
		changed = true
	}
	if start != f.StartDate || end != f.EndDate {
		m.nav.SetDateRange(start, end)
		changed = true
	}
	if !changed {
		return nil
	}
	return m.refresh()
}

func (m *Model) renderFilterForm() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Filter shows"))
	b.WriteString("\n")
	for i, in := range m.inputs {
		label := fmt.Sprintf("%-6s", inputLabels[i])
		if i == m.focus {
			label = styles.selected.Render(label)
		}
		fmt.Fprintf(&b, "%s %s\n", label, in.View())
	}

	submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply"))
	next := key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field"))
	fmt.Fprintf(&b, "\n%s", m.help.ShortHelpView([]key.Binding{submit, next, m.keys.back}))
	return b.String()
}
