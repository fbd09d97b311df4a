package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agalitsyn/taskdash/internal/board"
	"github.com/agalitsyn/taskdash/internal/model"
)

type option struct {
	dim   model.Dimension
	value string
}

// picker lists every facet value; toggling one adds it to or removes it
// from the board's selection.
type picker struct {
	options []option
	cursor  int
}

func newPicker(f board.Facets) picker {
	var p picker
	for _, d := range model.Dimensions {
		for _, v := range f.Values(d) {
			p.options = append(p.options, option{dim: d, value: v})
		}
	}
	return p
}

func (p picker) view(sel model.Selection, height int) string {
	if len(p.options) == 0 {
		return hintStyle.Render("Nothing to filter on.")
	}

	var (
		lines []string
		focus int
		prev  = model.Dimension(-1)
	)
	for i, o := range p.options {
		if o.dim != prev {
			lines = append(lines, titleStyle.Render(strings.ToUpper(o.dim.String()[:1])+o.dim.String()[1:]))
			prev = o.dim
		}
		box := "[ ]"
		if sel.Values(o.dim).Has(o.value) {
			box = "[x]"
		}
		line := "  " + box + " " + o.value
		if i == p.cursor {
			focus = len(lines)
			line = cursorStyle.Render("> " + box + " " + o.value)
		}
		lines = append(lines, line)
	}
	start := windowStart(focus, height)
	return strings.Join(lines[start:min(start+height, len(lines))], "\n")
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.dash.Board()
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Filter):
		m.mode = modeBrowse
		m.clampCursor()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.picker.cursor = max(m.picker.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.picker.cursor = min(m.picker.cursor+1, len(m.picker.options)-1)
	case key.Matches(msg, m.keys.Toggle):
		if m.picker.cursor < len(m.picker.options) {
			o := m.picker.options[m.picker.cursor]
			b.ToggleFilter(o.dim, o.value)
		}
	case key.Matches(msg, m.keys.Clear):
		b.Reset()
	}
	return m, nil
}
