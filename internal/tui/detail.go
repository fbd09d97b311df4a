package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agalitsyn/taskdash/internal/model"
)

func detailContent(t model.Task) string {
	estimate := "not estimated"
	if t.HasEstimate() {
		estimate = fmt.Sprintf("%d min", t.EstimateMinutes)
	}
	rows := [][2]string{
		{"ID", t.ID},
		{"Status", statusStyle(t.Status).Render(string(t.Status))},
		{"Priority", string(t.Priority)},
		{"Owner", t.Owner},
		{"Category", t.Category},
		{"Project", t.Project},
		{"Initiative", t.Initiative},
		{"Tags", strings.Join(t.Tags, ", ")},
		{"Progress", fmt.Sprintf("%d%%", t.Progress)},
		{"Estimate", estimate},
		{"Start date", model.FormatDate(t.StartDate)},
		{"Due date", model.FormatDate(t.DueDate)},
		{"Dependencies", strings.Join(t.Dependencies, ", ")},
		{"Status update", t.StatusUpdate},
		{"Desired outcome", t.DesiredOutcome},
	}

	lines := []string{titleStyle.Render(t.Description), ""}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		lines = append(lines, fieldStyle.Render(r[0])+r[1])
	}
	lines = append(lines, "", hintStyle.Render("e edit · esc back"))
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) openDetail(t model.Task) {
	m.detail = viewport.New(m.width, m.bodyHeight())
	m.detail.SetContent(detailContent(t))
	m.detailID = t.ID
	m.mode = modeDetail
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
		m.mode = modeBrowse
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.dash.Task(m.detailID); ok {
			return m.openForm(t)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}
