package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agalitsyn/taskdash/internal/model"
)

type field int

const (
	fieldDescription field = iota
	fieldStatus
	fieldPriority
	fieldOwner
	fieldCategory
	fieldProject
	fieldInitiative
	fieldTags
	fieldProgress
	fieldEstimate
	fieldDueDate
	fieldStatusUpdate
	fieldDesiredOutcome
	numFields
)

var fieldLabels = [numFields]string{
	"Description", "Status", "Priority", "Owner", "Category", "Project",
	"Initiative", "Tags", "Progress", "Estimate (min)", "Due date",
	"Status update", "Desired outcome",
}

// form edits a copy of a task. Fields it does not show are carried over
// unchanged when the edit is committed.
type form struct {
	task   model.Task
	inputs []textinput.Model
	focus  int
}

func newForm(t model.Task) form {
	values := [numFields]string{
		fieldDescription:    t.Description,
		fieldStatus:         string(t.Status),
		fieldPriority:       string(t.Priority),
		fieldOwner:          t.Owner,
		fieldCategory:       t.Category,
		fieldProject:        t.Project,
		fieldInitiative:     t.Initiative,
		fieldTags:           strings.Join(t.Tags, ", "),
		fieldProgress:       strconv.Itoa(t.Progress),
		fieldDueDate:        model.FormatDate(t.DueDate),
		fieldStatusUpdate:   t.StatusUpdate,
		fieldDesiredOutcome: t.DesiredOutcome,
	}
	if t.HasEstimate() {
		values[fieldEstimate] = strconv.Itoa(t.EstimateMinutes)
	}

	f := form{task: t.Clone(), inputs: make([]textinput.Model, numFields)}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		in.Width = 48
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.inputs[fieldDueDate].Placeholder = "2006-01-02"
	f.inputs[fieldEstimate].Placeholder = "not estimated"
	f.inputs[0].Focus()
	return f
}

func (f form) value(fl field) string {
	return strings.TrimSpace(f.inputs[fl].Value())
}

// result is the edited task. Numbers and dates that do not parse fall back
// to absent values.
func (f form) result() model.Task {
	t := f.task.Clone()
	t.Description = f.value(fieldDescription)
	t.Status = model.ParseTaskStatus(f.value(fieldStatus))
	t.Priority = model.ParsePriority(f.value(fieldPriority))
	t.Owner = f.value(fieldOwner)
	t.Category = f.value(fieldCategory)
	t.Project = f.value(fieldProject)
	t.Initiative = f.value(fieldInitiative)
	t.Tags = model.SplitList(f.value(fieldTags))
	t.StatusUpdate = f.value(fieldStatusUpdate)
	t.DesiredOutcome = f.value(fieldDesiredOutcome)
	t.EstimateMinutes = model.ParseEstimate(f.value(fieldEstimate))

	progress, _ := model.ParseLeadingInt(f.value(fieldProgress))
	t.Progress = min(max(progress, 0), 100)

	due, _ := model.ParseDate(f.value(fieldDueDate))
	t.DueDate = due
	return t
}

func (f *form) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) view() string {
	lines := []string{titleStyle.Render("Edit " + f.task.ID), ""}
	for i, in := range f.inputs {
		label := fieldStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = fieldStyle.Foreground(accent).Render(fieldLabels[i])
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, in.View()))
	}
	lines = append(lines, "", hintStyle.Render("tab next · shift+tab previous · enter save · esc cancel"))
	return strings.Join(lines, "\n")
}

func (m Model) openForm(t model.Task) (tea.Model, tea.Cmd) {
	m.form = newForm(t)
	m.mode = modeEdit
	return m, textinput.Blink
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeBrowse
		return m, nil
	case key.Matches(msg, m.keys.Save):
		edited := m.form.result()
		if err := m.dash.CommitEdit(m.ctx, edited); err != nil {
			m.log.Logf("[ERROR] %v", err)
			m.status = err.Error()
			return m, nil
		}
		m.status = "saved " + edited.ID
		m.mode = modeBrowse
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.move(1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.move(-1)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}
