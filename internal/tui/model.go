// Package tui is the interactive terminal front end of the dashboard. It
// renders the four views and turns mouse presses, motion and releases on
// the schedule into drag and resize gestures.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/taskdash/internal/app"
	"github.com/agalitsyn/taskdash/internal/model"
	"github.com/agalitsyn/taskdash/internal/schedule"
)

// Screen geometry. The schedule body starts below the header; each body row
// is one timeline slot.
const (
	headerRows   = 3
	poolWidth    = 34
	labelWidth   = 8
	minLaneWidth = 12
	handleWidth  = 2
)

type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeDetail
	modeEdit
)

type tickMsg time.Time

type Model struct {
	ctx  context.Context
	dash *app.Dashboard
	log  lgr.L
	keys keyMap
	help help.Model

	width  int
	height int
	// pixelsPerSlot converts terminal rows into the engine's pointer units,
	// so that one row of travel is one slot.
	pixelsPerSlot float64

	mode   mode
	cursor int
	scroll int
	// grab is the block row, in slots, held by the pointer while dragging.
	grab   int
	now    time.Time
	status string

	picker   picker
	form     form
	detail   viewport.Model
	detailID string
}

func New(ctx context.Context, dash *app.Dashboard, pixelsPerSlot float64, logger lgr.L) Model {
	if logger == nil {
		logger = lgr.NoOp
	}
	if pixelsPerSlot <= 0 {
		pixelsPerSlot = schedule.DefaultPixelsPerSlot
	}
	return Model{
		ctx:           ctx,
		dash:          dash,
		log:           logger,
		keys:          defaultKeyMap(),
		help:          help.New(),
		pixelsPerSlot: pixelsPerSlot,
		now:           dash.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitTick()
}

// waitTick forwards the next schedule clock tick. It yields nothing once the
// clock stops, which ends the chain.
func (m Model) waitTick() tea.Cmd {
	ticks := m.dash.Ticks()
	if ticks == nil {
		return nil
	}
	return func() tea.Msg {
		t, ok := <-ticks
		if !ok {
			return nil
		}
		return tickMsg(t)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.width == 0
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.detail.Width, m.detail.Height = msg.Width, m.bodyHeight()
		if first && m.dash.View() == app.ViewSchedule {
			m.scrollToNow()
		}
		m.clampScroll()
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, m.waitTick()

	case tea.MouseMsg:
		if m.mode != modeBrowse || m.dash.View() != app.ViewSchedule {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updatePicker(msg)
		case modeDetail:
			return m.updateDetail(msg)
		case modeEdit:
			return m.updateForm(msg)
		default:
			return m.handleKey(msg)
		}
	}

	if m.mode == modeEdit {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.dash.Board()
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.List):
		return m.setView(app.ViewList)
	case key.Matches(msg, m.keys.Analytics):
		return m.setView(app.ViewAnalytics)
	case key.Matches(msg, m.keys.Calendar):
		return m.setView(app.ViewCalendar)
	case key.Matches(msg, m.keys.Schedule):
		return m.setView(app.ViewSchedule)

	case key.Matches(msg, m.keys.Sort):
		b.SetSortField(b.SortConfig().Field.Next())
	case key.Matches(msg, m.keys.Direction):
		b.ToggleDirection()
	case key.Matches(msg, m.keys.Filter):
		m.picker = newPicker(b.Facets())
		m.mode = modeFilter
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		b.Reset()

	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.PageUp):
		if m.dash.View() == app.ViewSchedule {
			m.scroll -= m.bodyHeight()
		} else {
			m.cursor -= m.bodyHeight()
		}
	case key.Matches(msg, m.keys.PageDown):
		if m.dash.View() == app.ViewSchedule {
			m.scroll += m.bodyHeight()
		} else {
			m.cursor += m.bodyHeight()
		}
	case key.Matches(msg, m.keys.PrevMonth):
		if m.dash.View() == app.ViewCalendar {
			m.dash.PrevMonth()
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.NextMonth):
		if m.dash.View() == app.ViewCalendar {
			m.dash.NextMonth()
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.Open):
		if t, ok := m.selected(); ok {
			m.openDetail(t)
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			return m.openForm(t)
		}
	case key.Matches(msg, m.keys.Back):
		m.dash.Engine().Cancel()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.clampCursor()
	m.clampScroll()
	return m, nil
}

func (m Model) setView(v app.ViewMode) (tea.Model, tea.Cmd) {
	if v == m.dash.View() {
		return m, nil
	}
	m.dash.SetView(m.ctx, v)
	m.cursor = 0
	if v == app.ViewSchedule {
		m.now = m.dash.Now()
		m.scrollToNow()
		return m, m.waitTick()
	}
	return m, nil
}

// items are the tasks the cursor moves over in the current view.
func (m Model) items() []model.Task {
	switch m.dash.View() {
	case app.ViewList:
		return m.dash.Board().Visible()
	case app.ViewCalendar:
		var out []model.Task
		for _, day := range m.dash.Calendar() {
			out = append(out, day.Tasks...)
		}
		return out
	case app.ViewSchedule:
		return m.dash.Pool()
	default:
		return nil
	}
}

func (m Model) selected() (model.Task, bool) {
	items := m.items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return model.Task{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	m.cursor = min(m.cursor, len(m.items())-1)
	m.cursor = max(m.cursor, 0)
}

func (m *Model) clampScroll() {
	m.scroll = min(m.scroll, schedule.SlotsPerDay-m.bodyHeight())
	m.scroll = max(m.scroll, 0)
}

// scrollToNow puts the current slot in the upper third of the timeline.
func (m *Model) scrollToNow() {
	m.scroll = int(schedule.SlotAt(m.now)) - m.bodyHeight()/3
	m.clampScroll()
}

func (m Model) bodyHeight() int {
	footer := lipgloss.Height(m.help.View(m.keys))
	return max(m.height-headerRows-footer, 1)
}

// windowStart is the first row shown when focus must stay visible in a
// window of height rows.
func windowStart(focus, height int) int {
	if height <= 0 || focus < height {
		return 0
	}
	return focus - height + 1
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	bh := m.bodyHeight()
	var body string
	switch m.mode {
	case modeFilter:
		body = m.picker.view(m.dash.Board().Selection(), bh)
	case modeDetail:
		body = m.detail.View()
	case modeEdit:
		body = m.form.view()
	default:
		switch m.dash.View() {
		case app.ViewList:
			body = m.listView(bh)
		case app.ViewAnalytics:
			body = m.analyticsView()
		case app.ViewCalendar:
			body = m.calendarView(bh)
		case app.ViewSchedule:
			body = m.scheduleView(bh)
		}
	}
	body = lipgloss.NewStyle().Height(bh).MaxHeight(bh).MaxWidth(m.width).Render(body)

	return strings.Join([]string{m.headerView(), body, m.help.View(m.keys)}, "\n")
}

func (m Model) headerView() string {
	tabs := make([]string, 0, len(app.ViewModes))
	for i, v := range app.ViewModes {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if v == m.dash.View() {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	line1 := titleStyle.Render("taskdash ") + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	b := m.dash.Board()
	sc := b.SortConfig()
	info := fmt.Sprintf("sort: %s %s  filters: %s  showing %d of %d",
		sc.Field, sc.Arrow(), filterSummary(b.Selection()), len(b.Visible()), len(b.All()))
	if m.dash.View() == app.ViewSchedule {
		info += "  now " + m.now.Format("15:04")
	}
	line2 := hintStyle.Render(info)
	if m.status != "" {
		line2 += "  " + errorStyle.Render(m.status)
	}

	rule := hintStyle.Render(strings.Repeat("─", max(m.width, 1)))
	return strings.Join([]string{clip(line1, m.width), clip(line2, m.width), rule}, "\n")
}

func filterSummary(sel model.Selection) string {
	if sel.IsEmpty() {
		return "none"
	}
	var parts []string
	for _, d := range model.Dimensions {
		set := sel.Values(d)
		if len(set) == 0 {
			continue
		}
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		slices.Sort(values)
		parts = append(parts, d.String()+"="+strings.Join(values, ","))
	}
	return strings.Join(parts, " ")
}
