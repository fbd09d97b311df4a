package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agalitsyn/taskdash/internal/app"
	"github.com/agalitsyn/taskdash/internal/model"
	"github.com/agalitsyn/taskdash/internal/schedule"
	"github.com/agalitsyn/taskdash/internal/storage/memory"
)

const (
	screenWidth  = 100
	screenHeight = 30
)

func newTestModel(t *testing.T) (Model, *app.Dashboard) {
	t.Helper()
	now := func() time.Time { return time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC) }
	dash := app.New(app.Config{Now: now}, memory.NewTaskStorage(), nil)
	t.Cleanup(dash.Close)

	task := func(id string, status model.TaskStatus, p model.Priority, estimate int) model.Task {
		tk := model.NewTask(id, "task "+id)
		tk.Status, tk.Priority, tk.EstimateMinutes = status, p, estimate
		return *tk
	}
	tasks := []model.Task{
		task("A", model.TaskStatusInProgress, model.PriorityHigh, 45),
		task("B", model.TaskStatusNotStarted, model.PriorityMedium, model.Unestimated),
		task("C", model.TaskStatusInProgress, model.PriorityLow, 30),
	}
	if err := dash.Import(context.Background(), tasks); err != nil {
		t.Fatal(err)
	}

	m := New(context.Background(), dash, schedule.DefaultPixelsPerSlot, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: screenWidth, Height: screenHeight})
	return m, dash
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	btn := tea.MouseButtonLeft
	if action == tea.MouseActionRelease {
		btn = tea.MouseButtonNone
	}
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: btn}
}

// rowOf is the screen row of slot s in the schedule view.
func rowOf(m Model, s schedule.Slot) int {
	return headerRows + int(s) - m.scroll
}

func TestSwitchViews(t *testing.T) {
	m, dash := newTestModel(t)

	m = update(t, m, press("2"))
	if dash.View() != app.ViewAnalytics || !strings.Contains(m.View(), "Tasks by status") {
		t.Errorf("analytics view not shown, view %s", dash.View())
	}

	m = update(t, m, press("4"))
	if dash.View() != app.ViewSchedule || dash.Ticks() == nil {
		t.Fatal("schedule view should run the clock")
	}
	if m.scroll != 12 {
		t.Errorf("expected timeline scrolled near 10:00, got %d", m.scroll)
	}
	if !strings.Contains(m.View(), "Available tasks (3)") {
		t.Error("pool title missing")
	}

	m = update(t, m, press("3"))
	if dash.View() != app.ViewCalendar || dash.Ticks() != nil {
		t.Error("leaving the schedule should stop the clock")
	}

	next, cmd := m.Update(press("q"))
	if _, ok := next.(Model); !ok || cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestSortAndClear(t *testing.T) {
	m, dash := newTestModel(t)
	b := dash.Board()

	m = update(t, m, press("s"))
	m = update(t, m, press("d"))
	if sc := b.SortConfig(); sc.Field != model.SortByDueDate || sc.Direction != model.SortAsc {
		t.Errorf("sort = %+v", sc)
	}
	m = update(t, m, press("c"))
	if b.SortConfig() != model.DefaultSortConfig() {
		t.Errorf("clear should restore default sort, got %+v", b.SortConfig())
	}
	_ = m
}

func TestFilterPicker(t *testing.T) {
	m, dash := newTestModel(t)

	m = update(t, m, press("f"))
	if m.mode != modeFilter {
		t.Fatal("f should open the filter picker")
	}
	if o := m.picker.options[0]; o.dim != model.DimensionStatus || o.value != "In Progress" {
		t.Fatalf("unexpected first option %+v", o)
	}
	m = update(t, m, press("enter"))
	if got := len(dash.Board().Visible()); got != 2 {
		t.Errorf("expected 2 visible tasks, got %d", got)
	}
	if !strings.Contains(m.View(), "[x] In Progress") {
		t.Error("selected option not marked")
	}

	m = update(t, m, press("esc"))
	if m.mode != modeBrowse {
		t.Error("esc should close the picker")
	}
	m = update(t, m, press("c"))
	if got := len(dash.Board().Visible()); got != 3 {
		t.Errorf("clear should drop filters, got %d visible", got)
	}
}

func TestDetailAndEdit(t *testing.T) {
	m, dash := newTestModel(t)

	m = update(t, m, press("enter"))
	if m.mode != modeDetail || m.detailID != "A" {
		t.Fatalf("expected detail of A, mode %d id %q", m.mode, m.detailID)
	}
	m = update(t, m, press("e"))
	if m.mode != modeEdit {
		t.Fatal("e should open the edit form from the detail view")
	}

	m.form.inputs[fieldDescription].SetValue("Renamed")
	m.form.inputs[fieldTags].SetValue("ops, api, ops")
	m.form.inputs[fieldProgress].SetValue("250")
	m = update(t, m, press("enter"))
	if m.mode != modeBrowse {
		t.Fatalf("save should close the form, status %q", m.status)
	}

	got, _ := dash.Task("A")
	if got.Description != "Renamed" || got.Progress != 100 || len(got.Tags) != 2 {
		t.Errorf("edit not committed: %+v", got)
	}
	if got.Priority != model.PriorityHigh || got.EstimateMinutes != 45 {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestScheduleDragAndResize(t *testing.T) {
	m, dash := newTestModel(t)
	e := dash.Engine()
	m = update(t, m, press("4"))

	timelineX := poolWidth + labelWidth + 5
	target := schedule.Slot(17)

	m = update(t, m, mouse(tea.MouseActionPress, 5, headerRows+1))
	if !e.IsDragging("A") {
		t.Fatalf("press on the first pool row should drag A, state %T", e.State())
	}
	m = update(t, m, mouse(tea.MouseActionMotion, timelineX, rowOf(m, target)))
	if e.DropTarget() != target {
		t.Errorf("drop target = %s", e.DropTarget())
	}
	m = update(t, m, mouse(tea.MouseActionRelease, timelineX, rowOf(m, target)))
	p, ok := e.Placement("A")
	if !ok || p.Slot != target || p.Duration != 45 {
		t.Fatalf("placement = %+v, %v", p, ok)
	}
	if !strings.Contains(m.View(), "Available tasks (2)") {
		t.Error("placed task still counted in the pool")
	}

	// Block A covers 08:30 and 09:00; its handle ends the 09:00 row.
	lw := m.laneWidth(1)
	handleX := poolWidth + labelWidth + lw - 1 - handleWidth
	m = update(t, m, mouse(tea.MouseActionPress, handleX, rowOf(m, target+1)))
	if !e.IsResizing("A") || dash.Pointer().Listeners() != 1 {
		t.Fatalf("press on the handle should resize, state %T", e.State())
	}

	m = update(t, m, mouse(tea.MouseActionPress, 5, headerRows+1))
	if !e.IsResizing("A") || !strings.Contains(m.status, "another gesture") {
		t.Errorf("drag during resize should be refused, status %q", m.status)
	}

	m = update(t, m, mouse(tea.MouseActionMotion, handleX, rowOf(m, target+3)))
	if p, _ := e.Placement("A"); p.Duration != 105 {
		t.Errorf("live resize duration = %d", p.Duration)
	}
	m = update(t, m, mouse(tea.MouseActionRelease, handleX, rowOf(m, target+3)))
	if _, idle := e.State().(schedule.Idle); !idle || dash.Pointer().Listeners() != 0 {
		t.Errorf("release should end the resize, state %T listeners %d", e.State(), dash.Pointer().Listeners())
	}

	// A click on the block's second row leaves it where it is.
	before, _ := e.Placement("A")
	m = update(t, m, mouse(tea.MouseActionPress, timelineX, rowOf(m, target+1)))
	m = update(t, m, mouse(tea.MouseActionRelease, timelineX, rowOf(m, target+1)))
	if after, _ := e.Placement("A"); after != before {
		t.Errorf("click moved the block: before %+v after %+v", before, after)
	}

	// Dragged by its second row, the block keeps that row under the pointer.
	m = update(t, m, mouse(tea.MouseActionPress, timelineX, rowOf(m, target+1)))
	m = update(t, m, mouse(tea.MouseActionMotion, timelineX, rowOf(m, target+3)))
	if e.DropTarget() != target+2 {
		t.Errorf("drop target = %s, want %s", e.DropTarget(), target+2)
	}
	m = update(t, m, mouse(tea.MouseActionRelease, timelineX, rowOf(m, target+3)))
	if p, _ := e.Placement("A"); p.Slot != target+2 || p.Duration != 105 {
		t.Errorf("placement after move = %+v", p)
	}

	m = update(t, m, mouse(tea.MouseActionPress, timelineX, rowOf(m, target+2)))
	if !e.IsDragging("A") {
		t.Fatalf("press on the block body should drag it, state %T", e.State())
	}
	m = update(t, m, mouse(tea.MouseActionRelease, 5, headerRows+2))
	if _, ok := e.Placement("A"); ok {
		t.Error("release over the pool should unschedule")
	}
	if !strings.Contains(m.View(), "Available tasks (3)") {
		t.Error("unscheduled task missing from the pool")
	}
}

func TestClockTick(t *testing.T) {
	m, _ := newTestModel(t)
	later := time.Date(2024, 4, 15, 11, 31, 0, 0, time.UTC)
	m = update(t, m, tickMsg(later))
	if !m.now.Equal(later) {
		t.Errorf("now = %v", m.now)
	}
}

func TestNowPosition(t *testing.T) {
	tests := []struct {
		hour, minute int
		slot         string
		lower        bool
	}{
		{0, 0, "00:00", false},
		{10, 0, "10:00", false},
		{10, 14, "10:00", false},
		{10, 17, "10:00", true},
		{18, 45, "18:30", true},
		{23, 59, "23:30", true},
	}
	for _, tt := range tests {
		slot, lower := nowPosition(time.Date(2024, 4, 15, tt.hour, tt.minute, 30, 0, time.UTC))
		if slot.Label() != tt.slot || lower != tt.lower {
			t.Errorf("%02d:%02d: got %s lower=%v, want %s lower=%v", tt.hour, tt.minute, slot, lower, tt.slot, tt.lower)
		}
	}
}
