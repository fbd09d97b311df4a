package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/agalitsyn/taskdash/internal/analytics"
	"github.com/agalitsyn/taskdash/internal/model"
	"github.com/agalitsyn/taskdash/internal/report"
	"github.com/agalitsyn/taskdash/internal/schedule"
)

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "…")
	return s + strings.Repeat(" ", max(w-ansi.StringWidth(s), 0))
}

// clip cuts styled text to w cells.
func clip(s string, w int) string {
	return lipgloss.NewStyle().MaxWidth(w).Render(s)
}

func dueText(t model.Task) string {
	if t.DueDate.IsZero() {
		return "-"
	}
	return model.FormatDate(t.DueDate)
}

func (m Model) taskLine(t model.Task, focused bool, width int) string {
	marker := "  "
	if focused {
		marker = cursorStyle.Render("> ")
	}
	descWidth := max(width-52, 8)
	return marker +
		fit(t.ID, 9) + " " +
		fit(string(t.Priority), 7) + " " +
		statusStyle(t.Status).Render(fit(string(t.Status), 12)) + " " +
		fit(fmt.Sprintf("%3d%%", t.Progress), 5) + " " +
		fit(dueText(t), 11) + " " +
		fit(t.Description, descWidth)
}

func (m Model) listView(height int) string {
	tasks := m.dash.Board().Visible()
	if len(tasks) == 0 {
		return hintStyle.Render("No tasks match the current filters.")
	}
	start := windowStart(m.cursor, height)
	end := min(start+height, len(tasks))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.taskLine(tasks[i], i == m.cursor, m.width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) analyticsView() string {
	all := m.dash.Board().All()
	barWidth := max(min(m.width-32, 40), 5)

	section := func(title string, buckets []analytics.Bucket) string {
		lines := []string{titleStyle.Render(title)}
		total := analytics.Total(buckets)
		for _, b := range buckets {
			pct := analytics.Percent(b, total)
			lines = append(lines, fmt.Sprintf("  %s %3d %3d%% %s",
				fit(b.Name, 16), b.Count, pct, barStyle.Render(report.Bar(pct, barWidth))))
		}
		return strings.Join(lines, "\n")
	}

	return strings.Join([]string{
		section("Tasks by status", analytics.ByStatus(all)),
		"",
		section("Tasks by category", analytics.ByCategory(all)),
		"",
		section("Tasks by priority", analytics.ByPriority(all)),
		"",
		fmt.Sprintf("Average progress: %d%%", analytics.Completion(all)),
	}, "\n")
}

func (m Model) calendarView(height int) string {
	lines := []string{titleStyle.Render(m.dash.Month().Format("January 2006")) + hintStyle.Render("   [ prev  ] next")}
	days := m.dash.Calendar()
	if len(days) == 0 {
		lines = append(lines, hintStyle.Render("  No tasks due this month."))
		return strings.Join(lines, "\n")
	}

	focus, i := 0, 0
	for _, day := range days {
		lines = append(lines, labelStyle.Render(day.Date.Format("  Mon 02")))
		for _, t := range day.Tasks {
			if i == m.cursor {
				focus = len(lines)
			}
			lines = append(lines, m.taskLine(t, i == m.cursor, m.width))
			i++
		}
	}
	start := windowStart(focus, height)
	return strings.Join(lines[start:min(start+height, len(lines))], "\n")
}

func (m Model) laneWidth(lanes int) int {
	return max((m.width-poolWidth-labelWidth)/max(lanes, 1), minLaneWidth)
}

func (m Model) scheduleView(height int) string {
	e := m.dash.Engine()
	pool := m.dash.Pool()
	blocks, lanes := m.dash.Blocks()
	lw := m.laneWidth(lanes)
	nowSlot, nowLower := nowPosition(m.now)
	poolStart := windowStart(m.cursor, height-1)

	lines := make([]string, 0, height)
	for r := 0; r < height; r++ {
		var left string
		if r == 0 {
			left = titleStyle.Render(fit(fmt.Sprintf("Available tasks (%d)", len(pool)), poolWidth))
		} else if i := poolStart + r - 1; i < len(pool) {
			left = m.poolLine(pool[i], i == m.cursor)
		} else {
			left = fit("", poolWidth)
		}

		slot := schedule.Slot(m.scroll + r)
		if !slot.Valid() {
			lines = append(lines, left)
			continue
		}

		label := fit(" "+slot.Label(), labelWidth)
		switch {
		case slot == nowSlot && nowLower:
			label = nowLowerStyle.Render(fit("▶"+m.now.Format("15:04"), labelWidth))
		case slot == nowSlot:
			label = nowStyle.Render(fit("▶"+m.now.Format("15:04"), labelWidth))
		default:
			label = labelStyle.Render(label)
		}

		var row strings.Builder
		row.WriteString(left)
		row.WriteString(label)
		for lane := 0; lane < max(lanes, 1); lane++ {
			row.WriteString(m.blockCell(blocks, slot, lane, lw, e))
		}
		lines = append(lines, row.String())
	}
	return strings.Join(lines, "\n")
}

// nowPosition is the slot row holding the now marker and whether the marker
// falls in the lower half of that row.
func nowPosition(t time.Time) (schedule.Slot, bool) {
	minutes := int(math.Round(schedule.NowOffset(t) * schedule.MinutesPerDay))
	return schedule.Slot(minutes / schedule.SlotMinutes), minutes%schedule.SlotMinutes >= schedule.SlotMinutes/2
}

func (m Model) poolLine(t model.Task, focused bool) string {
	estimate := schedule.DefaultDuration
	if t.HasEstimate() {
		estimate = t.EstimateMinutes
	}
	text := fit("  "+fit(t.Description, poolWidth-9)+fmt.Sprintf(" %3dm", estimate), poolWidth)
	switch {
	case m.dash.Engine().IsDragging(t.ID):
		return faintStyle.Render(text)
	case focused:
		return cursorStyle.Render(text)
	default:
		return text
	}
}

// blockCell renders one lane of one slot row. The last handleWidth cells
// of a block's last row are its resize handle.
func (m Model) blockCell(blocks []schedule.Block, slot schedule.Slot, lane, lw int, e *schedule.Engine) string {
	cell := lw - 1
	b, ok := schedule.BlockAt(blocks, slot, lane)
	if !ok {
		if slot == e.DropTarget() {
			return dropStyle.Render(fit("", cell)) + " "
		}
		return fit("", cell) + " "
	}

	var text string
	switch slot - b.Slot {
	case 0:
		text = b.TaskID
		if t, ok := m.dash.Task(b.TaskID); ok {
			text = t.Description
		}
	case 1:
		text = fmt.Sprintf("%d min", b.Duration)
	}
	if b.Rows == 1 {
		text = fmt.Sprintf("%s (%dm)", text, b.Duration)
	}
	text = " " + text
	if slot == b.LastSlot() {
		text = fit(text, cell-handleWidth) + strings.Repeat("═", handleWidth)
	} else {
		text = fit(text, cell)
	}

	style := blockStyle
	switch {
	case e.IsResizing(b.TaskID):
		style = resizingStyle
	case e.IsDragging(b.TaskID):
		style = faintStyle
	}
	return style.Render(text) + " "
}
