// Package report prints the dashboard views as plain text.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/agalitsyn/taskdash/internal/analytics"
	"github.com/agalitsyn/taskdash/internal/app"
	"github.com/agalitsyn/taskdash/internal/model"
	"github.com/agalitsyn/taskdash/internal/schedule"
)

const barWidth = 20

var (
	completed  = color.New(color.FgGreen)
	inProgress = color.New(color.FgBlue)
	notStarted = color.New(color.FgWhite)
	otherState = color.New(color.FgYellow)
	heading    = color.New(color.Bold)
	highlight  = color.New(color.FgRed)
)

// StatusColor is the badge colour of a status.
func StatusColor(s model.TaskStatus) *color.Color {
	switch s {
	case model.TaskStatusCompleted:
		return completed
	case model.TaskStatusInProgress:
		return inProgress
	case model.TaskStatusNotStarted:
		return notStarted
	default:
		return otherState
	}
}

// Render prints the given view of d.
func Render(w io.Writer, d *app.Dashboard, view app.ViewMode) error {
	switch view {
	case app.ViewList:
		List(w, d.Board().Visible(), d.Board().SortConfig())
	case app.ViewAnalytics:
		Analytics(w, d.Board().All())
	case app.ViewCalendar:
		Calendar(w, d.Month(), d.Calendar())
	case app.ViewSchedule:
		Schedule(w, d.Now(), d.Engine().Placements(), d.Pool(), d.Task)
	default:
		return fmt.Errorf("unknown view %q", view)
	}
	return nil
}

func List(w io.Writer, tasks []model.Task, sort model.SortConfig) {
	heading.Fprintf(w, "Tasks (%d) sorted by %s %s\n", len(tasks), sort.Field, sort.Arrow())
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  no tasks")
		return
	}
	for _, t := range tasks {
		status := StatusColor(t.Status).Sprint(fmt.Sprintf("%-12s", t.Status))
		fmt.Fprintf(w, "  %-8s %-6s %s %3d%%  %-10s %s\n",
			t.ID, t.Priority, status, t.Progress, dueText(t.DueDate), title(t.Description))
		if meta := metaLine(t); meta != "" {
			fmt.Fprintf(w, "  %-8s %s\n", "", meta)
		}
	}
}

func metaLine(t model.Task) string {
	var parts []string
	if t.Owner != "" && t.Owner != model.DefaultOwner {
		parts = append(parts, "owner: "+t.Owner)
	}
	if t.Project != "" {
		parts = append(parts, "project: "+t.Project)
	}
	if len(t.Tags) > 0 {
		parts = append(parts, "tags: "+strings.Join(t.Tags, ", "))
	}
	return strings.Join(parts, "  ")
}

func Analytics(w io.Writer, tasks []model.Task) {
	section(w, "Tasks by status", analytics.ByStatus(tasks))
	section(w, "Tasks by category", analytics.ByCategory(tasks))
	section(w, "Tasks by priority", analytics.ByPriority(tasks))
	fmt.Fprintf(w, "Average progress: %d%%\n", analytics.Completion(tasks))
}

func section(w io.Writer, name string, buckets []analytics.Bucket) {
	heading.Fprintln(w, name)
	total := analytics.Total(buckets)
	for _, b := range buckets {
		pct := analytics.Percent(b, total)
		fmt.Fprintf(w, "  %-14s %3d %3d%% %s\n", b.Name, b.Count, pct, Bar(pct, barWidth))
	}
	fmt.Fprintln(w)
}

// Bar draws pct percent of width cells.
func Bar(pct, width int) string {
	n := min(max(pct*width/100, 0), width)
	return strings.Repeat("#", n)
}

func Calendar(w io.Writer, month time.Time, days []app.Day) {
	heading.Fprintln(w, month.Format("January 2006"))
	if len(days) == 0 {
		fmt.Fprintln(w, "  no tasks due")
		return
	}
	for _, day := range days {
		fmt.Fprintf(w, "  %s\n", day.Date.Format("Mon 02"))
		for _, t := range day.Tasks {
			status := StatusColor(t.Status).Sprint(string(t.Status))
			fmt.Fprintf(w, "    %-8s %s (%s)\n", t.ID, title(t.Description), status)
		}
	}
}

// Schedule prints the placed tasks in timeline order followed by the pool.
func Schedule(w io.Writer, now time.Time, placements []schedule.Placement, pool []model.Task, lookup func(string) (model.Task, bool)) {
	heading.Fprintf(w, "Schedule for %s\n", now.Format("2006-01-02"))
	nowMinutes := now.Hour()*60 + now.Minute()
	marked := false
	for _, p := range placements {
		if !marked && p.Slot.Minutes() > nowMinutes {
			highlight.Fprintf(w, "  %s  now\n", now.Format("15:04"))
			marked = true
		}
		desc := p.TaskID
		if t, ok := lookup(p.TaskID); ok {
			desc = title(t.Description)
		}
		end := p.EndMinutes()
		fmt.Fprintf(w, "  %s-%02d:%02d  %-8s %s\n", p.Slot.Label(), end/60%24, end%60, p.TaskID, desc)
	}
	if !marked {
		highlight.Fprintf(w, "  %s  now\n", now.Format("15:04"))
	}

	fmt.Fprintln(w)
	heading.Fprintf(w, "Available tasks (%d)\n", len(pool))
	for _, t := range pool {
		estimate := schedule.DefaultDuration
		if t.HasEstimate() {
			estimate = t.EstimateMinutes
		}
		fmt.Fprintf(w, "  %-8s %3d min  %s\n", t.ID, estimate, title(t.Description))
	}
}

func dueText(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return model.FormatDate(t)
}

func title(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
