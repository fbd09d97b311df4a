package app

import (
	"slices"
	"time"

	"github.com/agalitsyn/taskdash/internal/model"
)

// Day groups the visible tasks due on Date.
type Day struct {
	Date  time.Time
	Tasks []model.Task
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Month is the first day of the month shown by the calendar.
func (d *Dashboard) Month() time.Time {
	return d.month
}

func (d *Dashboard) NextMonth() {
	d.month = d.month.AddDate(0, 1, 0)
}

func (d *Dashboard) PrevMonth() {
	d.month = d.month.AddDate(0, -1, 0)
}

// Calendar groups visible tasks by due date within the selected month,
// earliest day first. Tasks keep their board order within a day.
func (d *Dashboard) Calendar() []Day {
	return CalendarOf(d.board.Visible(), d.month)
}

func CalendarOf(tasks []model.Task, month time.Time) []Day {
	month = monthOf(month)
	index := make(map[time.Time]int)
	var days []Day
	for _, t := range tasks {
		if t.DueDate.IsZero() {
			continue
		}
		due := time.Date(t.DueDate.Year(), t.DueDate.Month(), t.DueDate.Day(), 0, 0, 0, 0, time.UTC)
		if !monthOf(due).Equal(month) {
			continue
		}
		i, ok := index[due]
		if !ok {
			i = len(days)
			index[due] = i
			days = append(days, Day{Date: due})
		}
		days[i].Tasks = append(days[i].Tasks, t)
	}
	slices.SortStableFunc(days, func(a, b Day) int {
		return a.Date.Compare(b.Date)
	})
	return days
}
