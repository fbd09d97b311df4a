package app

import (
	"fmt"
	"strings"
)

// ViewMode selects which of the four views is rendered.
type ViewMode string

const (
	ViewList      ViewMode = "list"
	ViewAnalytics ViewMode = "analytics"
	ViewCalendar  ViewMode = "calendar"
	ViewSchedule  ViewMode = "schedule"
)

var ViewModes = []ViewMode{ViewList, ViewAnalytics, ViewCalendar, ViewSchedule}

func ParseViewMode(s string) (ViewMode, error) {
	for _, v := range ViewModes {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", s)
}

func (v ViewMode) Title() string {
	switch v {
	case ViewList:
		return "Tasks"
	case ViewAnalytics:
		return "Analytics"
	case ViewCalendar:
		return "Calendar"
	case ViewSchedule:
		return "Daily schedule"
	default:
		return string(v)
	}
}
