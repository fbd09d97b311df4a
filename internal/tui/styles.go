package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agalitsyn/taskdash/internal/model"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	accent    = lipgloss.Color("#3B82F6")
	nowColor  = lipgloss.Color("#EF4444")
	blockBg   = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"}
	hoverBg   = lipgloss.AdaptiveColor{Light: "#EFF6FF", Dark: "#172554"}
	titleText = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(titleText)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(subtle)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent)
	hintStyle      = lipgloss.NewStyle().Foreground(subtle)
	errorStyle     = lipgloss.NewStyle().Foreground(nowColor)
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	faintStyle     = lipgloss.NewStyle().Faint(true)
	labelStyle     = lipgloss.NewStyle().Foreground(subtle)
	nowStyle       = lipgloss.NewStyle().Bold(true).Foreground(nowColor)
	nowLowerStyle  = nowStyle.Underline(true)
	blockStyle     = lipgloss.NewStyle().Background(blockBg)
	resizingStyle  = lipgloss.NewStyle().Background(blockBg).Bold(true)
	dropStyle      = lipgloss.NewStyle().Background(hoverBg)
	barStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8884D8"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(subtle).Padding(0, 1)
	fieldStyle     = lipgloss.NewStyle().Width(16).Foreground(subtle)

	statusStyles = map[model.TaskStatus]lipgloss.Style{
		model.TaskStatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")),
		model.TaskStatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
		model.TaskStatusNotStarted: lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB")),
	}
	otherStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308"))
)

func statusStyle(s model.TaskStatus) lipgloss.Style {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return otherStatusStyle
}
