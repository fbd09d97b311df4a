package model

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Unestimated marks a task without a usable time estimate.
const Unestimated = -1

const (
	DefaultOwner          = "Unassigned"
	DefaultStatusUpdate   = "No updates yet"
	DefaultDesiredOutcome = "No desired outcome specified"
)

type Task struct {
	ID             string
	Description    string
	Status         TaskStatus
	Owner          string
	Category       string
	Project        string
	Initiative     string
	Tags           []string
	Priority       Priority
	StatusUpdate   string
	DesiredOutcome string

	EstimateMinutes int
	StartDate       time.Time
	DueDate         time.Time
	ScheduledTime   string
	DurationMinutes int
	ActualMinutes   int
	Progress        int
	Dependencies    []string
}

func NewTask(id, description string) *Task {
	return &Task{
		ID:              id,
		Description:     description,
		Owner:           DefaultOwner,
		Priority:        PriorityMedium,
		StatusUpdate:    DefaultStatusUpdate,
		DesiredOutcome:  DefaultDesiredOutcome,
		EstimateMinutes: Unestimated,
	}
}

func (t Task) HasEstimate() bool {
	return t.EstimateMinutes > 0
}

// Clone returns a copy that shares no slices with t.
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.Dependencies != nil {
		c.Dependencies = append([]string(nil), t.Dependencies...)
	}
	return c
}

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "Not Started"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

var knownStatuses = []TaskStatus{TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted}

// ParseTaskStatus maps known statuses case-insensitively onto their canonical
// spelling. Anything else is kept as trimmed free text.
func ParseTaskStatus(s string) TaskStatus {
	s = strings.TrimSpace(s)
	for _, st := range knownStatuses {
		if strings.EqualFold(s, string(st)) {
			return st
		}
	}
	return TaskStatus(s)
}

func (s TaskStatus) IsKnown() bool {
	for _, st := range knownStatuses {
		if s == st {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists the priority filter options, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority title-cases the input and defaults to Medium when empty.
func ParsePriority(s string) Priority {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriorityMedium
	}
	return Priority(cases.Title(language.English).String(s))
}

// Rank orders priorities Low < Medium < High. Unknown values rank below Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

var ErrTaskNotFound = errors.New("task not found")
var ErrTaskExists = errors.New("task already exists")

type TaskRepository interface {
	FetchTasks(ctx context.Context) ([]Task, error)
	FetchTaskByID(ctx context.Context, id string) (*Task, error)
	CreateTask(ctx context.Context, task *Task) error
	UpdateTask(ctx context.Context, task *Task) error
}
