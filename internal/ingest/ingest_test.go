package ingest

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/agalitsyn/taskdash/internal/model"
)

func TestReadFile(t *testing.T) {
	r := NewReader(Options{}, nil)
	tasks, err := r.LoadFile("testdata/tasks.csv")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	first := tasks[0]
	if first.ID != "T-1" {
		t.Errorf("BOM not stripped from header, got id %q", first.ID)
	}
	if first.Status != model.TaskStatusInProgress {
		t.Errorf("Status = %q", first.Status)
	}
	if !reflect.DeepEqual(first.Tags, []string{"plan", "docs"}) {
		t.Errorf("Tags = %v", first.Tags)
	}
	if first.Priority != model.PriorityHigh {
		t.Errorf("Priority = %q", first.Priority)
	}
	if first.EstimateMinutes != 45 {
		t.Errorf("EstimateMinutes = %d", first.EstimateMinutes)
	}
	if want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC); !first.DueDate.Equal(want) {
		t.Errorf("DueDate = %v", first.DueDate)
	}
	if first.StatusUpdate != model.DefaultStatusUpdate || first.DesiredOutcome != model.DefaultDesiredOutcome {
		t.Errorf("missing defaults: %q / %q", first.StatusUpdate, first.DesiredOutcome)
	}
	if first.ActualMinutes != 10 || first.Progress != 40 {
		t.Errorf("ActualMinutes = %d, Progress = %d", first.ActualMinutes, first.Progress)
	}
	if !reflect.DeepEqual(first.Dependencies, []string{"T-0", "T-2"}) {
		t.Errorf("Dependencies = %v", first.Dependencies)
	}

	second := tasks[1]
	if second.Owner != model.DefaultOwner {
		t.Errorf("Owner = %q", second.Owner)
	}
	if second.HasEstimate() || second.EstimateMinutes != model.Unestimated {
		t.Errorf("expected unestimated task, got %d", second.EstimateMinutes)
	}
	if second.Priority != model.PriorityMedium {
		t.Errorf("expected default priority, got %q", second.Priority)
	}
	if second.DurationMinutes != 60 {
		t.Errorf("DurationMinutes = %d", second.DurationMinutes)
	}

	orphan := tasks[2]
	if orphan.ID == "" || orphan.Priority != model.PriorityLow {
		t.Errorf("unexpected orphan task %+v", orphan)
	}
	again, err := r.LoadFile("testdata/tasks.csv")
	if err != nil {
		t.Fatal(err)
	}
	if again[2].ID != orphan.ID {
		t.Errorf("generated id is not stable: %q vs %q", orphan.ID, again[2].ID)
	}
}

func TestReadDelimiters(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"tab", "Task ID\tTask Description\nA\tFirst\n"},
		{"semicolon", "Task ID;Task Description\nA;First\n"},
		{"pipe", "Task ID|Task Description\nA|First\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := NewReader(Options{}, nil).Read(strings.NewReader(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if len(tasks) != 1 || tasks[0].ID != "A" || tasks[0].Description != "First" {
				t.Errorf("unexpected tasks %+v", tasks)
			}
		})
	}
}

func TestReadExplicitDelimiter(t *testing.T) {
	input := "Task ID;Task Description\nA;x,y,z\n"
	tasks, err := NewReader(Options{Delimiter: ';'}, nil).Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if tasks[0].Description != "x,y,z" {
		t.Errorf("Description = %q", tasks[0].Description)
	}
}

func TestReadDuplicateIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"repeated", "Task ID,Task Description\nA,one\nA,two\nA,three\n", []string{"A", "A#2", "A#3"}},
		{"suffix already taken", "Task ID,Task Description\nA,first\nA#2,explicit\nA,third\n", []string{"A", "A#2", "A#3"}},
		{"explicit id after rename", "Task ID,Task Description\nA,one\nA,two\nA#2,explicit\n", []string{"A", "A#2", "A#2#2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := NewReader(Options{}, nil).Read(strings.NewReader(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			var ids []string
			for _, task := range tasks {
				ids = append(ids, task.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("ids = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := NewReader(Options{}, nil).Read(strings.NewReader("")); err != ErrNoHeader {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}

	malformed := "Task ID,Task Description\nA,\"unterminated\nB,x\n"
	if _, err := NewReader(Options{}, nil).Read(strings.NewReader(malformed)); err == nil {
		t.Error("expected error for malformed row")
	}
}

func TestLoadFailureYieldsEmpty(t *testing.T) {
	var logged []string
	logger := func(format string, args ...interface{}) { logged = append(logged, format) }

	r := NewReader(Options{}, logFunc(logger))
	if tasks := r.Load("testdata/does-not-exist.csv"); tasks != nil {
		t.Errorf("expected no tasks, got %d", len(tasks))
	}
	if len(logged) == 0 || !strings.HasPrefix(logged[0], "[WARN]") {
		t.Errorf("expected a warning to be logged, got %v", logged)
	}
}

type logFunc func(format string, args ...interface{})

func (f logFunc) Logf(format string, args ...interface{}) { f(format, args...) }

func TestDetectDelimiter(t *testing.T) {
	if got := DetectDelimiter([]byte("a,b;c\n1;2;3")); got != ',' {
		t.Errorf("expected comma from header only, got %q", got)
	}
	if got := DetectDelimiter([]byte("a")); got != ',' {
		t.Errorf("expected comma default, got %q", got)
	}
}
