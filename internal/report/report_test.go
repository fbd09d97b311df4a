package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/agalitsyn/taskdash/internal/app"
	"github.com/agalitsyn/taskdash/internal/model"
	"github.com/agalitsyn/taskdash/internal/schedule"
	"github.com/agalitsyn/taskdash/internal/storage/memory"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// golden compares got with testdata/<name>.golden. Set GOLDEN_UPDATE to
// rewrite the files.
func golden(t *testing.T, name string, got []byte) {
	t.Helper()
	path := filepath.Join("testdata", name+".golden")
	if os.Getenv("GOLDEN_UPDATE") != "" {
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatal(err)
		}
		return
	}
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read %s: %v\ngot:\n%s", path, err, got)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("output mismatch for %s\nwant:\n%s\ngot:\n%s", name, want, got)
	}
}

func date(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

// fixture is already in the default priority-descending order.
func fixture() []model.Task {
	return []model.Task{
		{
			ID: "T-1", Description: "Write ingest", Status: model.TaskStatusInProgress,
			Owner: "Alice", Category: "Dev", Project: "Apollo", Tags: []string{"backend", "csv"},
			Priority: model.PriorityHigh, DueDate: date(4, 20), Progress: 40, EstimateMinutes: 90,
		},
		{
			ID: "T-2", Description: "Plan sprint", Status: model.TaskStatusNotStarted,
			Owner: model.DefaultOwner, Category: "Ops", Priority: model.PriorityMedium,
			EstimateMinutes: model.Unestimated,
		},
		{
			ID: "T-4", Status: "Blocked", Priority: model.PriorityMedium,
			DueDate: date(5, 1), Progress: 10, EstimateMinutes: model.Unestimated,
		},
		{
			ID: "T-3", Description: "Ship v1", Status: model.TaskStatusCompleted,
			Owner: "Bob", Category: "Dev", Project: "Apollo", Priority: model.PriorityLow,
			DueDate: date(4, 3), Progress: 100, EstimateMinutes: 45,
		},
	}
}

func lookup(tasks []model.Task) func(string) (model.Task, bool) {
	return func(id string) (model.Task, bool) {
		for _, t := range tasks {
			if t.ID == id {
				return t, true
			}
		}
		return model.Task{}, false
	}
}

func TestList(t *testing.T) {
	var buf bytes.Buffer
	List(&buf, fixture(), model.DefaultSortConfig())
	golden(t, "list", buf.Bytes())
}

func TestListEmpty(t *testing.T) {
	var buf bytes.Buffer
	List(&buf, nil, model.SortConfig{Field: model.SortByDueDate, Direction: model.SortAsc})
	if got := buf.String(); got != "Tasks (0) sorted by dueDate ↑\n  no tasks\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestAnalytics(t *testing.T) {
	var buf bytes.Buffer
	Analytics(&buf, fixture())
	golden(t, "analytics", buf.Bytes())
}

func TestCalendar(t *testing.T) {
	var buf bytes.Buffer
	Calendar(&buf, date(4, 1), app.CalendarOf(fixture(), date(4, 1)))
	golden(t, "calendar", buf.Bytes())

	buf.Reset()
	Calendar(&buf, date(6, 1), app.CalendarOf(fixture(), date(6, 1)))
	if got := buf.String(); got != "June 2024\n  no tasks due\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestSchedule(t *testing.T) {
	tasks := fixture()
	placements := []schedule.Placement{
		{TaskID: "T-1", Slot: 18, Duration: 90},
		{TaskID: "T-3", Slot: 20, Duration: 45},
		{TaskID: "T-9", Slot: 30, Duration: 30},
	}
	pool := []model.Task{tasks[1], tasks[2]}
	now := time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	Schedule(&buf, now, placements, pool, lookup(tasks))
	golden(t, "schedule", buf.Bytes())
}

func TestBar(t *testing.T) {
	tests := []struct {
		pct, width int
		want       string
	}{
		{0, 20, ""},
		{25, 20, "#####"},
		{100, 20, "####################"},
		{150, 10, "##########"},
		{-5, 10, ""},
	}
	for _, tt := range tests {
		if got := Bar(tt.pct, tt.width); got != tt.want {
			t.Errorf("Bar(%d, %d) = %q, want %q", tt.pct, tt.width, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 4, 15, 10, 0, 0, 0, time.UTC) }
	d := app.New(app.Config{Now: now}, memory.NewTaskStorage(), nil)
	defer d.Close()
	if err := d.Import(context.Background(), fixture()); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, d, app.ViewList); err != nil {
		t.Fatal(err)
	}
	golden(t, "list", buf.Bytes())

	buf.Reset()
	if err := Render(&buf, d, app.ViewCalendar); err != nil {
		t.Fatal(err)
	}
	golden(t, "calendar", buf.Bytes())

	if err := Render(&buf, d, app.ViewMode("gantt")); err == nil {
		t.Error("expected error for unknown view")
	}
}
