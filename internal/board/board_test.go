package board

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/agalitsyn/taskdash/internal/model"
	"github.com/agalitsyn/taskdash/internal/storage/memory"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()

	ctx := context.Background()
	repo := memory.NewTaskStorage()
	for _, task := range sampleTasks() {
		task := task
		if err := repo.CreateTask(ctx, &task); err != nil {
			t.Fatal(err)
		}
	}

	b := New(repo, nil)
	if err := b.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return b
}

func TestBoardRecomputesOnChange(t *testing.T) {
	b := newTestBoard(t)

	if got := ids(b.Visible()); !reflect.DeepEqual(got, []string{"2", "4", "3", "5", "1"}) {
		t.Fatalf("default view = %v", got)
	}

	b.ToggleFilter(model.DimensionProject, "Gemini")
	if got := ids(b.Visible()); !reflect.DeepEqual(got, []string{"4", "3"}) {
		t.Errorf("filtered view = %v", got)
	}
	if len(b.Facets().Projects) != 2 {
		t.Errorf("facets shrank with the filter: %v", b.Facets().Projects)
	}

	b.ToggleDirection()
	if got := ids(b.Visible()); !reflect.DeepEqual(got, []string{"3", "4"}) {
		t.Errorf("ascending view = %v", got)
	}

	b.SetSortField(model.SortByProgress)
	if got := ids(b.Visible()); !reflect.DeepEqual(got, []string{"4", "3"}) {
		t.Errorf("progress view = %v", got)
	}

	b.Reset()
	if b.SortConfig() != model.DefaultSortConfig() || !b.Selection().IsEmpty() {
		t.Errorf("reset left state behind: %+v", b.SortConfig())
	}
	if len(b.Visible()) != 5 {
		t.Errorf("expected all tasks after reset, got %d", len(b.Visible()))
	}
}

func TestBoardEditRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newTestBoard(t)
	b.ToggleFilter(model.DimensionProject, "Apollo")

	edited, ok := b.Task("5")
	if !ok {
		t.Fatal("task 5 not found")
	}
	edited.Description = "Rewritten"
	edited.Status = model.TaskStatusCompleted
	edited.Tags = []string{"ux", "design"}
	edited.EstimateMinutes = 90

	if err := b.Edit(ctx, edited); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	got, ok := b.Task("5")
	if !ok || !reflect.DeepEqual(got, edited) {
		t.Errorf("canonical collection: got %+v, want %+v", got, edited)
	}

	var inView bool
	for _, task := range b.Visible() {
		if task.ID == "5" {
			inView = true
			if !reflect.DeepEqual(task, edited) {
				t.Errorf("visible copy not refreshed: %+v", task)
			}
		}
	}
	if !inView {
		t.Error("edited task missing from the filtered view")
	}
	if !reflect.DeepEqual(b.Facets().Tags, []string{"infra", "api", "ux", "design"}) {
		t.Errorf("facets not refreshed: %v", b.Facets().Tags)
	}

	if err := b.Edit(ctx, model.Task{ID: "404"}); !errors.Is(err, model.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}
