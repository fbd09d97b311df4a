package board

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/taskdash/internal/model"
)

// Board keeps the visible task list in sync with the repository, the filter
// selection and the sort configuration. Every change recomputes the view in
// full.
type Board struct {
	repo model.TaskRepository
	log  lgr.L

	selection model.Selection
	sort      model.SortConfig

	all     []model.Task
	visible []model.Task
	facets  Facets
}

func New(repo model.TaskRepository, logger lgr.L) *Board {
	if logger == nil {
		logger = lgr.NoOp
	}
	return &Board{
		repo: repo,
		log:  logger,
		sort: model.DefaultSortConfig(),
	}
}

// Reload fetches the collection from the repository and recomputes.
func (b *Board) Reload(ctx context.Context) error {
	tasks, err := b.repo.FetchTasks(ctx)
	if err != nil {
		return fmt.Errorf("could not fetch tasks: %w", err)
	}
	b.all = tasks
	b.facets = FacetsOf(tasks)
	b.recompute()
	return nil
}

// Edit replaces the task with the same id and refreshes the view.
func (b *Board) Edit(ctx context.Context, task model.Task) error {
	if err := b.repo.UpdateTask(ctx, &task); err != nil {
		return err
	}
	b.log.Logf("[DEBUG] task %s updated", task.ID)
	return b.Reload(ctx)
}

func (b *Board) SetSelection(sel model.Selection) {
	b.selection = sel.Clone()
	b.recompute()
}

func (b *Board) ToggleFilter(d model.Dimension, value string) {
	b.selection.Toggle(d, value)
	b.recompute()
}

func (b *Board) SetSort(cfg model.SortConfig) {
	b.sort = cfg
	b.recompute()
}

func (b *Board) SetSortField(f model.SortField) {
	b.sort.Field = f
	b.recompute()
}

func (b *Board) ToggleDirection() {
	b.sort = b.sort.Toggle()
	b.recompute()
}

// Reset clears every filter and restores the default sort.
func (b *Board) Reset() {
	b.selection = model.Selection{}
	b.sort = model.DefaultSortConfig()
	b.recompute()
}

func (b *Board) All() []model.Task {
	return b.all
}

func (b *Board) Visible() []model.Task {
	return b.visible
}

func (b *Board) Facets() Facets {
	return b.facets
}

func (b *Board) Selection() model.Selection {
	return b.selection.Clone()
}

func (b *Board) SortConfig() model.SortConfig {
	return b.sort
}

// Task returns the task with id from the full collection.
func (b *Board) Task(id string) (model.Task, bool) {
	for _, t := range b.all {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (b *Board) recompute() {
	b.visible = Apply(b.all, b.selection, b.sort)
}
