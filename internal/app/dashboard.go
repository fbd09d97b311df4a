// Package app composes the task store, the filter board and the schedule
// engine into the dashboard the views render.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/taskdash/internal/board"
	"github.com/agalitsyn/taskdash/internal/model"
	"github.com/agalitsyn/taskdash/internal/schedule"
)

type Config struct {
	View          ViewMode
	Selection     model.Selection
	Sort          model.SortConfig
	Schedule      schedule.Config
	ClockInterval time.Duration
	// Now is the time source of the schedule clock and the calendar.
	Now func() time.Time
}

type Dashboard struct {
	repo model.TaskRepository
	log  lgr.L
	now  func() time.Time

	board   *board.Board
	pointer *schedule.PointerBus
	engine  *schedule.Engine
	clock   *schedule.Clock

	view  ViewMode
	month time.Time
	ticks <-chan time.Time
}

func New(cfg Config, repo model.TaskRepository, logger lgr.L) *Dashboard {
	if logger == nil {
		logger = lgr.NoOp
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.View == "" {
		cfg.View = ViewList
	}
	if cfg.Sort == (model.SortConfig{}) {
		cfg.Sort = model.DefaultSortConfig()
	}

	b := board.New(repo, logger)
	b.SetSelection(cfg.Selection)
	b.SetSort(cfg.Sort)

	pointer := schedule.NewPointerBus()
	return &Dashboard{
		repo:    repo,
		log:     logger,
		now:     cfg.Now,
		board:   b,
		pointer: pointer,
		engine:  schedule.NewEngine(cfg.Schedule, pointer, logger),
		clock:   schedule.NewClock(cfg.ClockInterval, cfg.Now),
		view:    cfg.View,
		month:   monthOf(cfg.Now()),
	}
}

// Import stores freshly ingested tasks, refreshes the board and places the
// tasks that arrive with a scheduled time. Tasks already present in the
// store are kept as stored.
func (d *Dashboard) Import(ctx context.Context, tasks []model.Task) error {
	for i := range tasks {
		err := d.repo.CreateTask(ctx, &tasks[i])
		if errors.Is(err, model.ErrTaskExists) {
			d.log.Logf("[WARN] task %s already stored, keeping stored copy", tasks[i].ID)
			continue
		}
		if err != nil {
			return fmt.Errorf("could not import tasks: %w", err)
		}
	}
	d.log.Logf("[INFO] imported %d tasks", len(tasks))
	return d.Reload(ctx)
}

// Reload refreshes the board from the store and seeds placements for
// tasks carrying a scheduled time that are not placed yet.
func (d *Dashboard) Reload(ctx context.Context) error {
	if err := d.board.Reload(ctx); err != nil {
		return err
	}
	var seed []model.Task
	for _, t := range d.board.All() {
		if _, ok := d.engine.Placement(t.ID); !ok {
			seed = append(seed, t)
		}
	}
	d.engine.Seed(seed)
	return nil
}

// Start enters the configured view.
func (d *Dashboard) Start(ctx context.Context) {
	if d.view == ViewSchedule {
		d.ticks = d.clock.Start(ctx)
	}
}

func (d *Dashboard) View() ViewMode {
	return d.view
}

// SetView switches views. Entering the schedule starts its clock, leaving
// it stops the clock and abandons any gesture in flight.
func (d *Dashboard) SetView(ctx context.Context, v ViewMode) {
	if v == d.view {
		return
	}
	if d.view == ViewSchedule {
		d.engine.Cancel()
		d.clock.Stop()
		d.ticks = nil
	}
	d.view = v
	if v == ViewSchedule {
		d.ticks = d.clock.Start(ctx)
	}
	d.log.Logf("[DEBUG] view %s", v)
}

// Ticks delivers clock ticks while the schedule view is open, nil otherwise.
func (d *Dashboard) Ticks() <-chan time.Time {
	return d.ticks
}

func (d *Dashboard) Now() time.Time {
	return d.now()
}

func (d *Dashboard) Board() *board.Board {
	return d.board
}

func (d *Dashboard) Engine() *schedule.Engine {
	return d.engine
}

// Pointer is where the view publishes global pointer events.
func (d *Dashboard) Pointer() *schedule.PointerBus {
	return d.pointer
}

// CommitEdit stores an edited task in full and refreshes every view. Tags and
// dependencies are split and trimmed again; every other field is kept as typed.
func (d *Dashboard) CommitEdit(ctx context.Context, task model.Task) error {
	task.Tags = model.SplitList(strings.Join(task.Tags, ","))
	task.Dependencies = model.SplitList(strings.Join(task.Dependencies, ","))
	if err := d.board.Edit(ctx, task); err != nil {
		return fmt.Errorf("could not save task %s: %w", task.ID, err)
	}
	return nil
}

// Pool lists the visible tasks that are not on the timeline.
func (d *Dashboard) Pool() []model.Task {
	return d.engine.Unscheduled(d.board.Visible())
}

// Blocks lays out every placement on the timeline.
func (d *Dashboard) Blocks() ([]schedule.Block, int) {
	return schedule.Layout(d.engine.Placements())
}

// Task resolves a task id against the full collection.
func (d *Dashboard) Task(id string) (model.Task, bool) {
	return d.board.Task(id)
}

// Close releases the clock and any pointer subscription.
func (d *Dashboard) Close() {
	d.engine.Close()
	d.clock.Stop()
	d.ticks = nil
}
