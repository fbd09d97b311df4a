package schedule

import (
	"errors"
	"math"
	"slices"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/agalitsyn/taskdash/internal/model"
)

var (
	ErrGestureActive = errors.New("another gesture is in progress")
	ErrNoGesture     = errors.New("no gesture in progress")
	ErrNotPlaced     = errors.New("task is not scheduled")
)

// Placement is a task scheduled at a slot for Duration minutes.
type Placement struct {
	TaskID   string
	Slot     Slot
	Duration int
}

// EndMinutes is the end of the placement in minutes from midnight.
func (p Placement) EndMinutes() int {
	return p.Slot.Minutes() + p.Duration
}

type Config struct {
	// PixelsPerSlot converts pointer travel into slots while resizing.
	PixelsPerSlot float64
}

func DefaultConfig() Config {
	return Config{PixelsPerSlot: DefaultPixelsPerSlot}
}

// Engine owns the placements of one schedule view and the gesture state that
// mutates them. It is driven from a single event loop and is not safe for
// concurrent use.
type Engine struct {
	cfg     Config
	pointer PointerSource
	log     lgr.L

	state      Gesture
	placements map[string]Placement
	release    func()
}

func NewEngine(cfg Config, pointer PointerSource, logger lgr.L) *Engine {
	if cfg.PixelsPerSlot <= 0 {
		cfg.PixelsPerSlot = DefaultPixelsPerSlot
	}
	if logger == nil {
		logger = lgr.NoOp
	}
	return &Engine{
		cfg:        cfg,
		pointer:    pointer,
		log:        logger,
		state:      Idle{},
		placements: make(map[string]Placement),
	}
}

func (e *Engine) State() Gesture {
	return e.state
}

func (e *Engine) Placement(taskID string) (Placement, bool) {
	p, ok := e.placements[taskID]
	return p, ok
}

// Placements returns all placements ordered by slot, then task id.
func (e *Engine) Placements() []Placement {
	out := make([]Placement, 0, len(e.placements))
	for _, p := range e.placements {
		out = append(out, p)
	}
	sortPlacements(out)
	return out
}

// InSlot returns the placements starting at s ordered by task id, which is
// also their stacking order.
func (e *Engine) InSlot(s Slot) []Placement {
	var out []Placement
	for _, p := range e.placements {
		if p.Slot == s {
			out = append(out, p)
		}
	}
	sortPlacements(out)
	return out
}

// Unscheduled filters tasks down to those without a placement.
func (e *Engine) Unscheduled(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if _, ok := e.placements[t.ID]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// Seed places tasks that already carry a scheduled time. Unknown labels are
// skipped.
func (e *Engine) Seed(tasks []model.Task) {
	for _, t := range tasks {
		if t.ScheduledTime == "" {
			continue
		}
		slot, err := ParseSlot(t.ScheduledTime)
		if err != nil {
			e.log.Logf("[WARN] task %s: %v", t.ID, err)
			continue
		}
		e.placements[t.ID] = Placement{TaskID: t.ID, Slot: slot, Duration: e.durationFor(t)}
	}
}

// IsDragging reports whether taskID is the task being dragged.
func (e *Engine) IsDragging(taskID string) bool {
	d, ok := e.state.(Dragging)
	return ok && d.Task.ID == taskID
}

// IsResizing reports whether taskID is the task being resized.
func (e *Engine) IsResizing(taskID string) bool {
	r, ok := e.state.(Resizing)
	return ok && r.TaskID == taskID
}

// DropTarget is the highlighted slot of the current drag, or NoSlot.
func (e *Engine) DropTarget() Slot {
	if d, ok := e.state.(Dragging); ok {
		return d.Over
	}
	return NoSlot
}

// BeginDrag starts moving task, either from the unscheduled pool or from its
// current placement.
func (e *Engine) BeginDrag(task model.Task) error {
	if _, ok := e.state.(Idle); !ok {
		return ErrGestureActive
	}
	e.state = Dragging{Task: task, Over: NoSlot}
	e.log.Logf("[DEBUG] drag start %s", task.ID)
	return nil
}

// DragOver records the slot under the pointer for highlighting.
func (e *Engine) DragOver(s Slot) {
	d, ok := e.state.(Dragging)
	if !ok || !s.Valid() {
		return
	}
	d.Over = s
	e.state = d
}

// DragLeave clears the highlighted slot.
func (e *Engine) DragLeave() {
	if d, ok := e.state.(Dragging); ok {
		d.Over = NoSlot
		e.state = d
	}
}

// Drop places the dragged task at s, replacing any earlier placement of it.
// The duration carries over from the earlier placement, else comes from the
// task's own duration or estimate, else DefaultDuration.
func (e *Engine) Drop(s Slot) (Placement, error) {
	d, ok := e.state.(Dragging)
	if !ok {
		return Placement{}, ErrNoGesture
	}
	if !s.Valid() {
		return Placement{}, ErrUnknownSlot
	}

	duration := e.durationFor(d.Task)
	if prev, ok := e.placements[d.Task.ID]; ok {
		duration = prev.Duration
		delete(e.placements, d.Task.ID)
	}

	p := Placement{TaskID: d.Task.ID, Slot: s, Duration: duration}
	e.placements[p.TaskID] = p
	e.state = Idle{}
	e.log.Logf("[DEBUG] placed %s at %s for %d min", p.TaskID, p.Slot, p.Duration)
	return p, nil
}

// DropOnPool returns the dragged task to the unscheduled pool.
func (e *Engine) DropOnPool() error {
	d, ok := e.state.(Dragging)
	if !ok {
		return ErrNoGesture
	}
	if _, ok := e.placements[d.Task.ID]; ok {
		delete(e.placements, d.Task.ID)
		e.log.Logf("[DEBUG] unscheduled %s", d.Task.ID)
	}
	e.state = Idle{}
	return nil
}

// EndDrag finishes a drag that was not dropped. Placements are untouched.
func (e *Engine) EndDrag() {
	if _, ok := e.state.(Dragging); ok {
		e.state = Idle{}
	}
}

// BeginResize starts stretching a placed task from pointer position y. The
// engine listens to the pointer source until the pointer is released or the
// gesture is cancelled.
func (e *Engine) BeginResize(taskID string, y float64) error {
	if _, ok := e.state.(Idle); !ok {
		return ErrGestureActive
	}
	p, ok := e.placements[taskID]
	if !ok {
		return ErrNotPlaced
	}

	e.state = Resizing{TaskID: taskID, StartY: y, StartDuration: p.Duration}
	if e.pointer != nil {
		e.release = e.pointer.Subscribe(e.onPointer)
	}
	e.log.Logf("[DEBUG] resize start %s at %d min", taskID, p.Duration)
	return nil
}

func (e *Engine) onPointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerMove:
		e.resizeTo(ev.Y)
	case PointerUp:
		e.endResize()
	}
}

// resizeTo applies the duration for pointer position y immediately, snapped
// to whole slots and never below one slot.
func (e *Engine) resizeTo(y float64) {
	r, ok := e.state.(Resizing)
	if !ok {
		return
	}
	p, ok := e.placements[r.TaskID]
	if !ok {
		return
	}
	p.Duration = ResizedDuration(r.StartDuration, y-r.StartY, e.cfg.PixelsPerSlot)
	e.placements[r.TaskID] = p
}

func (e *Engine) endResize() {
	r, ok := e.state.(Resizing)
	if !ok {
		return
	}
	e.state = Idle{}
	e.releasePointer()
	if p, ok := e.placements[r.TaskID]; ok {
		e.log.Logf("[DEBUG] resized %s to %d min", r.TaskID, p.Duration)
	}
}

// Cancel abandons any gesture. A drag leaves placements untouched; a resize
// keeps the duration applied so far.
func (e *Engine) Cancel() {
	switch e.state.(type) {
	case Dragging:
		e.EndDrag()
	case Resizing:
		e.endResize()
	}
}

// Close cancels any gesture and releases the pointer subscription.
func (e *Engine) Close() {
	e.Cancel()
	e.releasePointer()
}

func (e *Engine) releasePointer() {
	if e.release != nil {
		e.release()
		e.release = nil
	}
}

func (e *Engine) durationFor(t model.Task) int {
	d := DefaultDuration
	switch {
	case t.DurationMinutes > 0:
		d = t.DurationMinutes
	case t.HasEstimate():
		d = t.EstimateMinutes
	}
	return max(d, DefaultDuration)
}

// ResizedDuration is the duration after dragging a resize handle dy pixels.
// Travel is rounded to whole slots, halves rounding up.
func ResizedDuration(start int, dy, pixelsPerSlot float64) int {
	slots := int(math.Floor(dy/pixelsPerSlot + 0.5))
	return max(DefaultDuration, start+slots*SlotMinutes)
}

func sortPlacements(ps []Placement) {
	slices.SortFunc(ps, comparePlacements)
}

func comparePlacements(a, b Placement) int {
	if a.Slot != b.Slot {
		return int(a.Slot) - int(b.Slot)
	}
	return strings.Compare(a.TaskID, b.TaskID)
}
