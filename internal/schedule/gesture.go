package schedule

import "github.com/agalitsyn/taskdash/internal/model"

// Gesture is the interaction state of an Engine: Idle, Dragging or Resizing.
type Gesture interface {
	gesture()
}

type Idle struct{}

// Dragging carries the task being moved and the slot currently under the
// pointer, NoSlot when the pointer is outside the timeline.
type Dragging struct {
	Task model.Task
	Over Slot
}

// Resizing carries the pointer position and duration at gesture start.
type Resizing struct {
	TaskID        string
	StartY        float64
	StartDuration int
}

func (Idle) gesture()     {}
func (Dragging) gesture() {}
func (Resizing) gesture() {}
