// Package schedule places tasks on a one-day timeline of 30 minute slots and
// implements the drag and resize gestures that move and stretch them.
package schedule

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	SlotMinutes     = 30
	SlotsPerDay     = 48
	MinutesPerDay   = 24 * 60
	DefaultDuration = SlotMinutes

	// DefaultPixelsPerSlot is the height of one slot row.
	DefaultPixelsPerSlot = 64
)

var ErrUnknownSlot = errors.New("unknown slot")

// Slot is the index of a 30 minute interval, 0 for 00:00 up to 47 for 23:30.
type Slot int

// NoSlot means no slot is highlighted.
const NoSlot Slot = -1

func (s Slot) Valid() bool {
	return s >= 0 && s < SlotsPerDay
}

// Minutes is the start of the slot in minutes from midnight.
func (s Slot) Minutes() int {
	return int(s) * SlotMinutes
}

// Label formats the slot start as HH:MM.
func (s Slot) Label() string {
	if !s.Valid() {
		return "--:--"
	}
	m := s.Minutes()
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func (s Slot) String() string {
	return s.Label()
}

// ParseSlot reads an HH:MM label that falls on a slot boundary.
func ParseSlot(label string) (Slot, error) {
	var h, m int
	if _, err := fmt.Sscanf(label, "%d:%d", &h, &m); err != nil {
		return NoSlot, fmt.Errorf("%w %q", ErrUnknownSlot, label)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || m%SlotMinutes != 0 {
		return NoSlot, fmt.Errorf("%w %q", ErrUnknownSlot, label)
	}
	return Slot((h*60 + m) / SlotMinutes), nil
}

// SlotAt returns the slot containing t.
func SlotAt(t time.Time) Slot {
	return Slot((t.Hour()*60 + t.Minute()) / SlotMinutes)
}

// Slots returns all slots of the day in order.
func Slots() []Slot {
	slots := make([]Slot, SlotsPerDay)
	for i := range slots {
		slots[i] = Slot(i)
	}
	return slots
}

// SlotSpan is the number of whole slot rows a block of duration minutes
// covers.
func SlotSpan(duration int) int {
	if duration <= 0 {
		return 1
	}
	return int(math.Ceil(BlockHeight(duration, 1)))
}

// BlockHeight is the rendered height of a placement of duration minutes.
func BlockHeight(duration int, rowHeight float64) float64 {
	return float64(duration) / SlotMinutes * rowHeight
}

// NowOffset is the position of t on the timeline as a fraction of its height.
func NowOffset(t time.Time) float64 {
	return float64(t.Hour()*60+t.Minute()) / MinutesPerDay
}
