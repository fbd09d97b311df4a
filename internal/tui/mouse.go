package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agalitsyn/taskdash/internal/schedule"
)

type area int

const (
	areaNone area = iota
	areaPool
	areaTimeline
)

// hit describes what lies under a screen cell of the schedule view.
type hit struct {
	area area
	// pool is the index into the pool, -1 on the pool title row.
	pool     int
	slot     schedule.Slot
	block    schedule.Block
	onBlock  bool
	onHandle bool
}

func (m Model) hitTest(x, y int) hit {
	h := hit{pool: -1, slot: schedule.NoSlot}
	bh := m.bodyHeight()
	r := y - headerRows
	if r < 0 || r >= bh || x < 0 || x >= m.width {
		return h
	}

	if x < poolWidth {
		h.area = areaPool
		if r > 0 {
			if i := windowStart(m.cursor, bh-1) + r - 1; i < len(m.dash.Pool()) {
				h.pool = i
			}
		}
		return h
	}

	h.area = areaTimeline
	h.slot = schedule.Slot(m.scroll + r)
	if !h.slot.Valid() {
		h.slot = schedule.NoSlot
		return h
	}
	lx := x - poolWidth - labelWidth
	if lx < 0 {
		return h
	}

	blocks, lanes := m.dash.Blocks()
	lw := m.laneWidth(lanes)
	lane, in := lx/lw, lx%lw
	if b, ok := schedule.BlockAt(blocks, h.slot, lane); ok {
		cell := lw - 1
		h.block = b
		h.onBlock = in < cell
		h.onHandle = h.slot == b.LastSlot() && in >= cell-handleWidth && in < cell
	}
	return h
}

// dropSlot is where a dragged block starts when the pointer is over s, keeping
// the row it was grabbed by under the pointer.
func (m Model) dropSlot(s schedule.Slot) schedule.Slot {
	return min(max(s-schedule.Slot(m.grab), 0), schedule.SlotsPerDay-1)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	e := m.dash.Engine()
	h := m.hitTest(msg.X, msg.Y)
	// The engine measures pointer travel in pixels; a terminal row stands
	// for one slot row.
	y := float64(msg.Y) * m.pixelsPerSlot

	var err error
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll--
			m.clampScroll()
			return m, nil
		case tea.MouseButtonWheelDown:
			m.scroll++
			m.clampScroll()
			return m, nil
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}

		switch {
		case h.area == areaPool && h.pool >= 0:
			m.cursor = h.pool
			if err = e.BeginDrag(m.dash.Pool()[h.pool]); err == nil {
				m.grab = 0
			}
		case h.onHandle:
			err = e.BeginResize(h.block.TaskID, y)
		case h.onBlock:
			if t, ok := m.dash.Task(h.block.TaskID); ok {
				if err = e.BeginDrag(t); err == nil {
					m.grab = int(h.slot - h.block.Slot)
				}
			}
		}

	case tea.MouseActionMotion:
		switch e.State().(type) {
		case schedule.Resizing:
			m.dash.Pointer().Publish(schedule.PointerEvent{Kind: schedule.PointerMove, Y: y})
		case schedule.Dragging:
			if h.area == areaTimeline && h.slot.Valid() {
				e.DragOver(m.dropSlot(h.slot))
			} else {
				e.DragLeave()
			}
		}

	case tea.MouseActionRelease:
		switch e.State().(type) {
		case schedule.Resizing:
			m.dash.Pointer().Publish(schedule.PointerEvent{Kind: schedule.PointerUp, Y: y})
		case schedule.Dragging:
			switch {
			case h.area == areaTimeline && h.slot.Valid():
				var p schedule.Placement
				if p, err = e.Drop(m.dropSlot(h.slot)); err == nil {
					m.log.Logf("[DEBUG] dropped %s at %s", p.TaskID, p.Slot)
				}
			case h.area == areaPool:
				err = e.DropOnPool()
			default:
				e.EndDrag()
			}
		}
		m.clampCursor()
	}

	if err != nil {
		m.status = err.Error()
	}
	return m, nil
}
