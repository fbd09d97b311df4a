package schedule

// Block is a placement positioned for rendering: it covers Rows slot rows
// starting at its slot, in column Lane.
type Block struct {
	Placement
	Lane int
	Rows int
}

// LastSlot is the final slot row the block covers, where its resize handle
// sits. Blocks running past midnight are clipped to the last slot.
func (b Block) LastSlot() Slot {
	return min(b.Slot+Slot(b.Rows)-1, Slot(SlotsPerDay-1))
}

// Covers reports whether the block occupies slot row s.
func (b Block) Covers(s Slot) bool {
	return s >= b.Slot && s <= b.LastSlot()
}

// Layout assigns each placement the lowest lane free over its whole span,
// walking placements by slot and task id so the result is reproducible.
// It returns the blocks and the number of lanes used.
func Layout(placements []Placement) ([]Block, int) {
	sorted := make([]Placement, len(placements))
	copy(sorted, placements)
	sortPlacements(sorted)

	var (
		blocks  []Block
		laneEnd []Slot // first free slot per lane
	)
	for _, p := range sorted {
		b := Block{Placement: p, Rows: SlotSpan(p.Duration)}
		lane := -1
		for i, end := range laneEnd {
			if end <= p.Slot {
				lane = i
				break
			}
		}
		if lane < 0 {
			lane = len(laneEnd)
			laneEnd = append(laneEnd, 0)
		}
		b.Lane = lane
		laneEnd[lane] = b.LastSlot() + 1
		blocks = append(blocks, b)
	}
	return blocks, len(laneEnd)
}

// BlockAt finds the block drawn at slot row s in lane.
func BlockAt(blocks []Block, s Slot, lane int) (Block, bool) {
	for _, b := range blocks {
		if b.Lane == lane && b.Covers(s) {
			return b, true
		}
	}
	return Block{}, false
}
