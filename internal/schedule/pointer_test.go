package schedule

import (
	"context"
	"testing"
	"time"
)

func TestPointerBus(t *testing.T) {
	bus := NewPointerBus()

	var got []PointerEvent
	unsubscribe := bus.Subscribe(func(ev PointerEvent) {
		got = append(got, ev)
	})
	var self func()
	self = bus.Subscribe(func(ev PointerEvent) {
		if ev.Kind == PointerUp {
			self()
		}
	})
	if bus.Listeners() != 2 {
		t.Fatalf("expected 2 listeners, got %d", bus.Listeners())
	}

	bus.Publish(PointerEvent{Kind: PointerMove, Y: 10})
	bus.Publish(PointerEvent{Kind: PointerUp})
	if bus.Listeners() != 1 {
		t.Errorf("self unsubscribe failed, %d listeners", bus.Listeners())
	}

	unsubscribe()
	unsubscribe()
	bus.Publish(PointerEvent{Kind: PointerMove, Y: 20})
	if len(got) != 2 || got[0].Y != 10 || got[1].Kind != PointerUp {
		t.Errorf("unexpected events %+v", got)
	}
	if bus.Listeners() != 0 {
		t.Errorf("expected no listeners, got %d", bus.Listeners())
	}
}

func TestClock(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	c := NewClock(time.Millisecond, func() time.Time { return fixed })

	ticks := c.Start(context.Background())
	if again := c.Start(context.Background()); again != ticks {
		t.Error("Start on a running clock returned a new channel")
	}
	if !c.Running() {
		t.Fatal("clock not running after Start")
	}

	select {
	case tick := <-ticks:
		if !tick.Equal(fixed) {
			t.Errorf("tick = %v, want %v", tick, fixed)
		}
	case <-time.After(time.Second):
		t.Fatal("no tick within a second")
	}

	c.Stop()
	if c.Running() {
		t.Error("clock running after Stop")
	}
	for range ticks {
	}
	c.Stop()
}

func TestClockStopsWithContext(t *testing.T) {
	c := NewClock(time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	ticks := c.Start(ctx)
	cancel()

	select {
	case _, ok := <-ticks:
		if ok {
			t.Error("unexpected tick")
		}
	case <-time.After(time.Second):
		t.Fatal("tick channel not closed after context cancel")
	}
	if c.Running() {
		t.Error("clock running after its context ended")
	}
	if restarted := c.Start(context.Background()); restarted == ticks {
		t.Error("expected a fresh channel after restart")
	}
	c.Stop()
}
