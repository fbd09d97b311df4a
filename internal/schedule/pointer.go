package schedule

import "sync"

type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerUp
)

type PointerEvent struct {
	Kind PointerKind
	Y    float64
}

// PointerSource delivers global pointer events to subscribers until the
// returned function is called.
type PointerSource interface {
	Subscribe(fn func(PointerEvent)) (unsubscribe func())
}

// PointerBus is a PointerSource fed by the view with every pointer event.
type PointerBus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(PointerEvent)
}

func NewPointerBus() *PointerBus {
	return &PointerBus{subs: make(map[int]func(PointerEvent))}
}

func (b *PointerBus) Subscribe(fn func(PointerEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish calls every subscriber. Subscribers may unsubscribe from inside
// the callback.
func (b *PointerBus) Publish(ev PointerEvent) {
	b.mu.Lock()
	fns := make([]func(PointerEvent), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Listeners is the number of active subscriptions.
func (b *PointerBus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
