package editor

import "sync"

// EventType classifies change notifications.
type EventType string

const (
	EventEdit    EventType = "edit"    // track structure changed by an edit
	EventHistory EventType = "history" // undo or redo
	EventImport  EventType = "import"  // tracks replaced wholesale
	EventCursor  EventType = "cursor"  // current time or zoom moved
	EventAsset   EventType = "asset"   // asset registered
)

// Event tells subscribers what changed. Revision is the editor revision
// after the change.
type Event struct {
	Type     EventType `json:"type"`
	Op       string    `json:"op"`
	Revision uint64    `json:"revision"`
}

type broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int]chan Event)}
}

func (b *broadcaster) subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// publish never blocks: a full subscriber simply misses the event.
func (b *broadcaster) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
