package events

import (
	"slices"
	"sync"
)

// subBuffer is how many messages a subscriber may lag before new ones are
// dropped for it.
const subBuffer = 16

// Message is one published event: its type and the JSON envelope.
type Message struct {
	Seq  uint64
	Type string
	Data string
}

// Hub fans engine events out to SSE subscribers.
type Hub struct {
	mu   sync.Mutex
	seq  uint64
	subs map[chan Message][]string // subscriber -> wanted types (nil = all)
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Message][]string)}
}

// Subscribe registers a subscriber for the given event types, or for every
// type when none are given.
func (h *Hub) Subscribe(types ...string) chan Message {
	ch := make(chan Message, subBuffer)
	h.mu.Lock()
	h.subs[ch] = types
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; !ok {
		return
	}
	delete(h.subs, ch)
	close(ch)
}

// Publish stamps a sequence number and delivers without blocking; a full
// subscriber misses the message.
func (h *Hub) Publish(typ, data string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	msg := Message{Seq: h.seq, Type: typ, Data: data}
	for ch, want := range h.subs {
		if len(want) > 0 && !slices.Contains(want, typ) {
			continue
		}
		select {
		case ch <- msg:
		default:
		}
	}
}

// Emit builds an envelope and publishes it. A nil hub is a no-op.
func (h *Hub) Emit(reqID, typ string, data any) {
	if h == nil {
		return
	}
	h.Publish(typ, MakeEvent(reqID, typ, 1, data))
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
