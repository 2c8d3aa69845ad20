package hub

import (
	"encoding/json"
	"sync"

	"horizon-cli/internal/model"
)

// outboxSize bounds the per-channel backlog. A subscriber that cannot keep up
// loses events rather than blocking anyone else; it can always resubscribe
// for a fresh snapshot.
const outboxSize = 64

// Hub tracks subscribed delivery channels and fans out serialized change
// events. The subscriber set lives for the process only; it is never
// persisted and starts empty on restart.
//
// Delivery is best-effort and fire-and-forget: sends never block, a full or
// closed channel never fails the others, and by the time Broadcast runs the
// state mutation that produced the event has already committed.
type Hub struct {
	mu   sync.Mutex
	subs map[uint32]chan []byte
}

func New() *Hub {
	return &Hub{subs: map[uint32]chan []byte{}}
}

// Subscribe registers the channel id and queues the given full snapshot as
// its first event. Registration and the snapshot send happen in one critical
// section, so a concurrent Broadcast lands either entirely before (not seen;
// its change is already inside the snapshot) or entirely after (queued behind
// the snapshot); the snapshot is always the first event delivered. The caller
// must build the snapshot under the same lock that serializes its Broadcast
// calls, or a commit could slip between snapshot construction and
// registration and be lost. Re-subscribing an already-known id resends the
// snapshot on the existing outbox.
func (h *Hub) Subscribe(id uint32, snapshot model.ServerMessage) <-chan []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.subs[id]
	if !ok {
		ch = make(chan []byte, outboxSize)
		h.subs[id] = ch
	}
	if b, err := json.Marshal(snapshot); err == nil {
		trySend(ch, b)
	}
	return ch
}

// Unsubscribe removes the channel and closes its outbox. Safe to call for
// unknown ids (e.g. a socket that closed before ever subscribing).
func (h *Hub) Unsubscribe(id uint32) {
	h.mu.Lock()
	ch, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
	}
	h.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Broadcast serializes the event once and queues an identical copy for every
// subscribed channel. With no subscribers the event is dropped before any
// serialization work.
func (h *Hub) Broadcast(msg model.ServerMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.subs) == 0 {
		return
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for _, ch := range h.subs {
		trySend(ch, b)
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func trySend(ch chan []byte, b []byte) {
	select {
	case ch <- b:
	default:
	}
}
