package hub

import (
	"encoding/json"
	"testing"

	"horizon-cli/internal/model"
)

func snapshotFixture() model.ServerMessage {
	return model.SnapshotMessage(
		[]model.Entry{{ID: 1, Title: "e"}},
		[]model.Note{{ID: 1, Title: "n"}},
	)
}

func TestSubscribeReceivesSnapshotFirst(t *testing.T) {
	h := New()

	ch := h.Subscribe(1, snapshotFixture())
	select {
	case b := <-ch:
		var msg model.ServerMessage
		if err := json.Unmarshal(b, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Type != model.MessageSnapshot {
			t.Fatalf("first event must be a snapshot, got %s", msg.Type)
		}
		if len(msg.Entries) != 1 || len(msg.Notes) != 1 {
			t.Fatalf("snapshot payload: %+v", msg)
		}
	default:
		t.Fatalf("snapshot not queued on subscribe")
	}
}

func TestBroadcastDeliversIdenticalPayloadToAll(t *testing.T) {
	h := New()
	a := h.Subscribe(1, snapshotFixture())
	b := h.Subscribe(2, snapshotFixture())
	<-a
	<-b

	h.Broadcast(model.EntryUpdatedMessage(model.Entry{ID: 3, Title: "x"}))

	pa, pb := <-a, <-b
	if string(pa) != string(pb) {
		t.Fatalf("payloads differ:\n%s\n%s", pa, pb)
	}
	var msg model.ServerMessage
	if err := json.Unmarshal(pa, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != model.MessageEntryUpdated || msg.Entry == nil || msg.Entry.ID != 3 {
		t.Fatalf("payload: %+v", msg)
	}
}

func TestBroadcastWithNoSubscribersIsANoOp(t *testing.T) {
	h := New()

	// Must not panic or error; the event is simply dropped.
	h.Broadcast(model.EntryRemovedMessage(9))

	ch := h.Subscribe(1, snapshotFixture())
	<-ch // snapshot
	select {
	case b := <-ch:
		t.Fatalf("stale event delivered after subscribe: %s", b)
	default:
	}
}

func TestSlowSubscriberDropsEventsWithoutBlocking(t *testing.T) {
	h := New()
	ch := h.Subscribe(1, snapshotFixture())
	<-ch

	// Overfill the outbox; Broadcast must never block.
	for i := 0; i < outboxSize+10; i++ {
		h.Broadcast(model.EntryRemovedMessage(uint64(i)))
	}

	drained := 0
	for {
		select {
		case <-ch:
			drained++
			continue
		default:
		}
		break
	}
	if drained != outboxSize {
		t.Fatalf("expected exactly %d buffered events, got %d", outboxSize, drained)
	}
}

func TestUnsubscribeClosesOutbox(t *testing.T) {
	h := New()
	ch := h.Subscribe(7, snapshotFixture())
	<-ch

	h.Unsubscribe(7)
	if _, open := <-ch; open {
		t.Fatalf("outbox should be closed after unsubscribe")
	}
	if h.SubscriberCount() != 0 {
		t.Fatalf("subscriber count: %d", h.SubscriberCount())
	}

	// Unknown ids are fine.
	h.Unsubscribe(99)
}
