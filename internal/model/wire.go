package model

// Wire messages for the live-update protocol. Events are discriminated by a
// type tag and always carry the complete updated record (or just the id for
// removals), never a partial patch.

type ServerMessageType string

const (
	MessageSnapshot     ServerMessageType = "snapshot"
	MessageEntryUpdated ServerMessageType = "entry_updated"
	MessageEntryRemoved ServerMessageType = "entry_removed"
	MessageNoteUpdated  ServerMessageType = "note_updated"
	MessageNoteRemoved  ServerMessageType = "note_removed"
)

type ServerMessage struct {
	Type ServerMessageType `json:"type"`

	// Snapshot payload.
	Entries []Entry `json:"entries,omitempty"`
	Notes   []Note  `json:"notes,omitempty"`

	// Update payloads.
	Entry *Entry `json:"entry,omitempty"`
	Note  *Note  `json:"note,omitempty"`

	// Removal payloads.
	EntryID uint64 `json:"entry_id,omitempty"`
	NoteID  uint64 `json:"note_id,omitempty"`
}

func SnapshotMessage(entries []Entry, notes []Note) ServerMessage {
	return ServerMessage{Type: MessageSnapshot, Entries: entries, Notes: notes}
}

func EntryUpdatedMessage(e Entry) ServerMessage {
	return ServerMessage{Type: MessageEntryUpdated, Entry: &e}
}

func EntryRemovedMessage(id uint64) ServerMessage {
	return ServerMessage{Type: MessageEntryRemoved, EntryID: id}
}

func NoteUpdatedMessage(n Note) ServerMessage {
	return ServerMessage{Type: MessageNoteUpdated, Note: &n}
}

func NoteRemovedMessage(id uint64) ServerMessage {
	return ServerMessage{Type: MessageNoteRemoved, NoteID: id}
}

type ClientMessageType string

const (
	ClientSubscribe ClientMessageType = "subscribe"
	ClientPing      ClientMessageType = "ping"
)

type ClientMessage struct {
	Type ClientMessageType `json:"type"`
}
