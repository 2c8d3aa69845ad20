package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"horizon-cli/internal/hub"
	"horizon-cli/internal/model"
	"horizon-cli/internal/mutate"
	"horizon-cli/internal/store"
)

// App is the command processor: the single entry point for every mutating
// command. It owns the authoritative DB, runs each command to completion
// under one mutex (validate, mutate, synchronize links, recompute derived
// fields, broadcast), snapshots to SQLite after each successful mutation,
// and emits minimal-diff events through the hub.
//
// The mutex is the single-writer discipline: no two commands ever observe or
// modify overlapping state, so no partial mutation is ever visible and the
// link invariant holds at every command boundary.
type App struct {
	log *slog.Logger
	now func() time.Time

	mu  sync.Mutex
	db  *store.DB
	st  *store.Store // nil disables snapshot persistence
	hub *hub.Hub
}

type Config struct {
	DB      *store.DB
	Persist *store.Store
	Logger  *slog.Logger
	// Now overrides the clock (tests).
	Now func() time.Time
}

func New(cfg Config) *App {
	a := &App{
		log: cfg.Logger,
		now: cfg.Now,
		db:  cfg.DB,
		st:  cfg.Persist,
	}
	if a.db == nil {
		a.db = store.NewDB()
	}
	if a.log == nil {
		a.log = slog.Default()
	}
	if a.now == nil {
		a.now = time.Now
	}
	a.hub = hub.New()
	return a
}

func (a *App) Hub() *hub.Hub {
	return a.hub
}

// Bootstrap returns every current entry and note as one payload.
func (a *App) Bootstrap() model.Bootstrap {
	a.mu.Lock()
	defer a.mu.Unlock()
	return model.Bootstrap{
		Entries: a.db.SnapshotEntries(),
		Notes:   a.db.SnapshotNotes(),
	}
}

// SaveEntry creates or updates an entry. Touched linked notes are broadcast
// before the entry itself so subscribers never observe an asymmetric view.
func (a *App) SaveEntry(draft model.EntryDraft) (model.Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := mutate.SaveEntry(a.db, draft, a.now())
	if err != nil {
		return model.Entry{}, err
	}
	a.persistLocked()
	for _, n := range res.TouchedNotes {
		a.hub.Broadcast(model.NoteUpdatedMessage(n))
	}
	a.hub.Broadcast(model.EntryUpdatedMessage(res.Entry))
	return res.Entry, nil
}

func (a *App) ToggleEntryCompletion(entryID uint64, completed bool) (model.Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, err := mutate.ToggleEntryCompletion(a.db, entryID, completed, a.now())
	if err != nil {
		return model.Entry{}, err
	}
	a.persistLocked()
	a.hub.Broadcast(model.EntryUpdatedMessage(entry))
	return entry, nil
}

// DeleteEntry removes the entry, then broadcasts the removal followed by the
// notes the cascade touched.
func (a *App) DeleteEntry(entryID uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := mutate.DeleteEntry(a.db, entryID)
	if err != nil {
		return err
	}
	a.persistLocked()
	a.hub.Broadcast(model.EntryRemovedMessage(res.EntryID))
	for _, n := range res.TouchedNotes {
		a.hub.Broadcast(model.NoteUpdatedMessage(n))
	}
	return nil
}

func (a *App) SaveNote(draft model.NoteDraft) (model.Note, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := mutate.SaveNote(a.db, draft, a.now())
	if err != nil {
		return model.Note{}, err
	}
	a.persistLocked()
	for _, e := range res.TouchedEntries {
		a.hub.Broadcast(model.EntryUpdatedMessage(e))
	}
	a.hub.Broadcast(model.NoteUpdatedMessage(res.Note))
	return res.Note, nil
}

func (a *App) DeleteNote(noteID uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	res, err := mutate.DeleteNote(a.db, noteID)
	if err != nil {
		return err
	}
	a.persistLocked()
	a.hub.Broadcast(model.NoteRemovedMessage(res.NoteID))
	for _, e := range res.TouchedEntries {
		a.hub.Broadcast(model.EntryUpdatedMessage(e))
	}
	return nil
}

// SearchAll is a read-only scan; it still serializes behind the mutex so it
// never observes a half-applied command.
func (a *App) SearchAll(query string) ([]model.Entry, []model.Note) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.db.SearchAll(query)
}

// Subscribe registers a delivery channel; the hub queues a full snapshot for
// it before any later event. Holding the command mutex across snapshot
// construction and registration means no command can commit in between: every
// change is either inside the snapshot or broadcast after it.
func (a *App) Subscribe(channelID uint32) <-chan []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	snapshot := model.SnapshotMessage(a.db.SnapshotEntries(), a.db.SnapshotNotes())
	return a.hub.Subscribe(channelID, snapshot)
}

func (a *App) Unsubscribe(channelID uint32) {
	a.hub.Unsubscribe(channelID)
}

// persistLocked snapshots the committed state. Persistence is best-effort by
// design: the in-memory copy is authoritative and a failed snapshot never
// rolls back a mutation or suppresses its broadcast.
func (a *App) persistLocked() {
	if a.st == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.st.Save(ctx, a.db); err != nil {
		a.log.Warn("state snapshot failed", "dir", a.st.Dir, "error", err)
	}
}
