package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/penwyp/go-stampwatch/internal/core/constants"
	"github.com/penwyp/go-stampwatch/internal/core/model"
	"github.com/penwyp/go-stampwatch/internal/core/stamps"
	"github.com/penwyp/go-stampwatch/internal/data/persist"
	"github.com/penwyp/go-stampwatch/internal/data/store"
	"github.com/penwyp/go-stampwatch/internal/util"
)

// ErrUnsavedChanges is returned by Reload while local changes are not yet saved
var ErrUnsavedChanges = errors.New("unsaved local changes")

// Tracker owns the timestamp log and its backing store. Both the
// interactive list and the one-shot commands go through it.
type Tracker struct {
	config *AppConfig
	store  *store.FileStore
	log    *stamps.Log
	loc    *time.Location
	dirty  bool
	mu     sync.Mutex
}

// OpenTracker opens the store and reads the persisted log. On first start
// the log is seeded with one timestamp at now.
func OpenTracker(config *AppConfig, now time.Time) (*Tracker, error) {
	s, err := store.Open(config.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	loc, err := util.LoadTimezone(config.Timezone)
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		config: config,
		store:  s,
		log:    stamps.New(config.Capacity, config.Overflow),
		loc:    loc,
	}

	firstStart := !s.Exists(constants.NumItemsStorageKey)
	if err := persist.Load(s, t.log, now); err != nil {
		return nil, fmt.Errorf("failed to read persisted values: %w", err)
	}
	if firstStart {
		t.dirty = true
		if err := t.saveIfConfigured(); err != nil {
			return nil, err
		}
	}

	util.LogInfo("Timestamp log opened",
		util.F("path", config.StorePath),
		util.F("count", t.log.Len()),
		util.F("capacity", t.log.Cap()))
	return t, nil
}

// Stamp records now and returns the new newest row. ErrFull is returned
// unchanged when the log refuses the entry.
func (t *Tracker) Stamp(now time.Time) (model.Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.log.Create(now); err != nil {
		return model.Row{}, err
	}
	t.dirty = true
	if err := t.saveIfConfigured(); err != nil {
		return model.Row{}, err
	}
	return t.newestRow(), nil
}

// Reset clears the log and records now as its only entry
func (t *Tracker) Reset(now time.Time) (model.Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.log.Reset(now)
	t.dirty = true
	if err := t.saveIfConfigured(); err != nil {
		return model.Row{}, err
	}
	return t.newestRow(), nil
}

// Rows returns the list rows, newest first
func (t *Tracker) Rows() []model.Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.log.Rows(t.config.TimeFormat, t.loc)
}

// Snapshot returns the rows together with the log's fill state
func (t *Tracker) Snapshot() (rows []model.Row, capacity int, full bool, last time.Time, hasLast bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	last, hasLast = t.log.Last()
	return t.log.Rows(t.config.TimeFormat, t.loc), t.log.Cap(), t.log.Full(), last, hasLast
}

// Len returns the number of recorded timestamps
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.log.Len()
}

// Cap returns the log capacity
func (t *Tracker) Cap() int {
	return t.log.Cap()
}

// Reload picks up changes written by another process. It reports whether
// the log changed. Unsaved local changes are never replaced; ErrUnsavedChanges
// is returned instead and the next save overwrites the external write.
func (t *Tracker) Reload(now time.Time) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dirty {
		util.LogWarn("External store change ignored",
			util.F("path", t.store.Path()),
			util.F("count", t.log.Len()))
		return false, ErrUnsavedChanges
	}

	changed, err := t.store.Reload()
	if err != nil || !changed {
		return false, err
	}
	if err := persist.Load(t.store, t.log, now); err != nil {
		return false, fmt.Errorf("failed to read persisted values: %w", err)
	}
	t.dirty = false
	return true, nil
}

// Save writes the log to the store when it has unsaved changes
func (t *Tracker) Save() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.save()
}

// Close saves pending changes
func (t *Tracker) Close() error {
	return t.Save()
}

// StorePath returns the backing store file
func (t *Tracker) StorePath() string {
	return t.store.Path()
}

func (t *Tracker) saveIfConfigured() error {
	if !t.config.SaveOnChange {
		return nil
	}
	return t.save()
}

func (t *Tracker) save() error {
	if !t.dirty {
		return nil
	}
	if err := persist.Save(t.store, t.log); err != nil {
		return fmt.Errorf("failed to write persisted values: %w", err)
	}
	t.dirty = false
	return nil
}

func (t *Tracker) newestRow() model.Row {
	entries := t.log.Entries()
	return stamps.BuildRow(entries, len(entries)-1, t.log.Cap(), t.config.TimeFormat, t.loc)
}

// IsFull reports whether err is the log-full refusal
func IsFull(err error) bool {
	return errors.Is(err, stamps.ErrFull)
}

// Location returns the display timezone
func (t *Tracker) Location() *time.Location {
	return t.loc
}
