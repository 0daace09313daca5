// Package kvstore is a persisted key-value namespace backed by SQLite.
//
// Every value is stored as JSON under a string key. A Store is one handle
// over the namespace; several handles attached to the same Bus observe each
// other's writes, the way two browser tabs observe the same origin storage.
// The store fails soft: read and write errors are logged and the caller gets
// the default value back, never an error.
package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// Store is a single handle over the persisted key-value namespace.
type Store struct {
	path   string
	db     *sql.DB
	bus    *Bus
	logger *slog.Logger

	mu      sync.Mutex
	subs    map[string]map[int]func(raw []byte)
	nextSub int
}

type entry struct {
	Value string `db:"value"`
}

// Open opens (and migrates) the database at path and attaches the handle to
// bus. A nil bus means the handle only notifies its own subscribers.
func Open(path string, bus *Bus, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := openDatabase(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:   path,
		db:     db,
		bus:    bus,
		logger: logger.With("component", "kvstore"),
		subs:   make(map[string]map[int]func(raw []byte)),
	}
	if bus != nil {
		bus.attach(s)
	}
	return s, nil
}

// Detached returns a handle with no backing database. Reads serve defaults
// and writes are dropped, matching the behavior before durable storage is
// available.
func Detached(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger: logger.With("component", "kvstore"),
		subs:   make(map[string]map[int]func(raw []byte)),
	}
}

// Close detaches the handle from its bus and closes the database.
func (s *Store) Close() error {
	if s.bus != nil {
		s.bus.detach(s)
	}
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Subscribe registers fn for change notifications on key. fn receives the
// freshly re-read raw JSON value (nil if the key is absent) after every write
// to key from any handle on the same bus, including this one. The returned
// function cancels the subscription.
func (s *Store) Subscribe(key string, fn func(raw []byte)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func(raw []byte))
	}
	id := s.nextSub
	s.nextSub++
	s.subs[key][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}

// Read returns the value stored under key, or def when the key is absent,
// the stored value does not decode into T, or no database is available.
func Read[T any](s *Store, key string, def T) T {
	raw, ok := s.readRaw(key)
	if !ok {
		return def
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn("failed to decode stored value", "key", key, "error", err)
		return def
	}
	return v
}

// Write persists v under key and publishes the change. Serialization and
// storage errors are logged and swallowed.
func Write[T any](s *Store, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("failed to encode value", "key", key, "error", err)
		return
	}

	if s.db == nil {
		s.logger.Debug("detached store, dropping write", "key", key)
		return
	}

	query := `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(context.Background(), query, key, string(data), time.Now()); err != nil {
		s.logger.Warn("failed to persist value", "key", key, "error", err)
		// The write never landed; fanning out would make subscribers re-read
		// the old stored value. Each caller's memory stays authoritative.
		return
	}

	if s.bus != nil {
		s.bus.Publish(key)
	} else {
		s.notifyLocal(key)
	}
}

// Delete removes key from the namespace and publishes the change.
func (s *Store) Delete(key string) {
	if s.db == nil {
		return
	}
	if _, err := s.db.ExecContext(context.Background(), `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		s.logger.Warn("failed to delete value", "key", key, "error", err)
		return
	}
	if s.bus != nil {
		s.bus.Publish(key)
	} else {
		s.notifyLocal(key)
	}
}

func (s *Store) readRaw(key string) ([]byte, bool) {
	if s.db == nil {
		return nil, false
	}

	var e entry
	err := sqlscan.Get(context.Background(), s.db, &e, `SELECT value FROM kv_entries WHERE key = ?`, key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("failed to read value", "key", key, "error", err)
		}
		return nil, false
	}
	return []byte(e.Value), true
}

// notifyLocal re-reads key and republishes it to this handle's subscribers.
func (s *Store) notifyLocal(key string) {
	raw, _ := s.readRaw(key)

	s.mu.Lock()
	fns := make([]func(raw []byte), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(raw)
	}
}
