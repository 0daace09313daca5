package session

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/lucas-bats/timetraveler/src/kvstore"
)

// History owns the persisted message list for one session key. Updates apply
// to memory synchronously and persist through the store; a change published
// for the key (from this or any other handle on the bus) replaces the
// in-memory list with the re-read value, so two containers over the same key
// converge. Whole-list last write wins; concurrent writers are not merged.
type History struct {
	store  *kvstore.Store
	key    string
	logger *slog.Logger

	mu       sync.Mutex
	messages []Message

	cancel func()
}

// Open loads the message list stored under Key(subjectType, subjectID) and
// subscribes to further changes. Close must be called when the container is
// no longer needed.
func Open(store *kvstore.Store, subjectType, subjectID string, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}

	h := &History{
		store:  store,
		key:    Key(subjectType, subjectID),
		logger: logger.With("component", "session", "key", Key(subjectType, subjectID)),
	}
	h.messages = kvstore.Read(store, h.key, []Message{})
	h.cancel = store.Subscribe(h.key, h.onChange)
	return h
}

// Key returns the storage key this container is bound to.
func (h *History) Key() string {
	return h.key
}

// Messages returns a copy of the current list.
func (h *History) Messages() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Set replaces the list and persists it.
func (h *History) Set(messages []Message) {
	h.mu.Lock()
	h.messages = messages
	h.mu.Unlock()

	kvstore.Write(h.store, h.key, messages)
}

// Update applies fn to the current list and persists the result. fn receives
// a copy; mutating its argument does not alias the stored list.
func (h *History) Update(fn func(prev []Message) []Message) {
	h.mu.Lock()
	prev := make([]Message, len(h.messages))
	copy(prev, h.messages)
	next := fn(prev)
	h.messages = next
	h.mu.Unlock()

	kvstore.Write(h.store, h.key, next)
}

// Close cancels the store subscription.
func (h *History) Close() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

func (h *History) onChange(raw []byte) {
	var messages []Message
	if raw != nil {
		if err := json.Unmarshal(raw, &messages); err != nil {
			h.logger.Warn("ignoring malformed history notification", "error", err)
			return
		}
	}

	h.mu.Lock()
	h.messages = messages
	h.mu.Unlock()
}
