// Package session holds the per-subject conversation history: the message
// model, the storage key scheme, and the History container that keeps one
// persisted message list in sync with the key-value store.
package session

import (
	"strconv"
	"sync"
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation. Only Favorited ever changes after
// creation; messages are removed in bulk via clear, never individually.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Favorited bool      `json:"favorited"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewMessageID returns a time-based id, bumped when two messages land on the
// same nanosecond so ids stay strictly increasing within the process.
func NewMessageID() string {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixNano()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return strconv.FormatInt(id, 10)
}

// NewUserMessage builds a user-role message for text. Timestamps are UTC so
// a list compares equal after a persistence round trip.
func NewUserMessage(text string) Message {
	return Message{
		ID:        NewMessageID(),
		Role:      RoleUser,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	}
}

// NewAssistantMessage builds an assistant-role message for text.
func NewAssistantMessage(text string) Message {
	return Message{
		ID:        NewMessageID(),
		Role:      RoleAssistant,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	}
}
