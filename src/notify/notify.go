// Package notify is the user-visible notification side channel: a small
// explicit publish/subscribe service constructed at wiring time and injected
// where needed. There is no package-level registry; tests build their own
// instances.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a notification.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is one dismissible message shown to the user.
type Notification struct {
	ID        string
	Level     Level
	Title     string
	Message   string
	CreatedAt time.Time
}

// Service fans notifications out to its subscribers. Delivery is synchronous
// on the publishing goroutine.
type Service struct {
	mu      sync.Mutex
	subs    map[int]func(Notification)
	nextSub int
}

// NewService returns an empty notification service.
func NewService() *Service {
	return &Service{subs: make(map[int]func(Notification))}
}

// Subscribe registers fn for every future notification. The returned
// function cancels the subscription.
func (s *Service) Subscribe(fn func(Notification)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Publish delivers n to all current subscribers, assigning an id and
// timestamp if unset.
func (s *Service) Publish(n Notification) Notification {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	s.mu.Lock()
	fns := make([]func(Notification), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(n)
	}
	return n
}

// Info publishes an info-level notification.
func (s *Service) Info(title, message string) Notification {
	return s.Publish(Notification{Level: LevelInfo, Title: title, Message: message})
}

// Error publishes an error-level notification.
func (s *Service) Error(title, message string) Notification {
	return s.Publish(Notification{Level: LevelError, Title: title, Message: message})
}
