// Package chat is the conversation controller: the façade a host mounts for
// one route-resolved subject. It owns the transient input text and in-flight
// state, delegates durable mutation to the session history, and turns
// orchestrator results into optimistic appends, rollbacks and notifications.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/lucas-bats/timetraveler/src/histdata"
	"github.com/lucas-bats/timetraveler/src/kvstore"
	"github.com/lucas-bats/timetraveler/src/notify"
	"github.com/lucas-bats/timetraveler/src/session"
)

// Replier produces one reply for one user message. Satisfied by
// *orchestrator.Orchestrator.
type Replier interface {
	RequestReply(ctx context.Context, subject histdata.Subject, text, language string) (string, error)
}

// Deps are the collaborators a controller is wired with. Language and store
// are passed explicitly so the controller is testable without a host.
type Deps struct {
	Store    *kvstore.Store
	Replier  Replier
	Notifier *notify.Service
	Language string
	Logger   *slog.Logger
}

// Controller manages one conversation. At most one generation call is
// outstanding at a time; a submission while one is in flight is a no-op.
type Controller struct {
	subject  histdata.Subject
	history  *session.History
	replier  Replier
	notifier *notify.Service
	language string
	logger   *slog.Logger

	mu      sync.Mutex
	input   string
	loading bool
}

// Mount resolves the subject for (kind, id) and opens its history. An
// unknown subject returns an error wrapping histdata.ErrNotFound; the host
// renders its not-found view and does not retry.
func Mount(deps Deps, kind histdata.SubjectType, id string) (*Controller, error) {
	subject, err := histdata.ResolveSubject(kind, id)
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "chat", "subject", string(kind)+"/"+id)

	return &Controller{
		subject:  subject,
		history:  session.Open(deps.Store, string(kind), id, logger),
		replier:  deps.Replier,
		notifier: deps.Notifier,
		language: deps.Language,
		logger:   logger,
	}, nil
}

// Close releases the history subscription.
func (c *Controller) Close() {
	c.history.Close()
}

// Subject returns the mounted conversation subject.
func (c *Controller) Subject() histdata.Subject {
	return c.subject
}

// Messages returns the current message list.
func (c *Controller) Messages() []session.Message {
	return c.history.Messages()
}

// IsLoading reports whether a generation call is in flight.
func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Input returns the current input-box text.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// SetInput replaces the input-box text.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

// SendMessage submits text to the orchestrator. It is a no-op when text is
// blank or a call is already in flight. The user message is appended
// optimistically; on success the final list is the pre-submission snapshot
// plus the user and assistant messages, on failure the snapshot is restored
// and an error notification is published. The in-flight flag always clears.
func (c *Controller) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		c.logger.Debug("submission ignored, call in flight")
		return nil
	}
	c.loading = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	snapshot := c.history.Messages()
	userMsg := session.NewUserMessage(text)

	optimistic := make([]session.Message, 0, len(snapshot)+1)
	optimistic = append(optimistic, snapshot...)
	optimistic = append(optimistic, userMsg)
	c.history.Set(optimistic)

	reply, err := c.replier.RequestReply(ctx, c.subject, text, c.language)
	if err != nil {
		c.logger.Warn("rolling back failed submission", "error", err)
		c.history.Set(snapshot)
		if c.notifier != nil {
			c.notifier.Error("Message failed", fmt.Sprintf("%s did not answer. Please try again.", c.subject.DisplayName()))
		}
		return fmt.Errorf("send message: %w", err)
	}

	// Rebuild from the snapshot rather than the optimistic list, so a
	// concurrent external update between the append and the reply cannot be
	// re-appended here. Whole-list last write wins.
	final := make([]session.Message, 0, len(snapshot)+2)
	final = append(final, snapshot...)
	final = append(final, userMsg, session.NewAssistantMessage(reply))
	c.history.Set(final)
	return nil
}

// SubmitFromInput sends the current input text. The input box is cleared as
// the submission starts, independent of the outcome; only the message list
// is rolled back on failure.
func (c *Controller) SubmitFromInput(ctx context.Context) error {
	c.mu.Lock()
	text := c.input
	c.input = ""
	c.mu.Unlock()

	return c.SendMessage(ctx, text)
}

// UseSuggestion places a suggested opener in the input box and submits it.
func (c *Controller) UseSuggestion(ctx context.Context, text string) error {
	c.SetInput(text)
	return c.SubmitFromInput(ctx)
}

// ToggleFavorite flips the favorited flag on the matching message. An
// unknown id leaves the list untouched.
func (c *Controller) ToggleFavorite(messageID string) {
	found := false
	for _, m := range c.history.Messages() {
		if m.ID == messageID {
			found = true
			break
		}
	}
	if !found {
		return
	}

	c.history.Update(func(prev []session.Message) []session.Message {
		for i := range prev {
			if prev[i].ID == messageID {
				prev[i].Favorited = !prev[i].Favorited
			}
		}
		return prev
	})
}

// FavoriteMessages returns the favorited subset of the list, in order.
func (c *Controller) FavoriteMessages() []session.Message {
	var out []session.Message
	for _, m := range c.history.Messages() {
		if m.Favorited {
			out = append(out, m)
		}
	}
	return out
}

// ClearConversation empties the message list. Irreversible.
func (c *Controller) ClearConversation() {
	c.history.Set([]session.Message{})
}

// Suggestions returns the conversation openers for the mounted subject.
func (c *Controller) Suggestions() []string {
	switch s := c.subject.(type) {
	case *histdata.Character:
		return s.Suggestions
	case *histdata.Event:
		return s.Suggestions
	default:
		return nil
	}
}

// Participants returns the participant names for an event subject, and nil
// for a character.
func (c *Controller) Participants() []string {
	switch s := c.subject.(type) {
	case *histdata.Character:
		return nil
	case *histdata.Event:
		return s.ParticipantNames()
	default:
		return nil
	}
}
