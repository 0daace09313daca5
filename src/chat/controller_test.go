package chat

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-bats/timetraveler/src/histdata"
	"github.com/lucas-bats/timetraveler/src/kvstore"
	"github.com/lucas-bats/timetraveler/src/notify"
	"github.com/lucas-bats/timetraveler/src/orchestrator"
	"github.com/lucas-bats/timetraveler/src/session"
)

// fakeReplier returns a fixed reply or error.
type fakeReplier struct {
	reply string
	err   error
	calls int
}

func (f *fakeReplier) RequestReply(ctx context.Context, subject histdata.Subject, text, language string) (string, error) {
	f.calls++
	return f.reply, f.err
}

// blockingReplier holds every call until released.
type blockingReplier struct {
	entered chan struct{}
	release chan struct{}
	calls   int
	mu      sync.Mutex
}

func newBlockingReplier() *blockingReplier {
	return &blockingReplier{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (b *blockingReplier) RequestReply(ctx context.Context, subject histdata.Subject, text, language string) (string, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	b.entered <- struct{}{}
	<-b.release
	return "delayed reply", nil
}

// emptyGenerator returns empty replies until the configured attempt.
type emptyGenerator struct {
	succeedOn int
	reply     string
	calls     int
}

func (g *emptyGenerator) GenerateFigureReply(ctx context.Context, figureName, userMessage, language string) (string, error) {
	g.calls++
	if g.succeedOn > 0 && g.calls >= g.succeedOn {
		return g.reply, nil
	}
	return "", nil
}

func (g *emptyGenerator) GenerateEventReply(ctx context.Context, eventID, userMessage string, participants []string, eventContext, language string) (string, error) {
	g.calls++
	return "", nil
}

func openStore(t *testing.T) *kvstore.Store {
	t.Helper()
	s, err := kvstore.Open(filepath.Join(t.TempDir(), "state.db"), nil, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func mountCleopatra(t *testing.T, store *kvstore.Store, replier Replier, notifier *notify.Service) *Controller {
	t.Helper()
	c, err := Mount(Deps{
		Store:    store,
		Replier:  replier,
		Notifier: notifier,
		Language: "en",
	}, histdata.SubjectCharacter, "cleopatra")
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func roles(messages []session.Message) []string {
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = m.Role
	}
	return out
}

func TestMountUnknownSubject(t *testing.T) {
	store := openStore(t)

	_, err := Mount(Deps{Store: store}, histdata.SubjectCharacter, "napoleon")
	assert.ErrorIs(t, err, histdata.ErrNotFound)

	_, err = Mount(Deps{Store: store}, histdata.SubjectEvent, "moon-landing")
	assert.ErrorIs(t, err, histdata.ErrNotFound)
}

func TestSendMessageAppendsUserAndAssistant(t *testing.T) {
	store := openStore(t)
	c := mountCleopatra(t, store, &fakeReplier{reply: "The Nile was my kingdom's lifeblood."}, nil)

	require.NoError(t, c.SendMessage(context.Background(), "Tell me about the Nile"))

	got := c.Messages()
	require.Len(t, got, 2)
	assert.Equal(t, []string{session.RoleUser, session.RoleAssistant}, roles(got))
	assert.Equal(t, "Tell me about the Nile", got[0].Content)
	assert.Equal(t, "The Nile was my kingdom's lifeblood.", got[1].Content)
	assert.False(t, c.IsLoading())
}

func TestSendMessageRollsBackOnFailure(t *testing.T) {
	store := openStore(t)
	notifier := notify.NewService()

	var toasts []notify.Notification
	cancel := notifier.Subscribe(func(n notify.Notification) { toasts = append(toasts, n) })
	defer cancel()

	c := mountCleopatra(t, store, &fakeReplier{reply: "first answer"}, notifier)
	require.NoError(t, c.SendMessage(context.Background(), "hello"))
	before := c.Messages()

	failing := &fakeReplier{err: errors.New("connection refused")}
	c2 := mountCleopatra(t, store, failing, notifier)
	err := c2.SendMessage(context.Background(), "are you there?")
	require.Error(t, err)

	// Exactly the pre-call list: the optimistic user message is gone.
	assert.Equal(t, before, c2.Messages())
	assert.False(t, c2.IsLoading())

	require.Len(t, toasts, 1)
	assert.Equal(t, notify.LevelError, toasts[0].Level)
}

func TestSendMessageRetriesEmptyRepliesThroughOrchestrator(t *testing.T) {
	store := openStore(t)
	gen := &emptyGenerator{succeedOn: 3, reply: "The Nile was..."}
	c := mountCleopatra(t, store, orchestrator.New(gen, nil), nil)

	require.NoError(t, c.SendMessage(context.Background(), "Tell me about the Nile"))

	assert.Equal(t, 3, gen.calls)
	got := c.Messages()
	require.Len(t, got, 2)
	assert.Equal(t, "The Nile was...", got[1].Content)
}

func TestSendMessageExhaustedRetriesRollBack(t *testing.T) {
	store := openStore(t)
	notifier := notify.NewService()
	gen := &emptyGenerator{}
	c := mountCleopatra(t, store, orchestrator.New(gen, nil), notifier)

	err := c.SendMessage(context.Background(), "Tell me about the Nile")
	assert.ErrorIs(t, err, orchestrator.ErrEmptyReply)
	assert.Equal(t, 3, gen.calls)
	assert.Empty(t, c.Messages())
	assert.False(t, c.IsLoading())
}

func TestSendMessageBlankIsNoOp(t *testing.T) {
	store := openStore(t)
	replier := &fakeReplier{reply: "never"}
	c := mountCleopatra(t, store, replier, nil)

	require.NoError(t, c.SendMessage(context.Background(), "   "))
	assert.Zero(t, replier.calls)
	assert.Empty(t, c.Messages())
}

func TestSendMessageSerializesSubmissions(t *testing.T) {
	store := openStore(t)
	replier := newBlockingReplier()
	c := mountCleopatra(t, store, replier, nil)

	done := make(chan error, 1)
	go func() {
		done <- c.SendMessage(context.Background(), "first")
	}()

	<-replier.entered
	assert.True(t, c.IsLoading())

	// Second submission while the first is in flight: ignored.
	require.NoError(t, c.SendMessage(context.Background(), "second"))
	assert.Equal(t, 1, replier.calls)
	require.Len(t, c.Messages(), 1) // just the optimistic "first"

	close(replier.release)
	require.NoError(t, <-done)

	got := c.Messages()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.False(t, c.IsLoading())

	// With the guard cleared, a new submission goes through.
	require.Eventually(t, func() bool { return !c.IsLoading() }, time.Second, 10*time.Millisecond)
}

func TestSubmitFromInputClearsInputRegardlessOfOutcome(t *testing.T) {
	store := openStore(t)
	c := mountCleopatra(t, store, &fakeReplier{err: errors.New("down")}, nil)

	c.SetInput("doomed message")
	err := c.SubmitFromInput(context.Background())
	require.Error(t, err)

	assert.Empty(t, c.Input())
	assert.Empty(t, c.Messages())
}

func TestUseSuggestion(t *testing.T) {
	store := openStore(t)
	replier := &fakeReplier{reply: "It flooded every year."}
	c := mountCleopatra(t, store, replier, nil)

	require.NoError(t, c.UseSuggestion(context.Background(), "Tell me about the Nile"))

	assert.Empty(t, c.Input())
	got := c.Messages()
	require.Len(t, got, 2)
	assert.Equal(t, "Tell me about the Nile", got[0].Content)
}

func TestToggleFavoriteIsIdempotentOverTwoCalls(t *testing.T) {
	store := openStore(t)
	c := mountCleopatra(t, store, &fakeReplier{reply: "answer"}, nil)
	require.NoError(t, c.SendMessage(context.Background(), "question"))

	id := c.Messages()[1].ID

	c.ToggleFavorite(id)
	require.Len(t, c.FavoriteMessages(), 1)

	c.ToggleFavorite(id)
	assert.Empty(t, c.FavoriteMessages())
}

func TestToggleFavoriteUnknownIDLeavesListUnchanged(t *testing.T) {
	store := openStore(t)
	c := mountCleopatra(t, store, &fakeReplier{reply: "answer"}, nil)
	require.NoError(t, c.SendMessage(context.Background(), "question"))

	before := c.Messages()
	c.ToggleFavorite("no-such-id")
	assert.Equal(t, before, c.Messages())
}

func TestClearConversationPersistsEmptyList(t *testing.T) {
	store := openStore(t)
	c := mountCleopatra(t, store, &fakeReplier{reply: "answer"}, nil)

	for _, q := range []string{"one", "two"} {
		require.NoError(t, c.SendMessage(context.Background(), q))
	}
	// A fifth message written by another container over the same key.
	other := session.Open(store, string(histdata.SubjectCharacter), "cleopatra", nil)
	other.Update(func(prev []session.Message) []session.Message {
		return append(prev, session.NewUserMessage("five"))
	})
	other.Close()

	c.ToggleFavorite(c.Messages()[0].ID)
	c.ToggleFavorite(c.Messages()[3].ID)
	require.Len(t, c.Messages(), 5)

	c.ClearConversation()
	assert.Empty(t, c.Messages())

	// The persisted store under the subject's key also reads back empty.
	fresh := session.Open(store, string(histdata.SubjectCharacter), "cleopatra", nil)
	defer fresh.Close()
	assert.Empty(t, fresh.Messages())
}

func TestSuggestionsAndParticipantsBySubjectVariant(t *testing.T) {
	store := openStore(t)

	c := mountCleopatra(t, store, nil, nil)
	assert.Contains(t, c.Suggestions(), "Tell me about the Nile")
	assert.Nil(t, c.Participants())

	e, err := Mount(Deps{Store: store, Language: "en"}, histdata.SubjectEvent, "solvay-conference-1927")
	require.NoError(t, err)
	defer e.Close()
	assert.Equal(t, []string{"Albert Einstein", "Marie Curie"}, e.Participants())
	assert.NotEmpty(t, e.Suggestions())
}
