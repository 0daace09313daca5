package notify

import (
	"testing"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	s := NewService()

	var got []Notification
	cancel := s.Subscribe(func(n Notification) { got = append(got, n) })
	defer cancel()

	sent := s.Error("Send failed", "could not reach the generation service")

	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].ID == "" || got[0].CreatedAt.IsZero() {
		t.Error("expected id and timestamp to be assigned")
	}
	if got[0].ID != sent.ID {
		t.Errorf("delivered id %s != returned id %s", got[0].ID, sent.ID)
	}
	if got[0].Level != LevelError {
		t.Errorf("expected error level, got %s", got[0].Level)
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	s := NewService()

	calls := 0
	cancel := s.Subscribe(func(Notification) { calls++ })

	s.Info("a", "b")
	cancel()
	s.Info("c", "d")

	if calls != 1 {
		t.Errorf("expected 1 delivery, got %d", calls)
	}
}

func TestPublishWithoutSubscribersIsSafe(t *testing.T) {
	s := NewService()
	n := s.Info("quiet", "nobody listening")
	if n.ID == "" {
		t.Error("expected an id even with no subscribers")
	}
}
