package histdata

import (
	"errors"
	"testing"
)

func TestCharacterByID(t *testing.T) {
	c, err := CharacterByID("cleopatra")
	if err != nil {
		t.Fatalf("CharacterByID(cleopatra) error: %v", err)
	}
	if c.Name != "Cleopatra VII" {
		t.Errorf("unexpected name %q", c.Name)
	}
	if len(c.Suggestions) == 0 {
		t.Error("expected conversation suggestions")
	}

	if _, err := CharacterByID("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEventByID(t *testing.T) {
	e, err := EventByID("solvay-conference-1927")
	if err != nil {
		t.Fatalf("EventByID error: %v", err)
	}
	if len(e.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(e.Participants))
	}
	names := e.ParticipantNames()
	if names[0] != "Albert Einstein" || names[1] != "Marie Curie" {
		t.Errorf("unexpected participant names %v", names)
	}
}

func TestResolveSubject(t *testing.T) {
	tests := []struct {
		kind     SubjectType
		id       string
		wantName string
		wantErr  bool
	}{
		{SubjectCharacter, "socrates", "Socrates", false},
		{SubjectEvent, "trial-of-socrates", "The Trial of Socrates", false},
		{SubjectCharacter, "missing", "", true},
		{SubjectEvent, "missing", "", true},
		{SubjectType("religion"), "islam", "", true},
	}

	for _, tt := range tests {
		s, err := ResolveSubject(tt.kind, tt.id)
		if tt.wantErr {
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("ResolveSubject(%s, %s): expected ErrNotFound, got %v", tt.kind, tt.id, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveSubject(%s, %s) error: %v", tt.kind, tt.id, err)
			continue
		}
		if s.DisplayName() != tt.wantName {
			t.Errorf("ResolveSubject(%s, %s) = %q, want %q", tt.kind, tt.id, s.DisplayName(), tt.wantName)
		}
		if s.SubjectType() != tt.kind {
			t.Errorf("subject type = %s, want %s", s.SubjectType(), tt.kind)
		}
	}
}

func TestReligionLinks(t *testing.T) {
	c, err := CharacterByID("joan-of-arc")
	if err != nil {
		t.Fatal(err)
	}
	r, err := ReligionByID(c.ReligionID)
	if err != nil {
		t.Fatalf("character references unknown religion %q", c.ReligionID)
	}
	if r.Name != "Christianity" {
		t.Errorf("unexpected religion %q", r.Name)
	}
}

func TestEventParticipantsExist(t *testing.T) {
	for _, e := range Events() {
		for _, p := range e.Participants {
			if _, err := CharacterByID(p.ID); err != nil {
				t.Errorf("event %s references unknown character %s", e.ID, p.ID)
			}
		}
	}
}

func TestConnectionsFor(t *testing.T) {
	conns := ConnectionsFor("albert-einstein")
	if len(conns) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(conns))
	}
	if conns[0].ToID != "marie-curie" {
		t.Errorf("unexpected connection target %s", conns[0].ToID)
	}

	if got := ConnectionsFor("nobody"); len(got) != 0 {
		t.Errorf("expected no connections, got %d", len(got))
	}
}
