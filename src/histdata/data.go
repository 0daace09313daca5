package histdata

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

//go:embed data/*.json
var dataFS embed.FS

// ErrNotFound is returned for an unknown id in any of the tables.
var ErrNotFound = errors.New("not found")

var (
	characters  []*Character
	events      []*Event
	religions   []*Religion
	connections []*Connection

	charactersByID map[string]*Character
	eventsByID     map[string]*Event
	religionsByID  map[string]*Religion
)

func init() {
	mustLoad("data/characters.json", &characters)
	mustLoad("data/events.json", &events)
	mustLoad("data/religions.json", &religions)
	mustLoad("data/connections.json", &connections)

	charactersByID = make(map[string]*Character, len(characters))
	for _, c := range characters {
		charactersByID[c.ID] = c
	}
	eventsByID = make(map[string]*Event, len(events))
	for _, e := range events {
		eventsByID[e.ID] = e
	}
	religionsByID = make(map[string]*Religion, len(religions))
	for _, r := range religions {
		religionsByID[r.ID] = r
	}
}

func mustLoad(path string, v interface{}) {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("histdata: missing embedded table %s: %v", path, err))
	}
	if err := json.Unmarshal(data, v); err != nil {
		panic(fmt.Sprintf("histdata: malformed embedded table %s: %v", path, err))
	}
}

// CharacterByID resolves a character or returns ErrNotFound.
func CharacterByID(id string) (*Character, error) {
	c, ok := charactersByID[id]
	if !ok {
		return nil, fmt.Errorf("character %q: %w", id, ErrNotFound)
	}
	return c, nil
}

// EventByID resolves an event or returns ErrNotFound.
func EventByID(id string) (*Event, error) {
	e, ok := eventsByID[id]
	if !ok {
		return nil, fmt.Errorf("event %q: %w", id, ErrNotFound)
	}
	return e, nil
}

// ReligionByID resolves a religion or returns ErrNotFound.
func ReligionByID(id string) (*Religion, error) {
	r, ok := religionsByID[id]
	if !ok {
		return nil, fmt.Errorf("religion %q: %w", id, ErrNotFound)
	}
	return r, nil
}

// ResolveSubject maps a route-style (kind, id) pair to a conversation
// subject. An unknown kind or id is ErrNotFound.
func ResolveSubject(kind SubjectType, id string) (Subject, error) {
	switch kind {
	case SubjectCharacter:
		return CharacterByID(id)
	case SubjectEvent:
		return EventByID(id)
	default:
		return nil, fmt.Errorf("subject kind %q: %w", kind, ErrNotFound)
	}
}

// Characters returns all characters sorted by name.
func Characters() []*Character {
	out := make([]*Character, len(characters))
	copy(out, characters)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Events returns all events sorted by name.
func Events() []*Event {
	out := make([]*Event, len(events))
	copy(out, events)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ConnectionsFor returns the connections that touch the given character.
func ConnectionsFor(characterID string) []*Connection {
	var out []*Connection
	for _, c := range connections {
		if c.FromID == characterID || c.ToID == characterID {
			out = append(out, c)
		}
	}
	return out
}
