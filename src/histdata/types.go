// Package histdata provides the read-only reference tables the app is built
// around: historical characters, events, religions, and the connections
// between characters. The tables are compiled into the binary and resolved
// by id; an unknown id is a hard not-found, never retried.
package histdata

// SubjectType discriminates the two conversation subject variants.
type SubjectType string

const (
	SubjectCharacter SubjectType = "character"
	SubjectEvent     SubjectType = "event"
)

// Subject is the sealed sum over *Character and *Event. The two dispatch
// points (reply generation and the participants view) switch exhaustively on
// the concrete type.
type Subject interface {
	SubjectType() SubjectType
	SubjectID() string
	DisplayName() string

	isSubject()
}

// CharacterRef is a lightweight pointer to a character, used by events for
// their participant lists.
type CharacterRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Character is a historical figure the user can converse with.
type Character struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Era         string   `json:"era"`
	Years       string   `json:"years"`
	Bio         string   `json:"bio"`
	ReligionID  string   `json:"religion_id,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (c *Character) SubjectType() SubjectType { return SubjectCharacter }
func (c *Character) SubjectID() string        { return c.ID }
func (c *Character) DisplayName() string      { return c.Name }
func (c *Character) isSubject()               {}

// Event is a historical event rendered as a round-table of its participants.
type Event struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Year         string         `json:"year"`
	Description  string         `json:"description"`
	Context      string         `json:"context"`
	Participants []CharacterRef `json:"participants"`
	Suggestions  []string       `json:"suggestions,omitempty"`
}

func (e *Event) SubjectType() SubjectType { return SubjectEvent }
func (e *Event) SubjectID() string        { return e.ID }
func (e *Event) DisplayName() string      { return e.Name }
func (e *Event) isSubject()               {}

// ParticipantNames returns the display names of the event's participants.
func (e *Event) ParticipantNames() []string {
	names := make([]string, len(e.Participants))
	for i, p := range e.Participants {
		names[i] = p.Name
	}
	return names
}

// Religion is a belief system referenced by characters.
type Religion struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Connection links two characters that influenced each other.
type Connection struct {
	ID           string `json:"id"`
	FromID       string `json:"from_id"`
	ToID         string `json:"to_id"`
	Relationship string `json:"relationship"`
}
