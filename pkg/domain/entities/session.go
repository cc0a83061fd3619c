package entities

import (
	"time"

	"github.com/google/uuid"
)

// SessionID identifies one configuration session
type SessionID string

// NewSessionID returns a fresh random session identifier
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Session is an append-only sequence of configured components
type Session struct {
	ID         SessionID
	CreatedAt  time.Time
	Components []ConfiguredComponent
}

// NewSession creates an empty session
func NewSession(id SessionID, createdAt time.Time) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  createdAt,
		Components: make([]ConfiguredComponent, 0),
	}
}

// NextSequence returns the sequence number the next component will carry
func (s *Session) NextSequence() int {
	return len(s.Components) + 1
}

// Append adds a component to the end of the session
func (s *Session) Append(c ConfiguredComponent) {
	s.Components = append(s.Components, c)
}

// Reset discards every component
func (s *Session) Reset() {
	s.Components = make([]ConfiguredComponent, 0)
}

// Snapshot returns a deep copy of the component list
func (s *Session) Snapshot() []ConfiguredComponent {
	out := make([]ConfiguredComponent, len(s.Components))
	for i, c := range s.Components {
		out[i] = c.Clone()
	}
	return out
}
