package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vsinha/polebom/pkg/domain/entities"
	"github.com/vsinha/polebom/pkg/domain/repositories"
)

// SessionRepository provides in-memory session storage
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[entities.SessionID]*entities.Session
	now      func() time.Time
}

// NewSessionRepository creates a new in-memory session repository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[entities.SessionID]*entities.Session),
		now:      time.Now,
	}
}

// Verify interface compliance
var _ repositories.SessionRepository = (*SessionRepository)(nil)

// Create registers a new empty session
func (r *SessionRepository) Create(id entities.SessionID) (*entities.Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; exists {
		return nil, fmt.Errorf("session already exists: %s", id)
	}
	s := entities.NewSession(id, r.now())
	r.sessions[id] = s

	return &entities.Session{ID: s.ID, CreatedAt: s.CreatedAt, Components: s.Snapshot()}, nil
}

// Exists reports whether the session is known
func (r *SessionRepository) Exists(id entities.SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[id]
	return ok
}

// AppendComponent stores a component at the end of the session
func (r *SessionRepository) AppendComponent(
	id entities.SessionID,
	component entities.ConfiguredComponent,
) (entities.ConfiguredComponent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return entities.ConfiguredComponent{}, fmt.Errorf("%w: %s", entities.ErrSessionNotFound, id)
	}

	stored := entities.NewConfiguredComponent(
		s.NextSequence(),
		component.Kind,
		component.Selections,
		component.PoleWidthMm,
		component.BuildIdentifier,
		component.Sizing,
		component.LineItems,
	)
	s.Append(stored)
	return stored, nil
}

// Components returns a copy of the session's component list
func (r *SessionRepository) Components(id entities.SessionID) ([]entities.ConfiguredComponent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrSessionNotFound, id)
	}
	return s.Snapshot(), nil
}

// Reset discards every component in the session
func (r *SessionRepository) Reset(id entities.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", entities.ErrSessionNotFound, id)
	}
	s.Reset()
	return nil
}

// Delete forgets the session
func (r *SessionRepository) Delete(id entities.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", entities.ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

// IDs returns every session identifier in lexical order
func (r *SessionRepository) IDs() []entities.SessionID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]entities.SessionID, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
