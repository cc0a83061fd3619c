package repositories

import "github.com/vsinha/polebom/pkg/domain/entities"

// SessionRepository stores configuration sessions. Each session's component
// list is isolated from every other session.
type SessionRepository interface {
	Create(id entities.SessionID) (*entities.Session, error)
	Exists(id entities.SessionID) bool
	// AppendComponent assigns the next sequence number, stores the component
	// and returns it as stored.
	AppendComponent(id entities.SessionID, component entities.ConfiguredComponent) (entities.ConfiguredComponent, error)
	Components(id entities.SessionID) ([]entities.ConfiguredComponent, error)
	Reset(id entities.SessionID) error
	Delete(id entities.SessionID) error
	IDs() []entities.SessionID
}
