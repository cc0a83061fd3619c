package events

import (
	"github.com/vsinha/polebom/pkg/domain/entities"
)

const (
	SessionCreatedEvent = "session.created"
	SessionResetEvent   = "session.reset"
	SessionClosedEvent  = "session.closed"

	ComponentFinalizedEvent = "component.finalized"
	SelectionRejectedEvent  = "selection.rejected"

	PickListAggregatedEvent = "picklist.aggregated"
	AggregationFailedEvent  = "aggregation.failed"
)

type SessionCreated struct {
	SessionID entities.SessionID `json:"session_id"`
}

type SessionReset struct {
	SessionID           entities.SessionID `json:"session_id"`
	DiscardedComponents int                `json:"discarded_components"`
}

type SessionClosed struct {
	SessionID entities.SessionID `json:"session_id"`
}

type ComponentFinalized struct {
	SessionID       entities.SessionID `json:"session_id"`
	Sequence        int                `json:"sequence"`
	Kind            string             `json:"kind"`
	BuildIdentifier string             `json:"build_identifier"`
	LineItemCount   int                `json:"line_item_count"`
}

type SelectionRejected struct {
	SessionID entities.SessionID `json:"session_id"`
	Kind      string             `json:"kind"`
	Reason    string             `json:"reason"`
}

type PickListAggregated struct {
	SessionID      entities.SessionID `json:"session_id"`
	ComponentCount int                `json:"component_count"`
	LineItemCount  int                `json:"line_item_count"`
}

type AggregationFailed struct {
	SessionID entities.SessionID  `json:"session_id"`
	Conflicts []entities.Conflict `json:"conflicts"`
}

func NewSessionCreatedEvent(id entities.SessionID) Event {
	return NewEvent(SessionCreatedEvent, string(id), SessionCreated{SessionID: id})
}

func NewSessionResetEvent(id entities.SessionID, discarded int) Event {
	return NewEvent(SessionResetEvent, string(id), SessionReset{SessionID: id, DiscardedComponents: discarded})
}

func NewSessionClosedEvent(id entities.SessionID) Event {
	return NewEvent(SessionClosedEvent, string(id), SessionClosed{SessionID: id})
}

func NewComponentFinalizedEvent(id entities.SessionID, component entities.ConfiguredComponent) Event {
	return NewEvent(ComponentFinalizedEvent, string(id), ComponentFinalized{
		SessionID:       id,
		Sequence:        component.Sequence,
		Kind:            component.KindName,
		BuildIdentifier: component.BuildIdentifier,
		LineItemCount:   len(component.LineItems),
	})
}

func NewSelectionRejectedEvent(id entities.SessionID, kind entities.ComponentKind, err error) Event {
	return NewEvent(SelectionRejectedEvent, string(id), SelectionRejected{
		SessionID: id,
		Kind:      kind.String(),
		Reason:    err.Error(),
	})
}

func NewPickListAggregatedEvent(id entities.SessionID, pickList *entities.PickList) Event {
	return NewEvent(PickListAggregatedEvent, string(id), PickListAggregated{
		SessionID:      id,
		ComponentCount: pickList.ComponentCount,
		LineItemCount:  len(pickList.Items()),
	})
}

func NewAggregationFailedEvent(id entities.SessionID, conflicts []entities.Conflict) Event {
	return NewEvent(AggregationFailedEvent, string(id), AggregationFailed{SessionID: id, Conflicts: conflicts})
}
