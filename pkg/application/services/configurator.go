package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/polebom/pkg/domain/catalog"
	"github.com/vsinha/polebom/pkg/domain/entities"
	"github.com/vsinha/polebom/pkg/domain/repositories"
	domain "github.com/vsinha/polebom/pkg/domain/services"
	"github.com/vsinha/polebom/pkg/infrastructure/events"
	"github.com/vsinha/polebom/pkg/infrastructure/metrics"
	"github.com/vsinha/polebom/pkg/infrastructure/repositories/memory"
)

// Configurator turns attribute selections into configured components and
// aggregates them per session. Sessions never share component lists.
type Configurator struct {
	catalog    *catalog.Catalog
	resolver   *domain.BoltSizingResolver
	crossarms  *domain.CrossarmGenerator
	poles      *domain.PoleGenerator
	validator  *domain.SelectionValidator
	aggregator *domain.AggregationEngine

	sessions   repositories.SessionRepository
	eventStore events.EventStore
	logger     *zap.Logger
}

// Option customises a Configurator
type Option func(*Configurator)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Configurator) { c.logger = logger }
}

// WithSessionRepository replaces the in-memory session store
func WithSessionRepository(repo repositories.SessionRepository) Option {
	return func(c *Configurator) { c.sessions = repo }
}

// WithEventStore replaces the in-memory event store
func WithEventStore(store events.EventStore) Option {
	return func(c *Configurator) { c.eventStore = store }
}

// NewConfigurator creates a configurator over the given catalog
func NewConfigurator(c *catalog.Catalog, opts ...Option) *Configurator {
	cfg := &Configurator{
		catalog:    c,
		resolver:   domain.NewBoltSizingResolver(c),
		crossarms:  domain.NewCrossarmGenerator(c),
		poles:      domain.NewPoleGenerator(c),
		validator:  domain.NewSelectionValidator(c),
		aggregator: domain.NewAggregationEngine(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.sessions == nil {
		cfg.sessions = memory.NewSessionRepository()
	}
	if cfg.eventStore == nil {
		cfg.eventStore = events.NewInMemoryEventStore(cfg.logger)
	}
	return cfg
}

// Catalog returns the catalog the configurator was built with
func (c *Configurator) Catalog() *catalog.Catalog {
	return c.catalog
}

// Events returns the event store sessions publish to
func (c *Configurator) Events() events.EventStore {
	return c.eventStore
}

// NewSession opens an empty session
func (c *Configurator) NewSession() (entities.SessionID, error) {
	id := entities.NewSessionID()
	if _, err := c.sessions.Create(id); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	metrics.SessionsActive.Inc()
	c.publish(id, events.NewSessionCreatedEvent(id))
	c.logger.Debug("session created", zap.String("session_id", string(id)))
	return id, nil
}

// ComputeLiveBuildIdentifier renders the identifier for a possibly partial
// selection. Unset attributes show as a placeholder.
func (c *Configurator) ComputeLiveBuildIdentifier(kind entities.ComponentKind, selections entities.AttributeSelection) string {
	return domain.FormatBuildIdentifier(kind, c.catalog.Attributes(kind), selections)
}

// ComputeBoltSizingPreview resolves crossarm sizing. The second result is
// false until a dimension is chosen.
func (c *Configurator) ComputeBoltSizingPreview(selections entities.AttributeSelection, poleWidthMm int) (entities.BoltSizing, bool) {
	return c.resolver.Resolve(selections, poleWidthMm)
}

// PreviewLineItems generates the parts list a selection would produce right
// now, without validation or storage.
func (c *Configurator) PreviewLineItems(
	kind entities.ComponentKind,
	selections entities.AttributeSelection,
	poleWidthMm int,
) []entities.LineItem {
	items, _ := c.generate(kind, selections, poleWidthMm)
	return items
}

// FinalizeComponent validates a complete selection, freezes it into a
// component and appends it to the session.
func (c *Configurator) FinalizeComponent(
	sessionID entities.SessionID,
	kind entities.ComponentKind,
	selections entities.AttributeSelection,
	poleWidthMm int,
) (entities.ConfiguredComponent, error) {
	if !c.sessions.Exists(sessionID) {
		return entities.ConfiguredComponent{}, fmt.Errorf("%w: %s", entities.ErrSessionNotFound, sessionID)
	}

	if kind == entities.KindPole {
		poleWidthMm = 0
	}
	if err := c.validator.ValidateComplete(kind, selections, poleWidthMm); err != nil {
		metrics.RecordInvalidSelection(kind.String())
		c.publish(sessionID, events.NewSelectionRejectedEvent(sessionID, kind, err))
		c.logger.Info("selection rejected",
			zap.String("session_id", string(sessionID)),
			zap.Stringer("kind", kind),
			zap.Error(err))
		return entities.ConfiguredComponent{}, fmt.Errorf("failed to finalize %s: %w", kind, err)
	}

	items, sizing := c.generate(kind, selections, poleWidthMm)
	component := entities.NewConfiguredComponent(
		0,
		kind,
		selections,
		poleWidthMm,
		c.ComputeLiveBuildIdentifier(kind, selections),
		sizing,
		items,
	)

	stored, err := c.sessions.AppendComponent(sessionID, component)
	if err != nil {
		return entities.ConfiguredComponent{}, fmt.Errorf("failed to store component: %w", err)
	}

	metrics.RecordFinalized(kind.String(), len(stored.LineItems))
	c.publish(sessionID, events.NewComponentFinalizedEvent(sessionID, stored))
	c.logger.Debug("component finalized",
		zap.String("session_id", string(sessionID)),
		zap.Int("sequence", stored.Sequence),
		zap.String("build_identifier", stored.BuildIdentifier),
		zap.Int("line_items", len(stored.LineItems)))

	return stored, nil
}

// Aggregate merges every component of the session into one pick list
func (c *Configurator) Aggregate(sessionID entities.SessionID) (*entities.PickList, error) {
	components, err := c.sessions.Components(sessionID)
	if err != nil {
		return nil, err
	}

	pickList, err := c.aggregator.Aggregate(components)
	if err != nil {
		var conflictErr *entities.AggregationConflictError
		if errors.As(err, &conflictErr) {
			metrics.RecordAggregation(len(conflictErr.Conflicts))
			c.publish(sessionID, events.NewAggregationFailedEvent(sessionID, conflictErr.Conflicts))
			ids := make([]string, len(conflictErr.Conflicts))
			for i, conflict := range conflictErr.Conflicts {
				ids[i] = string(conflict.ID)
			}
			c.logger.Warn("aggregation conflict",
				zap.String("session_id", string(sessionID)),
				zap.Strings("ids", ids))
		}
		return nil, fmt.Errorf("failed to aggregate session %s: %w", sessionID, err)
	}

	metrics.RecordAggregation(0)
	c.publish(sessionID, events.NewPickListAggregatedEvent(sessionID, pickList))
	return pickList, nil
}

// Components returns the session's finalized components in order
func (c *Configurator) Components(sessionID entities.SessionID) ([]entities.ConfiguredComponent, error) {
	return c.sessions.Components(sessionID)
}

// Reset clears the session's components while keeping the session open
func (c *Configurator) Reset(sessionID entities.SessionID) error {
	components, err := c.sessions.Components(sessionID)
	if err != nil {
		return err
	}
	if err := c.sessions.Reset(sessionID); err != nil {
		return err
	}
	c.publish(sessionID, events.NewSessionResetEvent(sessionID, len(components)))
	return nil
}

// CloseSession forgets the session, its components and its event stream.
// Subscribers still receive the session.closed event.
func (c *Configurator) CloseSession(sessionID entities.SessionID) error {
	if err := c.sessions.Delete(sessionID); err != nil {
		return err
	}
	metrics.SessionsActive.Dec()
	c.publish(sessionID, events.NewSessionClosedEvent(sessionID))
	c.eventStore.DropStream(string(sessionID))
	return nil
}

func (c *Configurator) generate(
	kind entities.ComponentKind,
	selections entities.AttributeSelection,
	poleWidthMm int,
) ([]entities.LineItem, *entities.BoltSizing) {
	switch kind {
	case entities.KindCrossarm:
		sizing, ok := c.resolver.Resolve(selections, poleWidthMm)
		if !ok {
			return nil, nil
		}
		return c.crossarms.Generate(selections, poleWidthMm, &sizing), &sizing
	case entities.KindPole:
		return c.poles.Generate(selections), nil
	default:
		return nil, nil
	}
}

func (c *Configurator) publish(sessionID entities.SessionID, event events.Event) {
	if err := c.eventStore.AppendEvent(string(sessionID), event); err != nil {
		c.logger.Warn("failed to publish event",
			zap.String("event_type", event.Type()),
			zap.String("session_id", string(sessionID)),
			zap.Error(err))
	}
}
