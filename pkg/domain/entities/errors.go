package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSelection is returned when a selection cannot be finalized
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrAggregationConflict is returned when two producers disagree on an identifier
	ErrAggregationConflict = errors.New("aggregation conflict")
	// ErrSessionNotFound is returned for unknown session identifiers
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidCatalog is returned when catalog data fails validation
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// SelectionError describes why one attribute of a selection was rejected
type SelectionError struct {
	Kind      ComponentKind
	Attribute Attribute
	Code      string
	Reason    string
}

func (e *SelectionError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s %s: %s", e.Kind, e.Attribute, e.Reason)
	}
	return fmt.Sprintf("%s %s=%q: %s", e.Kind, e.Attribute, e.Code, e.Reason)
}

func (e *SelectionError) Unwrap() error {
	return ErrInvalidSelection
}

// Conflict records an identifier emitted with differing name or category
type Conflict struct {
	ID               PartNumber
	FirstName        string
	FirstCategory    Category
	ConflictName     string
	ConflictCategory Category
	ComponentSeq     int
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %q/%s vs %q/%s (component %d)",
		c.ID, c.FirstName, c.FirstCategory, c.ConflictName, c.ConflictCategory, c.ComponentSeq)
}

// AggregationConflictError lists every identifier that could not be merged
type AggregationConflictError struct {
	Conflicts []Conflict
}

func (e *AggregationConflictError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%d conflicting identifiers: %s", len(e.Conflicts), strings.Join(parts, "; "))
}

func (e *AggregationConflictError) Unwrap() error {
	return ErrAggregationConflict
}
