// Package wizard walks one component through its attribute steps in catalog
// order, keeping an immutable snapshot of the selection after every answer.
package wizard

import (
	"fmt"

	"github.com/vsinha/polebom/pkg/domain/catalog"
	"github.com/vsinha/polebom/pkg/domain/entities"
	"github.com/vsinha/polebom/pkg/domain/services"
)

// DefaultPoleWidthMm is the pole width a new crossarm level starts with
const DefaultPoleWidthMm = 150

// Wizard holds the step state for one component
type Wizard struct {
	catalog   *catalog.Catalog
	validator *services.SelectionValidator
	kind      entities.ComponentKind
	steps     []entities.Attribute

	// history[i] is the selection after i answers
	history     []entities.AttributeSelection
	poleWidthMm int
}

// New starts a wizard for the given kind
func New(c *catalog.Catalog, kind entities.ComponentKind) *Wizard {
	w := &Wizard{
		catalog:   c,
		validator: services.NewSelectionValidator(c),
		kind:      kind,
		steps:     c.Attributes(kind),
	}
	w.Reset()
	return w
}

// Kind returns the component kind being configured
func (w *Wizard) Kind() entities.ComponentKind {
	return w.kind
}

// Steps returns the attribute order
func (w *Wizard) Steps() []entities.Attribute {
	out := make([]entities.Attribute, len(w.steps))
	copy(out, w.steps)
	return out
}

// StepIndex returns the zero-based index of the active step. It equals the
// number of steps once every attribute is answered.
func (w *Wizard) StepIndex() int {
	return len(w.history) - 1
}

// Current returns the attribute awaiting an answer
func (w *Wizard) Current() (entities.Attribute, bool) {
	i := w.StepIndex()
	if i >= len(w.steps) {
		return "", false
	}
	return w.steps[i], true
}

// Options lists the valid codes for the active step
func (w *Wizard) Options() []string {
	attr, ok := w.Current()
	if !ok {
		return nil
	}
	return w.catalog.ValidCodes(w.kind, attr)
}

// Label returns the display label for a code of the active step, or the code itself
func (w *Wizard) Label(code string) string {
	attr, ok := w.Current()
	if !ok {
		return code
	}
	if label, ok := w.catalog.Label(w.kind, attr, code); ok {
		return label
	}
	return code
}

// Select answers the active step and advances
func (w *Wizard) Select(code string) error {
	attr, ok := w.Current()
	if !ok {
		return fmt.Errorf("%s wizard is already complete", w.kind)
	}
	if err := w.validator.ValidateCode(w.kind, attr, code); err != nil {
		return err
	}
	w.history = append(w.history, w.latest().With(attr, code))
	return nil
}

// Back returns to the previous step, dropping its answer. It reports false
// on the first step.
func (w *Wizard) Back() bool {
	if len(w.history) <= 1 {
		return false
	}
	w.history = w.history[:len(w.history)-1]
	return true
}

// SetPoleWidth sets the pole width used for crossarm sizing
func (w *Wizard) SetPoleWidth(mm int) error {
	if w.kind != entities.KindCrossarm {
		return fmt.Errorf("pole width only applies to crossarms")
	}
	if mm <= 0 {
		return &entities.SelectionError{
			Kind: w.kind, Attribute: "PoleWidth", Code: fmt.Sprint(mm),
			Reason: "pole width must be a positive number of millimetres",
		}
	}
	w.poleWidthMm = mm
	return nil
}

// PoleWidth returns the pole width in millimetres, zero for poles
func (w *Wizard) PoleWidth() int {
	return w.poleWidthMm
}

// Ready reports whether every attribute has been answered
func (w *Wizard) Ready() bool {
	return w.StepIndex() >= len(w.steps)
}

// Snapshot returns a copy of the current selection
func (w *Wizard) Snapshot() entities.AttributeSelection {
	return w.latest().Clone()
}

// BuildIdentifier renders the live identifier for the current selection
func (w *Wizard) BuildIdentifier() string {
	return services.FormatBuildIdentifier(w.kind, w.steps, w.latest())
}

// Reset clears every answer and restores the default pole width
func (w *Wizard) Reset() {
	w.history = []entities.AttributeSelection{entities.NewAttributeSelection(nil)}
	w.poleWidthMm = 0
	if w.kind == entities.KindCrossarm {
		w.poleWidthMm = DefaultPoleWidthMm
	}
}

func (w *Wizard) latest() entities.AttributeSelection {
	return w.history[len(w.history)-1]
}
