package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vsinha/polebom/pkg/domain/catalog"
	"github.com/vsinha/polebom/pkg/domain/entities"
)

// SelectionValidator checks selections against the catalog before finalization
type SelectionValidator struct {
	catalog *catalog.Catalog
}

// NewSelectionValidator creates a validator over the given catalog
func NewSelectionValidator(c *catalog.Catalog) *SelectionValidator {
	return &SelectionValidator{catalog: c}
}

// ValidateCode checks a single attribute code for the class
func (v *SelectionValidator) ValidateCode(kind entities.ComponentKind, attr entities.Attribute, code string) error {
	if !v.catalog.HasAttribute(kind, attr) {
		return &entities.SelectionError{Kind: kind, Attribute: attr, Code: code, Reason: "unknown attribute"}
	}
	if code == "" {
		return &entities.SelectionError{Kind: kind, Attribute: attr, Reason: "required attribute is missing"}
	}
	if !v.catalog.IsValid(kind, attr, code) {
		return &entities.SelectionError{Kind: kind, Attribute: attr, Code: code, Reason: "code is not in the catalog"}
	}
	return nil
}

// ValidateComplete requires every attribute of the class to carry a valid code,
// rejects attributes the class does not define, and for crossarms requires a
// positive pole width. Double arms need a pole wider than the spacer pipe
// allowance. All problems are reported together.
func (v *SelectionValidator) ValidateComplete(
	kind entities.ComponentKind,
	selections entities.AttributeSelection,
	poleWidthMm int,
) error {
	var errs []error

	for _, attr := range v.catalog.Attributes(kind) {
		if err := v.ValidateCode(kind, attr, selections.Code(attr)); err != nil {
			errs = append(errs, err)
		}
	}
	for _, attr := range selections.Attributes() {
		if !v.catalog.HasAttribute(kind, attr) {
			errs = append(errs, &entities.SelectionError{
				Kind: kind, Attribute: attr, Code: selections.Code(attr), Reason: "unknown attribute",
			})
		}
	}
	if kind == entities.KindCrossarm {
		switch {
		case poleWidthMm <= 0:
			errs = append(errs, &entities.SelectionError{
				Kind: kind, Attribute: "PoleWidth", Reason: "pole width must be a positive number of millimetres",
			})
		case ArmCount(selections) == 2 && poleWidthMm <= spacerPipeAllowanceMm:
			errs = append(errs, &entities.SelectionError{
				Kind: kind, Attribute: "PoleWidth", Code: strconv.Itoa(poleWidthMm),
				Reason: fmt.Sprintf("double arms need a pole wider than %dmm for the spacer pipe", spacerPipeAllowanceMm),
			})
		}
	}

	return errors.Join(errs...)
}
