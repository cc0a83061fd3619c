package services

import (
	"strings"

	"github.com/vsinha/polebom/pkg/domain/entities"
)

// Placeholder stands in for attributes that have not been selected yet
const Placeholder = "—"

// FormatBuildIdentifier joins the class prefix and the selected codes in
// attribute order. Unset attributes render as Placeholder.
func FormatBuildIdentifier(
	kind entities.ComponentKind,
	order []entities.Attribute,
	selections entities.AttributeSelection,
) string {
	parts := make([]string, 0, len(order)+1)
	parts = append(parts, kind.Prefix())
	for _, attr := range order {
		code, ok := selections.Get(attr)
		if !ok {
			code = Placeholder
		}
		parts = append(parts, code)
	}
	return strings.Join(parts, "-")
}
