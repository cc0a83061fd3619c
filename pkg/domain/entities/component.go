package entities

// ConfiguredComponent is the frozen result of completing every attribute step
// for one pole or crossarm level. It is never edited after creation.
type ConfiguredComponent struct {
	Sequence        int                `json:"sequence"`
	Kind            ComponentKind      `json:"-"`
	KindName        string             `json:"kind"`
	Selections      AttributeSelection `json:"selections"`
	PoleWidthMm     int                `json:"pole_width_mm,omitempty"`
	BuildIdentifier string             `json:"build_identifier"`
	Sizing          *BoltSizing        `json:"sizing,omitempty"`
	LineItems       []LineItem         `json:"line_items"`
}

// NewConfiguredComponent copies selections and items so the component owns its data
func NewConfiguredComponent(
	sequence int,
	kind ComponentKind,
	selections AttributeSelection,
	poleWidthMm int,
	buildIdentifier string,
	sizing *BoltSizing,
	items []LineItem,
) ConfiguredComponent {
	var sizingCopy *BoltSizing
	if sizing != nil {
		s := *sizing
		sizingCopy = &s
	}
	itemsCopy := make([]LineItem, len(items))
	copy(itemsCopy, items)

	return ConfiguredComponent{
		Sequence:        sequence,
		Kind:            kind,
		KindName:        kind.String(),
		Selections:      selections.Clone(),
		PoleWidthMm:     poleWidthMm,
		BuildIdentifier: buildIdentifier,
		Sizing:          sizingCopy,
		LineItems:       itemsCopy,
	}
}

// TotalQuantity sums quantities over the component's line items
func (c ConfiguredComponent) TotalQuantity() Quantity {
	var total Quantity
	for _, item := range c.LineItems {
		total += item.Qty
	}
	return total
}

// Clone returns a deep copy of the component
func (c ConfiguredComponent) Clone() ConfiguredComponent {
	return NewConfiguredComponent(c.Sequence, c.Kind, c.Selections, c.PoleWidthMm, c.BuildIdentifier, c.Sizing, c.LineItems)
}
