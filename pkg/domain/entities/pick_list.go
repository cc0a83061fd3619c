package entities

// CategoryGroup is one category section of an aggregated pick list
type CategoryGroup struct {
	Category Category   `json:"category"`
	Items    []LineItem `json:"items"`
}

// PickList is the merged, grouped and ordered procurement list for a session
type PickList struct {
	Groups         []CategoryGroup `json:"groups"`
	ComponentCount int             `json:"component_count"`
}

// Items flattens the groups in presentation order
func (p *PickList) Items() []LineItem {
	var items []LineItem
	for _, g := range p.Groups {
		items = append(items, g.Items...)
	}
	return items
}

// Find returns the merged item for an identifier
func (p *PickList) Find(id PartNumber) (LineItem, bool) {
	for _, g := range p.Groups {
		for _, item := range g.Items {
			if item.ID == id {
				return item, true
			}
		}
	}
	return LineItem{}, false
}

// TotalQuantity sums quantities over every item
func (p *PickList) TotalQuantity() Quantity {
	var total Quantity
	for _, item := range p.Items() {
		total += item.Qty
	}
	return total
}
