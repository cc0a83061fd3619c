package entities

import (
	"fmt"
	"regexp"
	"strconv"
)

// PartNumber represents a stable, size-encoding part identifier
type PartNumber string

// Quantity represents an integer quantity value for discrete units
type Quantity int64

// Category groups line items on the procurement list
type Category string

const (
	CategoryPoles        Category = "Poles"
	CategoryMainArm      Category = "Main Arm"
	CategoryInsulators   Category = "Insulators"
	CategoryM16Bolts     Category = "M16 Bolts"
	CategoryM12Bolts     Category = "M12 Bolts"
	CategoryHardware     Category = "Hardware"
	CategoryPoleHardware Category = "Pole Hardware"
)

// CategoryOrder is the canonical presentation order of categories
var CategoryOrder = []Category{
	CategoryPoles,
	CategoryMainArm,
	CategoryInsulators,
	CategoryM16Bolts,
	CategoryM12Bolts,
	CategoryHardware,
	CategoryPoleHardware,
}

// IsBoltCategory reports whether items in the category are sorted by bolt size
func (c Category) IsBoltCategory() bool {
	return c == CategoryM16Bolts || c == CategoryM12Bolts
}

// Rank returns the position of the category in CategoryOrder, or len(CategoryOrder) if unknown
func (c Category) Rank() int {
	for i, known := range CategoryOrder {
		if known == c {
			return i
		}
	}
	return len(CategoryOrder)
}

// LineItem is one row of a parts list
type LineItem struct {
	ID       PartNumber `json:"id"`
	Name     string     `json:"name"`
	Qty      Quantity   `json:"qty"`
	Category Category   `json:"category"`
}

// NewLineItem creates a validated LineItem
func NewLineItem(id PartNumber, name string, qty Quantity, category Category) (*LineItem, error) {
	if id == "" {
		return nil, fmt.Errorf("line item id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("line item name cannot be empty: %s", id)
	}
	if qty <= 0 {
		return nil, fmt.Errorf("line item quantity must be positive, got %d for %s", qty, id)
	}
	if category == "" {
		return nil, fmt.Errorf("line item category cannot be empty: %s", id)
	}
	return &LineItem{ID: id, Name: name, Qty: qty, Category: category}, nil
}

var boltSizePattern = regexp.MustCompile(`^BOLT-M\d+-(\d+)`)

// BoltSize extracts the length encoded in a BOLT-M<d>-<n> identifier.
// ok is false for identifiers that carry no numeric size.
func (id PartNumber) BoltSize() (size int, ok bool) {
	m := boltSizePattern.FindStringSubmatch(string(id))
	if m == nil {
		return 0, false
	}
	size, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return size, true
}
