package services

import (
	"fmt"

	"github.com/vsinha/polebom/pkg/domain/catalog"
	"github.com/vsinha/polebom/pkg/domain/entities"
)

const (
	poleSingle = "Single"
	poleDouble = "Double"
	poleH      = "H"
)

// PoleGenerator produces the parts list for a pole structure
type PoleGenerator struct {
	catalog *catalog.Catalog
}

// NewPoleGenerator creates a pole generator
func NewPoleGenerator(c *catalog.Catalog) *PoleGenerator {
	return &PoleGenerator{catalog: c}
}

// Generate emits the pole, its breast blocks and, for the donut manufacturer,
// the donut accessory. It returns nil until Length, Number, Manufacturer and
// Material are all set.
func (g *PoleGenerator) Generate(selections entities.AttributeSelection) []entities.LineItem {
	length, okL := selections.Get(entities.AttrLength)
	number, okN := selections.Get(entities.AttrNumber)
	manufacturer, okM := selections.Get(entities.AttrManufacturer)
	material, okMat := selections.Get(entities.AttrMaterial)
	if !okL || !okN || !okM || !okMat {
		return nil
	}

	poleQty := 2
	if number == poleSingle {
		poleQty = 1
	}

	items := []entities.LineItem{item(
		fmt.Sprintf("POLE-%s-%s-%s", material, length, manufacturer),
		fmt.Sprintf("%s %s Pole - %sm",
			g.label(entities.AttrManufacturer, manufacturer),
			g.label(entities.AttrMaterial, material),
			metres(length)),
		poleQty,
		entities.CategoryPoles,
	)}

	switch number {
	case poleSingle:
		items = append(items, breastBlock("PLASTIC", "Plastic", 2))
	case poleDouble:
		items = append(items, breastBlock("CONCRETE", "Concrete", 2))
	case poleH:
		items = append(items, breastBlock("PLASTIC", "Plastic", 4))
	}

	// H-structures take no donut
	if manufacturer == g.catalog.DonutManufacturer() {
		switch number {
		case poleSingle:
			items = append(items, item("DONUT-SINGLE", "Pole Donut (Single)", 1, entities.CategoryPoleHardware))
		case poleDouble:
			items = append(items, item("DONUT-DOUBLE", "Pole Donut (Double)", 1, entities.CategoryPoleHardware))
		}
	}

	return items
}

func breastBlock(variant, label string, qty int) entities.LineItem {
	return item("BLOCK-BREAST-"+variant, label+" Breast Block", qty, entities.CategoryPoleHardware)
}

func (g *PoleGenerator) label(attr entities.Attribute, code string) string {
	if label, ok := g.catalog.Label(entities.KindPole, attr, code); ok {
		return label
	}
	return code
}
