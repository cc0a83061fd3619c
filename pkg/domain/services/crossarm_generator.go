package services

import (
	"github.com/vsinha/polebom/pkg/domain/catalog"
	"github.com/vsinha/polebom/pkg/domain/entities"
)

// CrossarmGenerator produces the parts list for one crossarm level
type CrossarmGenerator struct {
	catalog *catalog.Catalog
	rules   []crossarmRule
}

// NewCrossarmGenerator creates a generator using the standard rule table
func NewCrossarmGenerator(c *catalog.Catalog) *CrossarmGenerator {
	return &CrossarmGenerator{catalog: c, rules: crossarmRules}
}

// Generate emits the ordered line items for a crossarm. It returns nil when
// sizing is unavailable or no configuration has been chosen. Items whose
// quantity works out to zero are left out, and an identifier emitted by
// more than one rule appears once with the summed quantity at its first
// position.
func (g *CrossarmGenerator) Generate(
	selections entities.AttributeSelection,
	poleWidthMm int,
	sizing *entities.BoltSizing,
) []entities.LineItem {
	ctx, ok := g.context(selections, poleWidthMm, sizing)
	if !ok {
		return nil
	}

	var items []entities.LineItem
	index := make(map[entities.PartNumber]int)
	for _, rule := range g.rules {
		if !rule.applies(ctx) {
			continue
		}
		for _, it := range rule.emit(ctx) {
			if it.Qty <= 0 {
				continue
			}
			if i, ok := index[it.ID]; ok {
				items[i].Qty += it.Qty
				continue
			}
			index[it.ID] = len(items)
			items = append(items, it)
		}
	}
	return items
}

// FiredRules lists the names of the rules that contribute to a crossarm, in order
func (g *CrossarmGenerator) FiredRules(
	selections entities.AttributeSelection,
	poleWidthMm int,
	sizing *entities.BoltSizing,
) []string {
	ctx, ok := g.context(selections, poleWidthMm, sizing)
	if !ok {
		return nil
	}
	var names []string
	for _, rule := range g.rules {
		if rule.applies(ctx) {
			names = append(names, rule.name)
		}
	}
	return names
}

// RuleNames returns every rule in emission order
func (g *CrossarmGenerator) RuleNames() []string {
	names := make([]string, len(g.rules))
	for i, r := range g.rules {
		names[i] = r.name
	}
	return names
}

func (g *CrossarmGenerator) context(
	selections entities.AttributeSelection,
	poleWidthMm int,
	sizing *entities.BoltSizing,
) (*crossarmContext, bool) {
	if sizing == nil {
		return nil, false
	}
	config, ok := selections.Get(entities.AttrConfiguration)
	if !ok {
		return nil, false
	}

	voltage := selections.Code(entities.AttrVoltage)
	wiresCode, hasWires := selections.Get(entities.AttrWires)
	armCount := ArmCount(selections)

	return &crossarmContext{
		labels: func(attr entities.Attribute, code string) string {
			if label, ok := g.catalog.Label(entities.KindCrossarm, attr, code); ok {
				return label
			}
			return code
		},
		poleWidthMm: poleWidthMm,
		sizing:      *sizing,
		voltage:     voltage,
		config:      config,
		material:    selections.Code(entities.AttrMaterial),
		dimension:   selections.Code(entities.AttrDimension),
		length:      selections.Code(entities.AttrLength),
		armCount:    armCount,
		wires:       WireQuantity(wiresCode),
		hasWires:    hasWires,
		isHV:        g.catalog.IsHV(voltage),
		isLV:        g.catalog.IsLVClass(voltage),
		isLVTX:      voltage == voltageLVTX,
		isFlyArm:    config == configFlyTimber || config == configFlySteel,
		code:        ParseConfigCode(config, WireQuantity(wiresCode), armCount),
	}, true
}
