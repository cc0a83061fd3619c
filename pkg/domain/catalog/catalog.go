// Package catalog holds the static reference tables the rule engine consumes:
// ordered attributes and their valid codes per component class, label tables,
// voltage classes, the pin-arm code set and the ascending bolt-size catalog.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/polebom/pkg/domain/entities"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

type attributeDoc struct {
	Name  string   `yaml:"name"`
	Codes []string `yaml:"codes"`
}

type crossarmDoc struct {
	Attributes  []attributeDoc               `yaml:"attributes"`
	Labels      map[string]map[string]string `yaml:"labels"`
	HVVoltages  []string                     `yaml:"hv_voltages"`
	LVVoltages  []string                     `yaml:"lv_voltages"`
	PinArmCodes []string                     `yaml:"pin_arm_codes"`
}

type poleDoc struct {
	Attributes        []attributeDoc               `yaml:"attributes"`
	Labels            map[string]map[string]string `yaml:"labels"`
	DonutManufacturer string                       `yaml:"donut_manufacturer"`
}

type catalogDoc struct {
	Version   int         `yaml:"version"`
	BoltSizes []int       `yaml:"bolt_sizes"`
	Crossarm  crossarmDoc `yaml:"crossarm"`
	Pole      poleDoc     `yaml:"pole"`
}

type classTable struct {
	order  []entities.Attribute
	codes  map[entities.Attribute][]string
	labels map[entities.Attribute]map[string]string
}

// Catalog is an immutable view over the reference tables
type Catalog struct {
	classes           map[entities.ComponentKind]*classTable
	boltSizes         BoltSizes
	hvVoltages        []string
	lvVoltages        []string
	pinArmCodes       []string
	donutManufacturer string
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
})

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog document
func Parse(b []byte) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidCatalog, err)
	}
	if doc.Version != 1 {
		return nil, fmt.Errorf("%w: unsupported version %d", entities.ErrInvalidCatalog, doc.Version)
	}

	sizes, err := NewBoltSizes(doc.BoltSizes)
	if err != nil {
		return nil, err
	}

	crossarm, err := buildClassTable(entities.KindCrossarm, doc.Crossarm.Attributes, doc.Crossarm.Labels)
	if err != nil {
		return nil, err
	}
	pole, err := buildClassTable(entities.KindPole, doc.Pole.Attributes, doc.Pole.Labels)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		classes: map[entities.ComponentKind]*classTable{
			entities.KindCrossarm: crossarm,
			entities.KindPole:     pole,
		},
		boltSizes:         sizes,
		hvVoltages:        doc.Crossarm.HVVoltages,
		lvVoltages:        doc.Crossarm.LVVoltages,
		pinArmCodes:       doc.Crossarm.PinArmCodes,
		donutManufacturer: doc.Pole.DonutManufacturer,
	}

	for _, v := range append(slices.Clone(c.hvVoltages), c.lvVoltages...) {
		if !c.IsValid(entities.KindCrossarm, entities.AttrVoltage, v) {
			return nil, fmt.Errorf("%w: voltage class code %q is not a Voltage code", entities.ErrInvalidCatalog, v)
		}
	}
	if c.donutManufacturer != "" && !c.IsValid(entities.KindPole, entities.AttrManufacturer, c.donutManufacturer) {
		return nil, fmt.Errorf("%w: donut manufacturer %q is not a Manufacturer code", entities.ErrInvalidCatalog, c.donutManufacturer)
	}

	return c, nil
}

func buildClassTable(
	kind entities.ComponentKind,
	attrs []attributeDoc,
	labels map[string]map[string]string,
) (*classTable, error) {
	if len(attrs) == 0 {
		return nil, fmt.Errorf("%w: %s has no attributes", entities.ErrInvalidCatalog, kind)
	}

	t := &classTable{
		order:  make([]entities.Attribute, 0, len(attrs)),
		codes:  make(map[entities.Attribute][]string, len(attrs)),
		labels: make(map[entities.Attribute]map[string]string, len(labels)),
	}
	for _, a := range attrs {
		attr := entities.Attribute(a.Name)
		if a.Name == "" {
			return nil, fmt.Errorf("%w: %s attribute without a name", entities.ErrInvalidCatalog, kind)
		}
		if _, dup := t.codes[attr]; dup {
			return nil, fmt.Errorf("%w: %s attribute %s listed twice", entities.ErrInvalidCatalog, kind, attr)
		}
		if len(a.Codes) == 0 {
			return nil, fmt.Errorf("%w: %s attribute %s has no codes", entities.ErrInvalidCatalog, kind, attr)
		}
		t.order = append(t.order, attr)
		t.codes[attr] = a.Codes
	}

	for name, table := range labels {
		attr := entities.Attribute(name)
		valid, ok := t.codes[attr]
		if !ok {
			return nil, fmt.Errorf("%w: %s labels for unknown attribute %s", entities.ErrInvalidCatalog, kind, attr)
		}
		for _, code := range valid {
			if _, ok := table[code]; !ok {
				return nil, fmt.Errorf("%w: %s %s label missing for code %q", entities.ErrInvalidCatalog, kind, attr, code)
			}
		}
		t.labels[attr] = table
	}

	return t, nil
}

// Attributes returns the ordered attribute names for a component class
func (c *Catalog) Attributes(kind entities.ComponentKind) []entities.Attribute {
	t, ok := c.classes[kind]
	if !ok {
		return nil
	}
	return slices.Clone(t.order)
}

// ValidCodes returns the valid codes of an attribute, in catalog order
func (c *Catalog) ValidCodes(kind entities.ComponentKind, attr entities.Attribute) []string {
	t, ok := c.classes[kind]
	if !ok {
		return nil
	}
	return slices.Clone(t.codes[attr])
}

// HasAttribute reports whether the class defines attr
func (c *Catalog) HasAttribute(kind entities.ComponentKind, attr entities.Attribute) bool {
	t, ok := c.classes[kind]
	if !ok {
		return false
	}
	_, ok = t.codes[attr]
	return ok
}

// IsValid reports whether code is a member of the attribute's valid-code set
func (c *Catalog) IsValid(kind entities.ComponentKind, attr entities.Attribute, code string) bool {
	t, ok := c.classes[kind]
	if !ok {
		return false
	}
	return slices.Contains(t.codes[attr], code)
}

// Label returns the display label for a code
func (c *Catalog) Label(kind entities.ComponentKind, attr entities.Attribute, code string) (string, bool) {
	t, ok := c.classes[kind]
	if !ok {
		return "", false
	}
	label, ok := t.labels[attr][code]
	return label, ok
}

// BoltSizes returns the ascending bolt-size catalog
func (c *Catalog) BoltSizes() BoltSizes {
	return c.boltSizes
}

// IsHV reports whether a voltage code is high-voltage class
func (c *Catalog) IsHV(voltage string) bool {
	return slices.Contains(c.hvVoltages, voltage)
}

// IsLVClass reports whether a voltage code is low-voltage class
func (c *Catalog) IsLVClass(voltage string) bool {
	return slices.Contains(c.lvVoltages, voltage)
}

// IsExplicitPinArm reports whether a configuration code is always a pin arm
func (c *Catalog) IsExplicitPinArm(config string) bool {
	return slices.Contains(c.pinArmCodes, config)
}

// DonutManufacturer returns the manufacturer code whose poles take a donut
func (c *Catalog) DonutManufacturer() string {
	return c.donutManufacturer
}
