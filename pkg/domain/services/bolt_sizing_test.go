package services

import (
	"testing"

	"github.com/vsinha/polebom/pkg/domain/catalog"
	"github.com/vsinha/polebom/pkg/domain/entities"
)

func TestBoltSizingResolver_Resolve(t *testing.T) {
	resolver := NewBoltSizingResolver(catalog.Default())

	tests := []struct {
		name       string
		selections map[entities.Attribute]string
		poleWidth  int
		expected   entities.BoltSizing
	}{
		{
			name: "timber_hv_single",
			selections: map[entities.Attribute]string{
				entities.AttrVoltage: "11", entities.AttrConfiguration: "TPS3T", entities.AttrDimension: "A",
				entities.AttrNumber: "1", entities.AttrMaterial: "T",
			},
			poleWidth: 150,
			expected: entities.BoltSizing{
				KingBoltSize: 325, SpacerBoltSize: 300, LongBraceBoltSize: 200, TBracketBoltSize: 200,
				ArmWidth: 100,
			},
		},
		{
			name: "lvtx_pin_arm_is_steel",
			selections: map[entities.Attribute]string{
				entities.AttrVoltage: "LVTX", entities.AttrConfiguration: "PN", entities.AttrDimension: "A",
				entities.AttrNumber: "1",
			},
			poleWidth: 150,
			expected: entities.BoltSizing{
				KingBoltSize: 280, SpacerBoltSize: 280, LongBraceBoltSize: 200, TBracketBoltSize: 200,
				IsPinArm: true, IsSteel: true, ArmWidth: 75,
			},
		},
		{
			name: "double_arm_dimension_e",
			selections: map[entities.Attribute]string{
				entities.AttrVoltage: "33", entities.AttrConfiguration: "T", entities.AttrDimension: "E",
				entities.AttrNumber: "2", entities.AttrMaterial: "C",
			},
			poleWidth: 200,
			expected: entities.BoltSizing{
				KingBoltSize: 525, SpacerBoltSize: 500, LongBraceBoltSize: 260, TBracketBoltSize: 240,
				ArmWidth: 250,
			},
		},
		{
			name: "hv_post_is_pin_arm",
			selections: map[entities.Attribute]string{
				entities.AttrVoltage: "66", entities.AttrConfiguration: "PS", entities.AttrDimension: "A",
			},
			poleWidth: 100,
			expected: entities.BoltSizing{
				KingBoltSize: 240, SpacerBoltSize: 220, LongBraceBoltSize: 150, TBracketBoltSize: 140,
				IsPinArm: true, ArmWidth: 75,
			},
		},
		{
			name: "explicit_pin_arm_angle_iron",
			selections: map[entities.Attribute]string{
				entities.AttrVoltage: "11", entities.AttrConfiguration: "SUP", entities.AttrDimension: "Z",
				entities.AttrNumber: "1", entities.AttrMaterial: "S",
			},
			poleWidth: 150,
			expected: entities.BoltSizing{
				KingBoltSize: 280, SpacerBoltSize: 280, LongBraceBoltSize: 200, TBracketBoltSize: 200,
				IsPinArm: true, IsSteel: true, ArmWidth: 75,
			},
		},
		{
			name: "invalid_number_defaults_to_one_arm",
			selections: map[entities.Attribute]string{
				entities.AttrVoltage: "11", entities.AttrConfiguration: "T", entities.AttrDimension: "B",
				entities.AttrNumber: "x",
			},
			poleWidth: 150,
			expected: entities.BoltSizing{
				KingBoltSize: 325, SpacerBoltSize: 300, LongBraceBoltSize: 200, TBracketBoltSize: 200,
				ArmWidth: 100,
			},
		},
		{
			name: "exhausted_catalog_clamps_to_max",
			selections: map[entities.Attribute]string{
				entities.AttrVoltage: "11", entities.AttrConfiguration: "T", entities.AttrDimension: "B",
				entities.AttrNumber: "2", entities.AttrMaterial: "T",
			},
			poleWidth: 1000,
			expected: entities.BoltSizing{
				KingBoltSize: 600, SpacerBoltSize: 575, LongBraceBoltSize: 600, TBracketBoltSize: 600,
				ArmWidth: 200,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolver.Resolve(entities.NewAttributeSelection(tt.selections), tt.poleWidth)
			if !ok {
				t.Fatal("Expected sizing to resolve")
			}
			if got != tt.expected {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestBoltSizingResolver_UnavailableWithoutDimension(t *testing.T) {
	resolver := NewBoltSizingResolver(catalog.Default())
	sel := entities.NewAttributeSelection(map[entities.Attribute]string{entities.AttrVoltage: "11"})

	if _, ok := resolver.Resolve(sel, 150); ok {
		t.Error("Expected sizing to be unavailable while Dimension is unset")
	}
}

func TestBoltSizingResolver_Monotonic(t *testing.T) {
	resolver := NewBoltSizingResolver(catalog.Default())
	cat := catalog.Default()

	for _, dim := range cat.ValidCodes(entities.KindCrossarm, entities.AttrDimension) {
		for _, material := range cat.ValidCodes(entities.KindCrossarm, entities.AttrMaterial) {
			for _, number := range []string{"1", "2"} {
				sel := entities.NewAttributeSelection(map[entities.Attribute]string{
					entities.AttrVoltage: "11", entities.AttrConfiguration: "T", entities.AttrDimension: dim,
					entities.AttrNumber: number, entities.AttrMaterial: material,
				})

				prev, _ := resolver.Resolve(sel, 1)
				for width := 2; width <= 700; width++ {
					cur, _ := resolver.Resolve(sel, width)
					if cur.KingBoltSize < prev.KingBoltSize ||
						cur.SpacerBoltSize < prev.SpacerBoltSize ||
						cur.LongBraceBoltSize < prev.LongBraceBoltSize ||
						cur.TBracketBoltSize < prev.TBracketBoltSize {
						t.Fatalf("Sizing decreased for %v between %dmm and %dmm: %+v -> %+v",
							sel, width-1, width, prev, cur)
					}
					prev = cur
				}
			}
		}
	}
}

func TestBoltSizingResolver_SteelStepsOneSizeDown(t *testing.T) {
	cat := catalog.Default()
	resolver := NewBoltSizingResolver(cat)
	sizes := cat.BoltSizes().Values()

	indexOf := func(size int) int {
		for i, s := range sizes {
			if s == size {
				return i
			}
		}
		t.Fatalf("Size %d not in catalog", size)
		return -1
	}

	for _, width := range []int{80, 150, 220, 300, 900} {
		base := map[entities.Attribute]string{
			entities.AttrVoltage: "11", entities.AttrConfiguration: "T", entities.AttrDimension: "B",
			entities.AttrNumber: "1", entities.AttrMaterial: "T",
		}
		timber, _ := resolver.Resolve(entities.NewAttributeSelection(base), width)
		steel, _ := resolver.Resolve(entities.NewAttributeSelection(base).With(entities.AttrMaterial, "S"), width)

		if got := indexOf(timber.KingBoltSize) - indexOf(steel.KingBoltSize); got != 1 {
			t.Errorf("width %d: expected steel king bolt one step below timber, timber=%d steel=%d",
				width, timber.KingBoltSize, steel.KingBoltSize)
		}
	}
}

func TestBoltSizingResolver_SteelNeverBelowCatalogMinimum(t *testing.T) {
	cat, err := catalog.Parse([]byte(minimalCatalogYAML))
	if err != nil {
		t.Fatalf("Failed to parse catalog: %v", err)
	}
	resolver := NewBoltSizingResolver(cat)

	sel := entities.NewAttributeSelection(map[entities.Attribute]string{
		entities.AttrVoltage: "11", entities.AttrDimension: "B", entities.AttrMaterial: "S",
	})
	got, _ := resolver.Resolve(sel, 150)
	if got.KingBoltSize != 500 {
		t.Errorf("Expected steel king bolt to clamp at catalog minimum 500, got %d", got.KingBoltSize)
	}
	if got.SpacerBoltSize != 500 {
		t.Errorf("Expected spacer bolt to clamp at catalog minimum 500, got %d", got.SpacerBoltSize)
	}
}

const minimalCatalogYAML = `
version: 1
bolt_sizes: [500, 600]
crossarm:
  attributes:
    - name: Voltage
      codes: ["11", "LV"]
    - name: Dimension
      codes: ["A", "B"]
    - name: Material
      codes: ["T", "S"]
  hv_voltages: ["11"]
  lv_voltages: ["LV"]
pole:
  attributes:
    - name: Length
      codes: ["95"]
`
