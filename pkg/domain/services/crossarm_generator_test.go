package services

import (
	"reflect"
	"testing"

	"github.com/vsinha/polebom/pkg/domain/catalog"
	"github.com/vsinha/polebom/pkg/domain/entities"
)

func TestCrossarmGenerator_TimberHVTermPostTerm(t *testing.T) {
	sel := crossarmSelection(map[entities.Attribute]string{
		entities.AttrVoltage: "11", entities.AttrConfiguration: "TPS3T", entities.AttrDimension: "A",
		entities.AttrLength: "30", entities.AttrNumber: "1", entities.AttrMaterial: "T", entities.AttrWires: "3",
	})
	items := generateCrossarm(t, sel, 150)

	arm := requireItem(t, items, "THV-TPS3T-A-30", 1)
	if arm.Name != "HV Single Crossarm - 75x100mm x 3.0m" {
		t.Errorf("Unexpected main arm name %q", arm.Name)
	}
	if arm.Category != entities.CategoryMainArm {
		t.Errorf("Expected main arm category, got %s", arm.Category)
	}
	if items[0].ID != arm.ID {
		t.Errorf("Expected main arm first, got %s", items[0].ID)
	}

	// king bolt kit with timber extras
	requireItem(t, items, "BOLT-M16-325", 1)
	requireItem(t, items, "WASH-M16-50-KB", 2)
	requireItem(t, items, "NUT-M16-KB", 1)
	requireItem(t, items, "WASH-M20-80", 1)
	requireItem(t, items, "WASH-CONICAL", 1)

	// two term sets and three posts per the code
	requireItem(t, items, "INS-POST-11KV", 3)
	requireItem(t, items, "EYEBOLT-M16-250", 6)
	requireItem(t, items, "INS-TERM-11KV", 6)
	requireItem(t, items, "CLIP-RFI", 6)
	requireItem(t, items, "CLEVIS", 6)
	requireNoItem(t, items, "BRACKET-DELTA")
	requireNoItem(t, items, "EDO-11KV")

	requireItem(t, items, "BRACE-900", 2)
	requireItem(t, items, "WASH-M12-50", 3)
	requireItem(t, items, "NUT-M12", 3)
	requireItem(t, items, "BOLT-M12-140", 2)
	requireItem(t, items, "BOLT-M12-200", 1)

	if len(items) != 16 {
		t.Errorf("Expected 16 line items, got %d: %v", len(items), ids(items))
	}
}

func TestCrossarmGenerator_LVTXPinArm(t *testing.T) {
	sel := crossarmSelection(map[entities.Attribute]string{
		entities.AttrVoltage: "LVTX", entities.AttrConfiguration: "PN", entities.AttrDimension: "A",
		entities.AttrLength: "20", entities.AttrNumber: "1", entities.AttrMaterial: "S", entities.AttrWires: "2",
	})
	items := generateCrossarm(t, sel, 150)

	arm := requireItem(t, items, "SLV-PN-A-20", 1)
	if arm.Name != "Steel LV Single Pin Arm - 75x100mm x 2.0m" {
		t.Errorf("Unexpected main arm name %q", arm.Name)
	}

	requireItem(t, items, "INS-LV-PIN", 2)

	// steel king bolt sits one size below the 300mm timber bolt
	requireItem(t, items, "BOLT-M16-280", 1)
	requireNoItem(t, items, "WASH-CONICAL")

	requireItem(t, items, "BRACKET-T-STEEL", 1)
	requireItem(t, items, "BOLT-M12-140-TB", 2)
	requireItem(t, items, "WASH-M12-50-TB", 4)
	requireItem(t, items, "BOLT-M16-200-TB", 1)
	requireItem(t, items, "WASH-M16-50-TB", 2)

	// LVTX arms use the T bracket instead of braces
	requireNoItem(t, items, "BRACE-STEEL-ADJ")
	requireNoItem(t, items, "INS-LV-BOB")
}

func TestCrossarmGenerator_LVTermSets(t *testing.T) {
	tests := []struct {
		name      string
		config    string
		dimension string
		termQty   int
		armBolt   string
	}{
		{"single_term", "T", "B", 3, "BOLT-M12-130-ARM"},
		{"double_term", "TT", "B", 6, "BOLT-M12-130-ARM"},
		{"term_post", "TPS2", "A", 3, "BOLT-M12-110-ARM"},
		{"timber_fly_arm", "TFLYW", "A", 3, "BOLT-M12-110-ARM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := crossarmSelection(map[entities.Attribute]string{
				entities.AttrVoltage: "LV", entities.AttrConfiguration: tt.config, entities.AttrDimension: tt.dimension,
				entities.AttrLength: "23", entities.AttrNumber: "1", entities.AttrMaterial: "C", entities.AttrWires: "3",
			})
			items := generateCrossarm(t, sel, 150)

			requireItem(t, items, "INS-LV-BOB", tt.termQty)
			requireItem(t, items, "STRAP-SH-7", tt.termQty*2)
			requireItem(t, items, "BOLT-M12-110-TS", tt.termQty)
			requireItem(t, items, tt.armBolt, tt.termQty)
			requireItem(t, items, "NUT-M12-TS", tt.termQty*2)
			requireNoItem(t, items, "INS-LV-PIN")
		})
	}
}

func TestCrossarmGenerator_LVPinCheckIgnoresMaterial(t *testing.T) {
	for _, material := range []string{"T", "S", "C"} {
		sel := crossarmSelection(map[entities.Attribute]string{
			entities.AttrVoltage: "LV", entities.AttrConfiguration: "PN", entities.AttrDimension: "B",
			entities.AttrLength: "23", entities.AttrNumber: "2", entities.AttrMaterial: material, entities.AttrWires: "4",
		})
		items := generateCrossarm(t, sel, 150)
		requireItem(t, items, "INS-LV-PIN", 8)
	}
}

func TestCrossarmGenerator_BlankArmHasNoInsulators(t *testing.T) {
	for _, voltage := range []string{"LV", "11"} {
		sel := crossarmSelection(map[entities.Attribute]string{
			entities.AttrVoltage: voltage, entities.AttrConfiguration: "B", entities.AttrDimension: "B",
			entities.AttrLength: "16", entities.AttrNumber: "1", entities.AttrMaterial: "T", entities.AttrWires: "3",
		})
		items := generateCrossarm(t, sel, 150)

		for _, it := range items {
			if it.Category == entities.CategoryInsulators {
				t.Errorf("voltage %s: blank arm should carry no insulators, got %s", voltage, it.ID)
			}
		}
		// blank arms are still braced
		requireItem(t, items, "BRACE-763", 2)
	}
}

func TestCrossarmGenerator_EDOArm(t *testing.T) {
	sel := crossarmSelection(map[entities.Attribute]string{
		entities.AttrVoltage: "33", entities.AttrConfiguration: "EDO", entities.AttrDimension: "E",
		entities.AttrLength: "40", entities.AttrNumber: "1", entities.AttrMaterial: "T", entities.AttrWires: "3",
	})
	items := generateCrossarm(t, sel, 150)

	arm := requireItem(t, items, "THV-EDO-E-40", 1)
	if arm.Name != "HV Single DDO Arm - 125x150mm x 4.0m" {
		t.Errorf("Unexpected main arm name %q", arm.Name)
	}
	requireItem(t, items, "EDO-33KV", 3)
	requireNoItem(t, items, "INS-POST-33KV")
	requireNoItem(t, items, "EYEBOLT-M16-250")

	requireItem(t, items, "BRACE-900", 1)
	requireItem(t, items, "WASH-M12-50", 2)
	requireItem(t, items, "NUT-M12", 2)
	requireItem(t, items, "BOLT-M12-180", 1)
}

func TestCrossarmGenerator_DeltaBracket(t *testing.T) {
	sel := crossarmSelection(map[entities.Attribute]string{
		entities.AttrVoltage: "11", entities.AttrConfiguration: "DPS", entities.AttrDimension: "B",
		entities.AttrLength: "20", entities.AttrNumber: "2", entities.AttrMaterial: "C", entities.AttrWires: "3",
	})
	items := generateCrossarm(t, sel, 150)

	requireItem(t, items, "BRACKET-DELTA", 1)
	requireItem(t, items, "INS-POST-11KV", 6)
}

func TestCrossarmGenerator_SteelBraces(t *testing.T) {
	sel := crossarmSelection(map[entities.Attribute]string{
		entities.AttrVoltage: "11", entities.AttrConfiguration: "T", entities.AttrDimension: "B",
		entities.AttrLength: "20", entities.AttrNumber: "1", entities.AttrMaterial: "S", entities.AttrWires: "3",
	})
	items := generateCrossarm(t, sel, 150)

	requireItem(t, items, "BRACE-STEEL-ADJ", 2)
	requireItem(t, items, "BOLT-M12-ADJ-BRACE", 2)
	requireItem(t, items, "BOLT-M12-200", 1)
	requireNoItem(t, items, "BRACE-763")
	requireNoItem(t, items, "WASH-M20-80")
}

func TestCrossarmGenerator_FlyArms(t *testing.T) {
	timber := crossarmSelection(map[entities.Attribute]string{
		entities.AttrVoltage: "11", entities.AttrConfiguration: "TFLYW", entities.AttrDimension: "A",
		entities.AttrLength: "20", entities.AttrNumber: "1", entities.AttrMaterial: "T", entities.AttrWires: "3",
	})
	items := generateCrossarm(t, timber, 150)

	requireItem(t, items, "WASH-M20-80-FLY", 2)
	requireItem(t, items, "WASH-CONICAL-FLY", 2)
	requireItem(t, items, "BOLT-M16-240-FLY", 2)
	requireItem(t, items, "NUT-M16-FLY", 2)
	requireNoItem(t, items, "BOLT-M16-325")
	requireNoItem(t, items, "BRACE-763")

	steel := timber.With(entities.AttrConfiguration, "TFLYS").With(entities.AttrDimension, "D").With(entities.AttrMaterial, "S")
	items = generateCrossarm(t, steel, 150)

	requireItem(t, items, "BRACKET-STEEL-FLY", 1)
	requireItem(t, items, "WASH-M20-80-FLYS", 1)
	requireItem(t, items, "WASH-CONICAL-FLYS", 1)
	requireItem(t, items, "BOLT-M16-280-FLYS", 1)
	requireItem(t, items, "WASH-M16-50-FLYS", 2)
	requireNoItem(t, items, "BRACE-STEEL-ADJ")
	requireNoItem(t, items, "NUT-M16-KB")
}

func TestCrossarmGenerator_DoubleArmSpacer(t *testing.T) {
	sel := crossarmSelection(map[entities.Attribute]string{
		entities.AttrVoltage: "11", entities.AttrConfiguration: "T", entities.AttrDimension: "B",
		entities.AttrLength: "20", entities.AttrNumber: "2", entities.AttrMaterial: "C", entities.AttrWires: "3",
	})

	items := generateCrossarm(t, sel, 150)
	arm := requireItem(t, items, "CHV-T-B-20-x2", 2)
	if arm.Name != "Composite HV Double Crossarm - 100x100mm x 2.0m" {
		t.Errorf("Unexpected main arm name %q", arm.Name)
	}
	requireItem(t, items, "BOLT-M16-425", 1)
	requireItem(t, items, "BOLT-M16-400", 1)
	requireItem(t, items, "WASH-M16-50-SP", 4)
	requireItem(t, items, "PIPE-SPACER-145", 1)

	wider := generateCrossarm(t, sel, 200)
	requireItem(t, wider, "PIPE-SPACER-195", 1)
	requireNoItem(t, wider, "PIPE-SPACER-145")
}

func TestCrossarmGenerator_SteelDoubleArmMergesSharedBolt(t *testing.T) {
	sel := crossarmSelection(map[entities.Attribute]string{
		entities.AttrVoltage: "11", entities.AttrConfiguration: "T", entities.AttrDimension: "B",
		entities.AttrLength: "20", entities.AttrNumber: "2", entities.AttrMaterial: "S", entities.AttrWires: "3",
	})
	items := generateCrossarm(t, sel, 150)

	// the stepped-down king bolt and the spacer bolt are the same part
	requireItem(t, items, "BOLT-M16-400", 2)
	requireNoItem(t, items, "BOLT-M16-425")

	seen := make(map[entities.PartNumber]bool)
	for _, it := range items {
		if seen[it.ID] {
			t.Errorf("Expected %s to appear once, got %v", it.ID, ids(items))
		}
		seen[it.ID] = true
	}
	if items[1].ID != "BOLT-M16-400" {
		t.Errorf("Expected merged bolt to keep the king bolt position, got %v", ids(items))
	}
}

func TestCrossarmGenerator_UnavailableInputs(t *testing.T) {
	cat := catalog.Default()
	gen := NewCrossarmGenerator(cat)

	sel := crossarmSelection(map[entities.Attribute]string{
		entities.AttrVoltage: "11", entities.AttrDimension: "B",
	})
	sizing, _ := NewBoltSizingResolver(cat).Resolve(sel, 150)

	if items := gen.Generate(sel, 150, nil); items != nil {
		t.Errorf("Expected no items without sizing, got %v", ids(items))
	}
	if items := gen.Generate(sel, 150, &sizing); items != nil {
		t.Errorf("Expected no items without configuration, got %v", ids(items))
	}
}

func TestCrossarmGenerator_Deterministic(t *testing.T) {
	sel := crossarmSelection(map[entities.Attribute]string{
		entities.AttrVoltage: "66", entities.AttrConfiguration: "DTPS5T", entities.AttrDimension: "D",
		entities.AttrLength: "50", entities.AttrNumber: "2", entities.AttrMaterial: "T", entities.AttrWires: "65",
	})

	first := generateCrossarm(t, sel, 250)
	for i := 0; i < 5; i++ {
		if again := generateCrossarm(t, sel.Clone(), 250); !reflect.DeepEqual(first, again) {
			t.Fatalf("Expected identical output on repeat %d", i)
		}
	}
}

func TestCrossarmGenerator_FiredRules(t *testing.T) {
	cat := catalog.Default()
	gen := NewCrossarmGenerator(cat)
	sel := crossarmSelection(map[entities.Attribute]string{
		entities.AttrVoltage: "11", entities.AttrConfiguration: "TPS3T", entities.AttrDimension: "A",
		entities.AttrLength: "30", entities.AttrNumber: "1", entities.AttrMaterial: "T", entities.AttrWires: "3",
	})
	sizing, _ := NewBoltSizingResolver(cat).Resolve(sel, 150)

	got := gen.FiredRules(sel, 150, &sizing)
	expected := []string{"main-arm", "king-bolt-kit", "hv-post-insulators", "hv-term-sets", "timber-braces"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("FiredRules() = %v, want %v", got, expected)
	}
	if len(gen.RuleNames()) != 14 {
		t.Errorf("Expected 14 rules, got %d", len(gen.RuleNames()))
	}
}

// Every identifier must describe the same part wherever it is emitted, so
// aggregating every catalog combination must never conflict.
func TestCrossarmGenerator_IdentifiersAreConsistentAcrossCatalog(t *testing.T) {
	cat := catalog.Default()
	resolver := NewBoltSizingResolver(cat)
	gen := NewCrossarmGenerator(cat)

	var components []entities.ConfiguredComponent
	seq := 0
	for _, voltage := range cat.ValidCodes(entities.KindCrossarm, entities.AttrVoltage) {
		for _, config := range cat.ValidCodes(entities.KindCrossarm, entities.AttrConfiguration) {
			for _, dim := range cat.ValidCodes(entities.KindCrossarm, entities.AttrDimension) {
				for _, material := range cat.ValidCodes(entities.KindCrossarm, entities.AttrMaterial) {
					for _, number := range cat.ValidCodes(entities.KindCrossarm, entities.AttrNumber) {
						for _, width := range []int{90, 150, 300} {
							sel := crossarmSelection(map[entities.Attribute]string{
								entities.AttrVoltage: voltage, entities.AttrConfiguration: config,
								entities.AttrDimension: dim, entities.AttrLength: "30",
								entities.AttrNumber: number, entities.AttrMaterial: material,
								entities.AttrWires: "43",
							})
							sizing, _ := resolver.Resolve(sel, width)
							items := gen.Generate(sel, width, &sizing)
							for _, it := range items {
								if it.Qty <= 0 {
									t.Fatalf("Non-positive quantity for %s in %v", it.ID, sel)
								}
							}
							seq++
							components = append(components, entities.ConfiguredComponent{Sequence: seq, LineItems: items})
						}
					}
				}
			}
		}
	}

	if _, err := NewAggregationEngine().Aggregate(components); err != nil {
		t.Fatalf("Expected consistent identifiers, got %v", err)
	}
}
