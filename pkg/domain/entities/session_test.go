package entities

import (
	"testing"
	"time"
)

func TestSession_SnapshotIsDeep(t *testing.T) {
	s := NewSession("s", time.Unix(0, 0))
	item, err := NewLineItem("CLEVIS", "Clevis", 6, CategoryHardware)
	if err != nil {
		t.Fatalf("NewLineItem failed: %v", err)
	}
	sel := NewAttributeSelection(map[Attribute]string{AttrVoltage: "11"})
	s.Append(NewConfiguredComponent(s.NextSequence(), KindCrossarm, sel, 150, "XARM-11", nil, []LineItem{*item}))

	if s.NextSequence() != 2 {
		t.Errorf("Expected next sequence 2, got %d", s.NextSequence())
	}

	snap := s.Snapshot()
	snap[0].LineItems[0].Qty = 1
	snap[0].Selections[AttrVoltage] = "33"

	if s.Components[0].LineItems[0].Qty != 6 {
		t.Errorf("Expected stored quantity 6, got %d", s.Components[0].LineItems[0].Qty)
	}
	if s.Components[0].Selections.Code(AttrVoltage) != "11" {
		t.Errorf("Expected stored voltage 11, got %s", s.Components[0].Selections.Code(AttrVoltage))
	}

	s.Reset()
	if len(s.Components) != 0 || s.NextSequence() != 1 {
		t.Errorf("Expected empty session after reset, got %d components", len(s.Components))
	}
}

func TestConfiguredComponent_CopiesInputs(t *testing.T) {
	sizing := &BoltSizing{KingBoltSize: 325}
	items := []LineItem{{ID: "A", Name: "A", Qty: 1, Category: CategoryHardware}}
	sel := NewAttributeSelection(map[Attribute]string{AttrLength: "30"})

	c := NewConfiguredComponent(1, KindCrossarm, sel, 150, "XARM", sizing, items)
	sizing.KingBoltSize = 0
	items[0].Qty = 5
	sel[AttrLength] = "40"

	if c.Sizing.KingBoltSize != 325 {
		t.Errorf("Expected sizing copy, got %d", c.Sizing.KingBoltSize)
	}
	if c.LineItems[0].Qty != 1 {
		t.Errorf("Expected item copy, got %d", c.LineItems[0].Qty)
	}
	if c.Selections.Code(AttrLength) != "30" {
		t.Errorf("Expected selection copy, got %s", c.Selections.Code(AttrLength))
	}
	if c.KindName != "crossarm" {
		t.Errorf("Expected kind name crossarm, got %s", c.KindName)
	}
	if c.TotalQuantity() != 1 {
		t.Errorf("Expected total quantity 1, got %d", c.TotalQuantity())
	}
}
