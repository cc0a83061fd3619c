package services

import (
	"fmt"

	"github.com/vsinha/polebom/pkg/domain/entities"
)

// Part constructors keep each identifier's name and category in one place, so
// every rule that emits an identifier describes it the same way.

func item(id string, name string, qty int, category entities.Category) entities.LineItem {
	return entities.LineItem{
		ID:       entities.PartNumber(id),
		Name:     name,
		Qty:      entities.Quantity(qty),
		Category: category,
	}
}

func hardware(id, name string, qty int) entities.LineItem {
	return item(id, name, qty, entities.CategoryHardware)
}

func insulator(id, name string, qty int) entities.LineItem {
	return item(id, name, qty, entities.CategoryInsulators)
}

func boltCategory(diameter int) entities.Category {
	if diameter == 16 {
		return entities.CategoryM16Bolts
	}
	return entities.CategoryM12Bolts
}

// bolt is a plain bolt identified by diameter and length only
func bolt(diameter, lengthMm, qty int) entities.LineItem {
	return item(
		fmt.Sprintf("BOLT-M%d-%d", diameter, lengthMm),
		fmt.Sprintf("M%dx%dmm Bolt", diameter, lengthMm),
		qty,
		boltCategory(diameter),
	)
}

// Bolt roles and the label each contributes to the part name.
type boltRole struct {
	suffix string
	label  string
}

var (
	roleTermSet    = boltRole{"TS", "Term Set"}
	roleArmSide    = boltRole{"ARM", "Arm Side"}
	roleFlyArm     = boltRole{"FLY", "Fly Arm"}
	roleFlyArmS    = boltRole{"FLYS", "Fly Arm"}
	roleTBracket   = boltRole{"TB", "T Bracket"}
	roleThroughTee = boltRole{"TB", "T Bracket Through-Pole"}
)

// roleBolt is a bolt reserved for one fitting, kept apart from plain bolts of the same length
func roleBolt(diameter, lengthMm int, role boltRole, qty int) entities.LineItem {
	return item(
		fmt.Sprintf("BOLT-M%d-%d-%s", diameter, lengthMm, role.suffix),
		fmt.Sprintf("M%dx%dmm Bolt (%s)", diameter, lengthMm, role.label),
		qty,
		boltCategory(diameter),
	)
}

func voltageLabel(voltage string) string {
	return voltage + "kV"
}
