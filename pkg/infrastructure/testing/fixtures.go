package testing

import (
	"github.com/vsinha/polebom/pkg/domain/entities"
)

// HVTermPostTerm is an 11kV timber crossarm with a post between two term sets
func HVTermPostTerm() entities.AttributeSelection {
	return entities.NewAttributeSelection(map[entities.Attribute]string{
		entities.AttrVoltage:       "11",
		entities.AttrDimension:     "A",
		entities.AttrLength:        "30",
		entities.AttrNumber:        "1",
		entities.AttrConfiguration: "TPS3T",
		entities.AttrMaterial:      "T",
		entities.AttrWires:         "3",
	})
}

// LVTXPinArm is a steel LV transformer pin arm
func LVTXPinArm() entities.AttributeSelection {
	return entities.NewAttributeSelection(map[entities.Attribute]string{
		entities.AttrVoltage:       "LVTX",
		entities.AttrDimension:     "A",
		entities.AttrLength:        "20",
		entities.AttrNumber:        "1",
		entities.AttrConfiguration: "PN",
		entities.AttrMaterial:      "S",
		entities.AttrWires:         "2",
	})
}

// BusckPole is a single concrete pole from the donut manufacturer
func BusckPole() entities.AttributeSelection {
	return entities.NewAttributeSelection(map[entities.Attribute]string{
		entities.AttrLength:       "125",
		entities.AttrNumber:       "Single",
		entities.AttrManufacturer: "BUSCK",
		entities.AttrMaterial:     "C",
	})
}

// BuildLevelsScenario returns a pole carrying two identical HV levels and an
// LVTX level, in the order a user would configure them
func BuildLevelsScenario() []entities.ComponentRequest {
	return []entities.ComponentRequest{
		{Line: 1, Kind: entities.KindPole, Selections: BusckPole()},
		{Line: 2, Kind: entities.KindCrossarm, PoleWidthMm: 150, PoleWidthSet: true, Selections: HVTermPostTerm()},
		{Line: 3, Kind: entities.KindCrossarm, PoleWidthMm: 150, PoleWidthSet: true, Selections: HVTermPostTerm()},
		{Line: 4, Kind: entities.KindCrossarm, PoleWidthMm: 150, PoleWidthSet: true, Selections: LVTXPinArm()},
	}
}
