package services

import (
	"strconv"

	"github.com/vsinha/polebom/pkg/domain/catalog"
	"github.com/vsinha/polebom/pkg/domain/entities"
)

const (
	kingBoltClearanceMm  = 60
	longBraceClearanceMm = 50
	tBracketClearanceMm  = 40

	configNeutral  = "PN"
	configPost     = "PS"
	voltageLVTX    = "LVTX"
	materialSteel  = "S"
	materialTimber = "T"
)

// BoltSizingResolver resolves bolt lengths for a crossarm against the bolt catalog
type BoltSizingResolver struct {
	catalog *catalog.Catalog
}

// NewBoltSizingResolver creates a resolver over the given catalog
func NewBoltSizingResolver(c *catalog.Catalog) *BoltSizingResolver {
	return &BoltSizingResolver{catalog: c}
}

// IsPinArm reports whether the selection describes a pin-insulator arm
func (r *BoltSizingResolver) IsPinArm(selections entities.AttributeSelection) bool {
	config := selections.Code(entities.AttrConfiguration)
	voltage := selections.Code(entities.AttrVoltage)

	return r.catalog.IsExplicitPinArm(config) ||
		(r.catalog.IsLVClass(voltage) && config == configNeutral) ||
		(r.catalog.IsHV(voltage) && config == configPost)
}

// IsSteel reports whether the arm mounts without the timber washer stack
func (r *BoltSizingResolver) IsSteel(selections entities.AttributeSelection) bool {
	return selections.Code(entities.AttrMaterial) == materialSteel ||
		selections.Code(entities.AttrVoltage) == voltageLVTX
}

// Resolve computes bolt sizing for the selection. ok is false while Dimension is unset.
func (r *BoltSizingResolver) Resolve(selections entities.AttributeSelection, poleWidthMm int) (entities.BoltSizing, bool) {
	dimension, ok := selections.Get(entities.AttrDimension)
	if !ok {
		return entities.BoltSizing{}, false
	}

	sizes := r.catalog.BoltSizes()
	isPinArm := r.IsPinArm(selections)
	isSteel := r.IsSteel(selections)

	armWidth := singleArmWidth(dimension, isPinArm) * ArmCount(selections)

	kingIdx, _ := sizes.IndexAtLeast(poleWidthMm + armWidth + kingBoltClearanceMm)
	kingBolt := sizes.At(kingIdx)
	if isSteel {
		// steel mounts skip the conical and large washers
		kingBolt = sizes.At(kingIdx - 1)
	}

	return entities.BoltSizing{
		KingBoltSize:      kingBolt,
		SpacerBoltSize:    sizes.At(kingIdx - 1),
		LongBraceBoltSize: sizes.RoundUp(poleWidthMm + longBraceClearanceMm),
		TBracketBoltSize:  sizes.RoundUp(poleWidthMm + tBracketClearanceMm),
		IsPinArm:          isPinArm,
		IsSteel:           isSteel,
		ArmWidth:          armWidth,
	}, true
}

func singleArmWidth(dimension string, isPinArm bool) int {
	switch dimension {
	case "A":
		if isPinArm {
			return 75
		}
		return 100
	case "E":
		return 125
	case "Z":
		return 75
	default:
		return 100
	}
}

// ArmCount returns the number of arms in the assembly: 1 or 2, defaulting to 1
func ArmCount(selections entities.AttributeSelection) int {
	n, err := strconv.Atoi(selections.Code(entities.AttrNumber))
	if err != nil || n < 1 || n > 2 {
		return 1
	}
	return n
}
