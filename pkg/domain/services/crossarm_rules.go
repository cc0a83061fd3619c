package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/polebom/pkg/domain/entities"
)

const (
	configBlank     = "B"
	configEDO       = "EDO"
	configTerm      = "T"
	configTermTwice = "TT"
	configTermPost  = "TPS"
	configFlyTimber = "TFLYW"
	configFlySteel  = "TFLYS"
	dimensionA      = "A"
	dimensionE      = "E"

	// the spacer pipe is cut this much shorter than the pole is wide
	spacerPipeAllowanceMm = 5
)

// crossarmContext is everything a rule may read. It is derived once per
// generation from a frozen selection and never modified by rules.
type crossarmContext struct {
	labels      labelFunc
	poleWidthMm int
	sizing      entities.BoltSizing

	voltage   string
	config    string
	material  string
	dimension string
	length    string

	armCount int
	wires    int
	hasWires bool

	isHV     bool
	isLV     bool
	isLVTX   bool
	isFlyArm bool

	code ConfigCode
}

type labelFunc func(attr entities.Attribute, code string) string

// crossarmRule pairs a predicate with the items it contributes. Rules run in
// table order; the order is the emission order of the parts list.
type crossarmRule struct {
	name    string
	applies func(c *crossarmContext) bool
	emit    func(c *crossarmContext) []entities.LineItem
}

var crossarmRules = []crossarmRule{
	{name: "main-arm", applies: always, emit: emitMainArm},
	{name: "king-bolt-kit", applies: notFlyArm, emit: emitKingBoltKit},
	{name: "lv-pin-insulators", applies: lvPinArm, emit: emitLVPinInsulators},
	{name: "lv-term-sets", applies: lvTermArm, emit: emitLVTermSets},
	{name: "hv-edo-cutouts", applies: hvWith(func(c ConfigCode) bool { return c.HasEDO }), emit: emitEDOCutouts},
	{name: "hv-post-insulators", applies: hvWith(func(c ConfigCode) bool { return c.PostQty > 0 }), emit: emitPostInsulators},
	{name: "hv-term-sets", applies: hvWith(func(c ConfigCode) bool { return c.TermCount > 0 }), emit: emitHVTermSets},
	{name: "hv-delta-bracket", applies: hvWith(func(c ConfigCode) bool { return c.HasDelta }), emit: emitDeltaBracket},
	{name: "timber-braces", applies: timberBraced, emit: emitTimberBraces},
	{name: "steel-braces", applies: steelBraced, emit: emitSteelBraces},
	{name: "fly-arm-timber", applies: configIs(configFlyTimber), emit: emitFlyArmTimber},
	{name: "fly-arm-steel", applies: configIs(configFlySteel), emit: emitFlyArmSteel},
	{name: "lvtx-t-bracket", applies: func(c *crossarmContext) bool { return c.isLVTX }, emit: emitTBracket},
	{name: "double-arm-spacer", applies: func(c *crossarmContext) bool { return c.armCount == 2 }, emit: emitSpacer},
}

// Predicates

func always(*crossarmContext) bool { return true }

func notFlyArm(c *crossarmContext) bool { return !c.isFlyArm }

func configIs(code string) func(*crossarmContext) bool {
	return func(c *crossarmContext) bool { return c.config == code }
}

// Blank arms carry no insulators of any kind.
func insulated(c *crossarmContext) bool { return c.config != configBlank }

func lvPinArm(c *crossarmContext) bool {
	return c.isLV && c.hasWires && insulated(c) && c.sizing.IsPinArm
}

func lvTermArm(c *crossarmContext) bool {
	if !c.isLV || !c.hasWires || !insulated(c) || c.sizing.IsPinArm {
		return false
	}
	return c.config == configTerm ||
		c.config == configTermTwice ||
		strings.HasPrefix(c.config, configTermPost) ||
		c.isFlyArm
}

func hvWith(pred func(ConfigCode) bool) func(*crossarmContext) bool {
	return func(c *crossarmContext) bool {
		return c.isHV && insulated(c) && pred(c.code)
	}
}

func timberBraced(c *crossarmContext) bool {
	return c.material == materialTimber && !c.isFlyArm
}

func steelBraced(c *crossarmContext) bool {
	return c.material == materialSteel && !c.isLVTX && !c.isFlyArm
}

// Emitters

func emitMainArm(c *crossarmContext) []entities.LineItem {
	class := "LV"
	if c.isHV {
		class = "HV"
	}

	armWord := "Single"
	id := fmt.Sprintf("%s%s-%s-%s-%s", c.material, class, c.config, c.dimension, c.length)
	if c.armCount == 2 {
		armWord = "Double"
		id += "-x2"
	}

	armType := "Crossarm"
	switch {
	case c.config == configEDO:
		armType = "DDO Arm"
	case c.sizing.IsPinArm:
		armType = "Pin Arm"
	}

	materialPrefix := ""
	if c.material != materialTimber {
		materialPrefix = c.labels(entities.AttrMaterial, c.material) + " "
	}

	name := fmt.Sprintf("%s%s %s %s - %s x %sm",
		materialPrefix, class, armWord, armType,
		c.labels(entities.AttrDimension, c.dimension), metres(c.length))

	return []entities.LineItem{item(id, name, c.armCount, entities.CategoryMainArm)}
}

func emitKingBoltKit(c *crossarmContext) []entities.LineItem {
	items := []entities.LineItem{
		bolt(16, c.sizing.KingBoltSize, 1),
		hardware("WASH-M16-50-KB", "M16x50x50 Square Washer", 2),
		hardware("NUT-M16-KB", "M16 Nut", 1),
	}
	// the conical washer seats the king bolt against the timber grain
	if c.material == materialTimber {
		items = append(items,
			hardware("WASH-M20-80", "M20x80x80 Large Washer", 1),
			hardware("WASH-CONICAL", "Conical Washer", 1),
		)
	}
	return items
}

func emitLVPinInsulators(c *crossarmContext) []entities.LineItem {
	return []entities.LineItem{insulator("INS-LV-PIN", "LV Pin Insulator", c.wires*c.armCount)}
}

func emitLVTermSets(c *crossarmContext) []entities.LineItem {
	termQty := c.wires
	if c.config == configTermTwice {
		termQty *= 2
	}
	armSideBolt := 130
	if c.dimension == dimensionA {
		armSideBolt = 110
	}
	return []entities.LineItem{
		insulator("INS-LV-BOB", "LV Bobbin", termQty),
		hardware("STRAP-SH-7", `7" Shackle Strap`, termQty*2),
		roleBolt(12, 110, roleTermSet, termQty),
		roleBolt(12, armSideBolt, roleArmSide, termQty),
		hardware("NUT-M12-TS", "M12 Nut (Term Set)", termQty*2),
	}
}

func emitEDOCutouts(c *crossarmContext) []entities.LineItem {
	return []entities.LineItem{insulator(
		fmt.Sprintf("EDO-%sKV", c.voltage),
		fmt.Sprintf("%s Expulsion Drop Out (EDO) Cutout", voltageLabel(c.voltage)),
		c.wires,
	)}
}

func emitPostInsulators(c *crossarmContext) []entities.LineItem {
	return []entities.LineItem{insulator(
		fmt.Sprintf("INS-POST-%sKV", c.voltage),
		fmt.Sprintf("%s Post Insulator", voltageLabel(c.voltage)),
		c.code.PostQty,
	)}
}

func emitHVTermSets(c *crossarmContext) []entities.LineItem {
	termQty := c.wires * c.code.TermCount
	return []entities.LineItem{
		hardware("EYEBOLT-M16-250", "M16x250mm Eye Bolt", termQty),
		insulator(
			fmt.Sprintf("INS-TERM-%sKV", c.voltage),
			fmt.Sprintf("%s Polymeric Term Insulator", voltageLabel(c.voltage)),
			termQty,
		),
		hardware("CLIP-RFI", "R.F.I. Clip", termQty),
		hardware("CLEVIS", "Clevis", termQty),
	}
}

func emitDeltaBracket(*crossarmContext) []entities.LineItem {
	return []entities.LineItem{hardware("BRACKET-DELTA", "Delta Bracket", 1)}
}

func emitTimberBraces(c *crossarmContext) []entities.LineItem {
	braceID, braceName := "BRACE-763", "763mm Arm Brace"
	if l, err := decimal.NewFromString(c.length); err == nil && l.GreaterThanOrEqual(decimal.NewFromInt(30)) {
		braceID, braceName = "BRACE-900", "900mm Arm Brace"
	}

	// drop-out arms are braced on one side only
	braces, fixings := 2, 3
	if strings.Contains(c.config, configEDO) {
		braces, fixings = 1, 2
	}

	shortBolt := 140
	switch c.dimension {
	case dimensionA:
		if c.sizing.IsPinArm {
			shortBolt = 110
		}
	case dimensionE:
		shortBolt = 180
	}

	return []entities.LineItem{
		hardware(braceID, braceName, braces),
		hardware("WASH-M12-50", "M12x50x50 Square Washer", fixings),
		hardware("NUT-M12", "M12 Nut", fixings),
		bolt(12, shortBolt, braces),
		bolt(12, c.sizing.LongBraceBoltSize, 1),
	}
}

func emitSteelBraces(c *crossarmContext) []entities.LineItem {
	return []entities.LineItem{
		hardware("BRACE-STEEL-ADJ", "Adjustable Steel Arm Brace", 2),
		hardware("BOLT-M12-ADJ-BRACE", "M12 Adjustable Steel Arm Brace Bolt", 2),
		bolt(12, c.sizing.LongBraceBoltSize, 1),
	}
}

func flyArmBoltSize(dimension string) int {
	if dimension == dimensionA {
		return 240
	}
	return 280
}

func emitFlyArmTimber(c *crossarmContext) []entities.LineItem {
	return []entities.LineItem{
		hardware("WASH-M20-80-FLY", "M20x80x80 Large Washer (Fly Arm)", 2),
		hardware("WASH-CONICAL-FLY", "Conical Washer (Fly Arm)", 2),
		roleBolt(16, flyArmBoltSize(c.dimension), roleFlyArm, 2),
		hardware("NUT-M16-FLY", "M16 Nut (Fly Arm)", 2),
	}
}

func emitFlyArmSteel(c *crossarmContext) []entities.LineItem {
	return []entities.LineItem{
		hardware("BRACKET-STEEL-FLY", "Steel Fly Arm Bracket", 1),
		hardware("WASH-M20-80-FLYS", "M20x80x80 Large Washer (Fly Arm)", 1),
		hardware("WASH-CONICAL-FLYS", "Conical Washer (Fly Arm)", 1),
		roleBolt(16, flyArmBoltSize(c.dimension), roleFlyArmS, 1),
		hardware("WASH-M16-50-FLYS", "M16x50x50 Square Washer (Fly Arm)", 2),
	}
}

// The T bracket replaces braces on LVTX arms.
func emitTBracket(c *crossarmContext) []entities.LineItem {
	return []entities.LineItem{
		hardware("BRACKET-T-STEEL", "Steel T Bracket", 1),
		roleBolt(12, 140, roleTBracket, 2),
		hardware("WASH-M12-50-TB", "M12x50x50 Square Washer (T Bracket)", 4),
		roleBolt(16, c.sizing.TBracketBoltSize, roleThroughTee, 1),
		hardware("WASH-M16-50-TB", "M16x50x50 Square Washer (T Bracket)", 2),
	}
}

func emitSpacer(c *crossarmContext) []entities.LineItem {
	pipeLength := c.poleWidthMm - spacerPipeAllowanceMm
	return []entities.LineItem{
		bolt(16, c.sizing.SpacerBoltSize, 1),
		hardware("WASH-M16-50-SP", "M16x50x50 Square Washer (Spacer)", 4),
		hardware(fmt.Sprintf("PIPE-SPACER-%d", pipeLength), fmt.Sprintf("Spacer Pipe (%dmm)", pipeLength), 1),
	}
}

// metres renders a decimetre code as metres with one decimal place
func metres(decimetres string) string {
	d, err := decimal.NewFromString(decimetres)
	if err != nil {
		return decimetres
	}
	return d.Shift(-1).StringFixed(1)
}
