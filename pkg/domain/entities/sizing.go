package entities

// BoltSizing holds the bolt lengths resolved for one crossarm against one pole width.
// It is recomputed from selections and never mutated.
type BoltSizing struct {
	KingBoltSize      int  `json:"king_bolt_size"`
	SpacerBoltSize    int  `json:"spacer_bolt_size"`
	LongBraceBoltSize int  `json:"long_brace_bolt_size"`
	TBracketBoltSize  int  `json:"t_bracket_bolt_size"`
	IsPinArm          bool `json:"is_pin_arm"`
	IsSteel           bool `json:"is_steel"`
	ArmWidth          int  `json:"arm_width"`
}
